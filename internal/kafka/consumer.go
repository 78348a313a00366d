package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/Domenick1991/skyline/internal/events"
	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until ctx is cancelled or the handler fails.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, events.BookingEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		event, err := DecodeEvent(msg)
		if err != nil {
			log.Printf("decode event error: %v", err)
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func DecodeEvent(msg kafka.Message) (events.BookingEvent, error) {
	var event events.BookingEvent
	err := json.Unmarshal(msg.Value, &event)
	return event, err
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/skyline/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	url   string
	queue string
}

func NewConsumer(url, queue string) *Consumer {
	return &Consumer{url: url, queue: queue}
}

// Consume reconnects with exponential backoff until ctx is cancelled.
// Messages the handler rejects are nacked without requeue.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, events.BookingEvent) error) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Printf("rabbitmq consumer: dial failed: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn, handler)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		log.Printf("rabbitmq consumer: loop ended: %v; reconnecting", err)
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection, handler func(context.Context, events.BookingEvent) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("rabbitmq consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		event, err := DecodeEvent(d.Body)
		if err == nil {
			err = handler(ctx, event)
		}
		if err != nil {
			log.Printf("rabbitmq consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func DecodeEvent(body []byte) (events.BookingEvent, error) {
	var event events.BookingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("unmarshal: %w", err)
	}
	return event, nil
}

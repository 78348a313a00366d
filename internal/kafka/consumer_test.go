package kafka

import (
	"encoding/json"
	"testing"

	"github.com/Domenick1991/skyline/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	payload, err := json.Marshal(events.BookingEvent{Type: events.TypeBookingCreated, Reference: "SKY1001", Email: "a@b.com"})
	require.NoError(t, err)

	event, err := DecodeEvent(kafka.Message{Key: []byte("SKY1001"), Value: payload})
	require.NoError(t, err)
	assert.Equal(t, events.TypeBookingCreated, event.Type)
	assert.Equal(t, "SKY1001", event.Reference)
	assert.Equal(t, "a@b.com", event.Email)
}

func TestDecodeEvent_Invalid(t *testing.T) {
	_, err := DecodeEvent(kafka.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}

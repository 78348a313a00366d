package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.HTTP.Address)
	assert.Equal(t, 100, cfg.Booking.MaxReferenceAttempts)
	assert.Equal(t, 400*time.Millisecond, cfg.Latency.Flights())
	assert.Equal(t, 800*time.Millisecond, cfg.Latency.Book())
	assert.Equal(t, 30*time.Second, cfg.Status.LiveInterval())
	assert.Empty(t, cfg.Events.Driver)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9999"
  static_dir: "./web"
redis:
  addr: "localhost:6379"
events:
  driver: kafka
kafka:
  brokers: ["k1:9092", "k2:9092"]
  booking_topic: bookings
latency:
  flights_ms: 0
  book_ms: 10
booking:
  max_reference_attempts: 5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTP.Address)
	assert.Equal(t, "./web", cfg.HTTP.StaticDir)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "kafka", cfg.Events.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bookings", cfg.Kafka.BookingTopic)
	assert.Equal(t, time.Duration(0), cfg.Latency.Flights())
	assert.Equal(t, 10*time.Millisecond, cfg.Latency.Book())
	assert.Equal(t, 5, cfg.Booking.MaxReferenceAttempts)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "http: [unterminated")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SKYLINE_HTTP_ADDRESS", ":7000")
	t.Setenv("SKYLINE_KAFKA_BROKERS", "a:1,b:2")
	t.Setenv("SKYLINE_EVENTS_DRIVER", "rabbitmq")
	t.Setenv("SKYLINE_LATENCY_DISABLED", "true")
	t.Setenv("SKYLINE_TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.1")

	cfg, err := LoadConfig(writeConfig(t, "http:\n  address: \":1234\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.Address)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
	assert.Equal(t, "rabbitmq", cfg.Events.Driver)
	assert.Zero(t, cfg.Latency.Book())
	assert.Equal(t, "booking.events", cfg.RabbitMQ.Queue)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.HTTP.TrustedProxies)
}

func TestLoadConfig_BadEnvBool(t *testing.T) {
	t.Setenv("SKYLINE_LATENCY_DISABLED", "maybe")
	_, err := LoadConfig(writeConfig(t, ""))
	assert.Error(t, err)
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Redis     RedisConfig     `yaml:"redis"`
	Events    EventsConfig    `yaml:"events"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Booking   BookingConfig   `yaml:"booking"`
	Latency   LatencyConfig   `yaml:"latency"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Status    StatusConfig    `yaml:"status"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
	StaticDir  string `yaml:"static_dir"`
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address is
	// always the client address.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// EventsConfig selects the broker for booking events: "kafka", "rabbitmq" or "" (disabled).
type EventsConfig struct {
	Driver string `yaml:"driver"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type RabbitMQConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type BookingConfig struct {
	MaxReferenceAttempts int `yaml:"max_reference_attempts"`
	FlightsCacheTTL      int `yaml:"flights_cache_ttl_seconds"`
}

// LatencyConfig holds artificial response delays in milliseconds.
type LatencyConfig struct {
	FlightsMillis int `yaml:"flights_ms"`
	BookMillis    int `yaml:"book_ms"`
}

type RateLimitConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Requests      int    `yaml:"requests"`
	WindowSeconds int    `yaml:"window_seconds"`
	Prefix        string `yaml:"prefix"`
}

type StatusConfig struct {
	LiveIntervalSeconds int `yaml:"live_interval_seconds"`
}

func (c BookingConfig) FlightsCacheDuration() time.Duration {
	return time.Duration(c.FlightsCacheTTL) * time.Second
}

func (c LatencyConfig) Flights() time.Duration {
	return time.Duration(c.FlightsMillis) * time.Millisecond
}

func (c LatencyConfig) Book() time.Duration {
	return time.Duration(c.BookMillis) * time.Millisecond
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func (c StatusConfig) LiveInterval() time.Duration {
	return time.Duration(c.LiveIntervalSeconds) * time.Second
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Address: ":8090"},
		GRPC: GRPCConfig{Address: ":9090"},
		Kafka: KafkaConfig{
			BookingTopic: "booking-events",
			GroupID:      "skyline-notifier",
		},
		RabbitMQ: RabbitMQConfig{Queue: "booking.events"},
		Booking: BookingConfig{
			MaxReferenceAttempts: 100,
			FlightsCacheTTL:      60,
		},
		Latency:   LatencyConfig{FlightsMillis: 400, BookMillis: 800},
		RateLimit: RateLimitConfig{Requests: 120, WindowSeconds: 60, Prefix: "rl"},
		Status:    StatusConfig{LiveIntervalSeconds: 30},
	}
}

// LoadConfig reads .env (if any), the YAML file at path and SKYLINE_* overrides.
// A missing YAML file is not an error; defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SKYLINE_HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("SKYLINE_STATIC_DIR"); v != "" {
		cfg.HTTP.StaticDir = v
	}
	if v := os.Getenv("SKYLINE_TRUSTED_PROXIES"); v != "" {
		cfg.HTTP.TrustedProxies = strings.Split(v, ",")
	}
	if v := os.Getenv("SKYLINE_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SKYLINE_EVENTS_DRIVER"); v != "" {
		cfg.Events.Driver = v
	}
	if v := os.Getenv("SKYLINE_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("SKYLINE_RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
	if v := os.Getenv("SKYLINE_LATENCY_DISABLED"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse SKYLINE_LATENCY_DISABLED: %w", err)
		}
		if disabled {
			cfg.Latency = LatencyConfig{}
		}
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.HTTP.Address == "" {
		c.HTTP.Address = d.HTTP.Address
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = d.GRPC.Address
	}
	if c.Booking.MaxReferenceAttempts <= 0 {
		c.Booking.MaxReferenceAttempts = d.Booking.MaxReferenceAttempts
	}
	if c.Status.LiveIntervalSeconds <= 0 {
		c.Status.LiveIntervalSeconds = d.Status.LiveIntervalSeconds
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = d.RateLimit.Requests
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = d.RateLimit.WindowSeconds
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = d.RabbitMQ.Queue
	}
}

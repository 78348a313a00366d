package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyline/config"
	"github.com/Domenick1991/skyline/internal/events"
	"github.com/Domenick1991/skyline/internal/kafka"
	"github.com/Domenick1991/skyline/internal/notify"
	"github.com/Domenick1991/skyline/internal/rabbitmq"
)

type eventConsumer interface {
	Consume(ctx context.Context, handler func(context.Context, events.BookingEvent) error) error
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var consumer eventConsumer
	switch cfg.Events.Driver {
	case "kafka":
		topic := cfg.Kafka.NotificationsTopic
		if topic == "" {
			topic = cfg.Kafka.BookingTopic
		}
		c := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic)
		defer c.Close()
		consumer = c
		log.Printf("worker consuming kafka topic %s", topic)
	case "rabbitmq":
		consumer = rabbitmq.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		log.Printf("worker consuming rabbitmq queue %s", cfg.RabbitMQ.Queue)
	default:
		log.Fatalf("worker needs events.driver kafka or rabbitmq, got %q", cfg.Events.Driver)
	}

	sender := notify.NewSender()
	if err := consumer.Consume(ctx, sender.Send); err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Printf("worker shut down")
}

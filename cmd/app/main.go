package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyline/config"
	"github.com/Domenick1991/skyline/internal/bootstrap"
	"github.com/Domenick1991/skyline/internal/cache"
	"github.com/Domenick1991/skyline/internal/kafka"
	"github.com/Domenick1991/skyline/internal/rabbitmq"
	"github.com/Domenick1991/skyline/internal/repository"
	"github.com/Domenick1991/skyline/internal/service/booking"
	"github.com/Domenick1991/skyline/internal/service/flights"
	"github.com/Domenick1991/skyline/internal/service/status"
)

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

	rdb := cache.NewRedisClient(cfg.Redis)
	var flightCache flights.FlightCache
	if rdb != nil {
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("WARNING: redis %s unreachable, continuing without cache: %v", cfg.Redis.Addr, err)
		}
		flightCache = cache.NewRedisCache(rdb, cfg.Booking.FlightsCacheDuration())
	}

	producer, bookingTopic, notificationsTopic, closeProducer := newProducer(ctx, cfg)
	defer closeProducer()

	flightRepo := repository.NewFlightRepository(repository.SeedFlights())
	bookingRepo := repository.NewBookingRepository()

	services := bootstrap.Services{
		Flights: flights.NewFlightService(flightRepo, flightCache),
		Bookings: booking.NewBookingService(
			bookingRepo,
			flightRepo,
			producer,
			bookingTopic,
			booking.WithNotificationsTopic(notificationsTopic),
			booking.WithMaxReferenceAttempts(cfg.Booking.MaxReferenceAttempts),
		),
		Status: status.NewStatusService(flightRepo),
	}

	if err := bootstrap.Run(ctx, cfg, services, rdb); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newProducer picks the booking event broker. With no driver configured,
// events are not published.
func newProducer(ctx context.Context, cfg *config.Config) (booking.Producer, string, string, func()) {
	switch cfg.Events.Driver {
	case "kafka":
		p := kafka.NewProducer(cfg.Kafka.Brokers)
		if err := p.CheckConnection(ctx); err != nil {
			log.Printf("WARNING: kafka unreachable, booking events may be lost: %v", err)
		}
		return p, cfg.Kafka.BookingTopic, cfg.Kafka.NotificationsTopic, func() { _ = p.Close() }
	case "rabbitmq":
		p := rabbitmq.NewPublisher(cfg.RabbitMQ.URL)
		return p, cfg.RabbitMQ.Queue, "", func() { _ = p.Close() }
	case "":
		log.Printf("booking events disabled")
		return nil, "", "", func() {}
	default:
		log.Fatalf("unknown events driver %q", cfg.Events.Driver)
		return nil, "", "", nil
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/Domenick1991/skyline/internal/events"
	"github.com/Domenick1991/skyline/internal/repository"
)

const defaultMaxReferenceAttempts = 100

var ErrReferenceSpaceExhausted = errors.New("could not allocate a unique booking reference")

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CheckIn(ctx context.Context, input CheckInInput) (*domain.Booking, error)
	ListTrips(ctx context.Context) ([]domain.Booking, error)
	CountBookings(ctx context.Context) (int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings             repository.BookingRepository
	flights              repository.FlightRepository
	producer             Producer
	bookingTopic         string
	notificationsTopic   string
	nextReference        ReferenceGenerator
	maxReferenceAttempts int
	now                  func() time.Time
}

type CreateBookingInput struct {
	// FlightID is nil when the client omitted flightId or sent an empty value.
	FlightID *int64
	// UnknownFlight marks a flightId that was sent but is not an integer, so
	// it cannot name any catalog entry.
	UnknownFlight bool
	Passenger     domain.Passenger
}

type CheckInInput struct {
	Reference string
	LastName  string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithReferenceGenerator(gen ReferenceGenerator) BookingServiceOption {
	return func(s *BookingService) {
		s.nextReference = gen
	}
}

func WithMaxReferenceAttempts(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.maxReferenceAttempts = n
		}
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService accepts a nil producer; events are then not published.
func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:             bookings,
		flights:              flights,
		producer:             producer,
		bookingTopic:         bookingTopic,
		nextReference:        RandomReference,
		maxReferenceAttempts: defaultMaxReferenceAttempts,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	flightMissing := !input.UnknownFlight && (input.FlightID == nil || *input.FlightID == 0)
	if flightMissing || !passengerComplete(input.Passenger) {
		return nil, domain.NewError(domain.ErrInvalidRequest, "Missing required booking fields.")
	}
	if input.UnknownFlight {
		return nil, domain.NewError(domain.ErrNotFound, "Selected flight not found.")
	}

	flight, err := s.flights.GetByID(ctx, *input.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "Selected flight not found.")
		}
		return nil, err
	}

	booking := &domain.Booking{
		Status:        domain.BookingStatusBooked,
		CreatedAt:     s.now().Truncate(time.Second),
		FlightDetails: *flight,
		Passenger:     input.Passenger,
	}
	if err := s.insertWithUniqueReference(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, events.TypeBookingCreated, booking); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", events.TypeBookingCreated, booking.Reference, err)
	}
	return booking, nil
}

// insertWithUniqueReference relies on the registry's insert-if-absent to make
// the uniqueness check and the insert a single atomic step.
func (s *BookingService) insertWithUniqueReference(ctx context.Context, booking *domain.Booking) error {
	for attempt := 0; attempt < s.maxReferenceAttempts; attempt++ {
		booking.Reference = s.nextReference()
		err := s.bookings.Insert(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateReference) {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrReferenceSpaceExhausted, s.maxReferenceAttempts)
}

func (s *BookingService) CheckIn(ctx context.Context, input CheckInInput) (*domain.Booking, error) {
	reference := strings.ToUpper(strings.TrimSpace(input.Reference))
	lastName := normalizeName(input.LastName)
	if reference == "" || lastName == "" {
		return nil, domain.NewError(domain.ErrInvalidRequest, "Reference and last name are required.")
	}

	current, err := s.bookings.Get(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "Booking not found.")
		}
		return nil, err
	}
	if normalizeName(current.Passenger.LastName) != lastName {
		return nil, domain.NewError(domain.ErrForbidden, "Last name does not match this booking.")
	}

	updated, err := s.bookings.UpdateStatus(ctx, reference, domain.BookingStatusCheckedIn)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, events.TypeBookingCheckedIn, updated); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", events.TypeBookingCheckedIn, updated.Reference, err)
	}
	return updated, nil
}

func (s *BookingService) ListTrips(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListRecentFirst(ctx)
}

func (s *BookingService) CountBookings(ctx context.Context) (int, error) {
	return s.bookings.Count(ctx)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := events.NewBookingEvent(eventType, booking, s.now())
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

func passengerComplete(p domain.Passenger) bool {
	for _, field := range []string{p.FirstName, p.LastName, p.Email, p.Phone, p.Passport} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var _ BookingUseCase = (*BookingService)(nil)

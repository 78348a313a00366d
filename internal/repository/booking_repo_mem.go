package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Domenick1991/skyline/internal/domain"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrDuplicateReference = errors.New("reference already in use")
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	Get(ctx context.Context, reference string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus) (*domain.Booking, error)
	ListRecentFirst(ctx context.Context) ([]domain.Booking, error)
	Count(ctx context.Context) (int, error)
}

// MemBookingRepository is the process-lifetime booking registry. The map and
// the insertion-ordered index are guarded by the same lock so that the
// absence check and the insert happen atomically.
type MemBookingRepository struct {
	mu         sync.RWMutex
	bookings   map[string]domain.Booking
	references []string
}

func NewBookingRepository() BookingRepository {
	return &MemBookingRepository{bookings: make(map[string]domain.Booking)}
}

func (r *MemBookingRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.Reference]; exists {
		return ErrDuplicateReference
	}
	r.bookings[booking.Reference] = *booking
	r.references = append(r.references, booking.Reference)
	return nil
}

func (r *MemBookingRepository) Get(ctx context.Context, reference string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[reference]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (r *MemBookingRepository) UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[reference]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b.Status = status
	r.bookings[reference] = b
	return &b, nil
}

func (r *MemBookingRepository) ListRecentFirst(ctx context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trips := make([]domain.Booking, 0, len(r.references))
	for i := len(r.references) - 1; i >= 0; i-- {
		trips = append(trips, r.bookings[r.references[i]])
	}
	return trips, nil
}

func (r *MemBookingRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings), nil
}

var _ BookingRepository = (*MemBookingRepository)(nil)

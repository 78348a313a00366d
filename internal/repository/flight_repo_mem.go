package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/skyline/internal/domain"
)

var ErrFlightNotFound = errors.New("flight not found")

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
}

// MemFlightRepository is a read-only catalog. It is never mutated after
// construction, so it needs no locking.
type MemFlightRepository struct {
	flights []domain.Flight
}

func NewFlightRepository(seed []domain.Flight) FlightRepository {
	flights := make([]domain.Flight, len(seed))
	copy(flights, seed)
	return &MemFlightRepository{flights: flights}
}

func (r *MemFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	flights := make([]domain.Flight, len(r.flights))
	copy(flights, r.flights)
	return flights, nil
}

func (r *MemFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	for _, f := range r.flights {
		if f.ID == id {
			found := f
			return &found, nil
		}
	}
	return nil, ErrFlightNotFound
}

func (r *MemFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	for _, f := range r.flights {
		if f.FlightNumber == flightNumber {
			found := f
			return &found, nil
		}
	}
	return nil, ErrFlightNotFound
}

var _ FlightRepository = (*MemFlightRepository)(nil)

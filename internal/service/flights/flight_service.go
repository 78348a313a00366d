package flights

import (
	"context"
	"errors"
	"log"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/Domenick1991/skyline/internal/repository"
)

// SearchQuery is accepted for client compatibility. The demo catalog is
// always returned in full, whatever the query says.
type SearchQuery struct {
	Origin      string
	Destination string
	Date        string
}

type FlightUseCase interface {
	List(ctx context.Context, query SearchQuery) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

// NewFlightService accepts a nil cache.
func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context, _ SearchQuery) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			log.Printf("flights cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			log.Printf("flights cache write failed: %v", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return mapNotFound(s.repo.GetByID(ctx, id))
}

func mapNotFound(f *domain.Flight, err error) (*domain.Flight, error) {
	if errors.Is(err, repository.ErrFlightNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, "Selected flight not found.")
	}
	return f, err
}

var _ FlightUseCase = (*FlightService)(nil)

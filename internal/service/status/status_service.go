package status

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/Domenick1991/skyline/internal/repository"
)

const (
	DefaultFlightNumber = "DL401"
	unknownAirline      = "SkyLine"
	unknownDeparture    = "TBD"
)

// statusCycle is indexed by the current minute modulo its length.
var statusCycle = [...]string{"On Time", "Boarding", "Delayed", "On Time"}

var gateTerminals = [...]string{"A", "B", "C", "D"}

type StatusUseCase interface {
	GetStatus(ctx context.Context, flightNumber, date string) domain.StatusReport
}

type StatusService struct {
	flights repository.FlightRepository
	now     func() time.Time
	intN    func(n int) int
}

type StatusServiceOption func(*StatusService)

func WithClock(now func() time.Time) StatusServiceOption {
	return func(s *StatusService) {
		s.now = now
	}
}

// WithRandom replaces the source used to pick gates. intN must return a
// value in [0, n).
func WithRandom(intN func(n int) int) StatusServiceOption {
	return func(s *StatusService) {
		s.intN = intN
	}
}

func NewStatusService(flights repository.FlightRepository, opts ...StatusServiceOption) *StatusService {
	s := &StatusService{
		flights: flights,
		now:     time.Now,
		intN:    rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetStatus never fails: flight numbers missing from the catalog get a
// placeholder report so the tracker works for anything a user types.
func (s *StatusService) GetStatus(ctx context.Context, flightNumber, date string) domain.StatusReport {
	number := NormalizeFlightNumber(flightNumber)
	now := s.now()

	report := domain.StatusReport{
		Flight:             fmt.Sprintf("%s %s", unknownAirline, number),
		EstimatedDeparture: unknownDeparture,
		Date:               strings.TrimSpace(date),
		Status:             statusCycle[now.Minute()%len(statusCycle)],
		Gate:               fmt.Sprintf("%s%d", gateTerminals[s.intN(len(gateTerminals))], s.intN(30)+1),
		ServerTime:         now.Truncate(time.Second),
	}

	if flight, err := s.flights.GetByNumber(ctx, number); err == nil {
		report.Flight = fmt.Sprintf("%s %s", flight.Airline, flight.FlightNumber)
		report.EstimatedDeparture = flight.Departs
	}
	return report
}

// NormalizeFlightNumber trims and upper-cases, falling back to the demo flight.
func NormalizeFlightNumber(flightNumber string) string {
	number := strings.ToUpper(strings.TrimSpace(flightNumber))
	if number == "" {
		return DefaultFlightNumber
	}
	return number
}

var _ StatusUseCase = (*StatusService)(nil)

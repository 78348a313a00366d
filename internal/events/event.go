package events

import (
	"time"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/google/uuid"
)

const (
	TypeBookingCreated   = "booking_created"
	TypeBookingCheckedIn = "booking_checked_in"
)

type BookingEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Reference    string    `json:"reference"`
	FlightNumber string    `json:"flight_number"`
	Departs      string    `json:"departs"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		Reference:    b.Reference,
		FlightNumber: b.FlightDetails.FlightNumber,
		Departs:      b.FlightDetails.Departs,
		FirstName:    b.Passenger.FirstName,
		LastName:     b.Passenger.LastName,
		Email:        b.Passenger.Email,
		Status:       string(b.Status),
		OccurredAt:   at,
	}
}

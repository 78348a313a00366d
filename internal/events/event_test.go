package events

import (
	"testing"
	"time"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	b := &domain.Booking{
		Reference:     "SKY4242",
		Status:        domain.BookingStatusCheckedIn,
		FlightDetails: domain.Flight{FlightNumber: "BA176", Departs: "06:00 PM"},
		Passenger:     domain.Passenger{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}

	ev := NewBookingEvent(TypeBookingCheckedIn, b, at)

	_, err := uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, TypeBookingCheckedIn, ev.Type)
	assert.Equal(t, "SKY4242", ev.Reference)
	assert.Equal(t, "BA176", ev.FlightNumber)
	assert.Equal(t, "ada@example.com", ev.Email)
	assert.Equal(t, "Checked-in", ev.Status)
	assert.Equal(t, at, ev.OccurredAt)

	other := NewBookingEvent(TypeBookingCheckedIn, b, at)
	assert.NotEqual(t, ev.ID, other.ID)
}

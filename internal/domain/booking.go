package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "Booked"
	BookingStatusCheckedIn BookingStatus = "Checked-in"
)

type Passenger struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Passport  string
}

// Booking embeds copies of the flight and passenger taken at creation time.
type Booking struct {
	Reference     string
	Status        BookingStatus
	CreatedAt     time.Time
	FlightDetails Flight
	Passenger     Passenger
}

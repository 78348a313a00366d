package api

import (
	"time"

	"github.com/Domenick1991/skyline/internal/domain"
)

// timestampLayout is ISO-8601 local time without fractional seconds or zone.
const timestampLayout = "2006-01-02T15:04:05"

type flightResponse struct {
	ID           int64  `json:"id"`
	FlightNumber string `json:"flightNumber"`
	Airline      string `json:"airline"`
	Logo         string `json:"logo"`
	Departs      string `json:"departs"`
	Arrives      string `json:"arrives"`
	Duration     string `json:"duration"`
	Price        int64  `json:"price"`
	Type         string `json:"type"`
}

type passengerPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Passport  string `json:"passport"`
}

type bookingResponse struct {
	Reference     string           `json:"reference"`
	Status        string           `json:"status"`
	CreatedAt     string           `json:"createdAt"`
	FlightDetails flightResponse   `json:"flightDetails"`
	Passenger     passengerPayload `json:"passenger"`
}

type searchMeta struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

type flightsResponse struct {
	Meta    searchMeta       `json:"meta"`
	Flights []flightResponse `json:"flights"`
}

type bookingResultResponse struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Reference string          `json:"reference"`
	Booking   bookingResponse `json:"booking"`
}

type statusResponse struct {
	Flight             string `json:"flight"`
	Status             string `json:"status"`
	Gate               string `json:"gate"`
	Date               string `json:"date"`
	EstimatedDeparture string `json:"estimatedDeparture"`
	ServerTime         string `json:"serverTime"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Bookings int    `json:"bookings"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:           f.ID,
		FlightNumber: f.FlightNumber,
		Airline:      f.Airline,
		Logo:         f.Logo,
		Departs:      f.Departs,
		Arrives:      f.Arrives,
		Duration:     f.Duration,
		Price:        f.Price,
		Type:         string(f.Type),
	}
}

func toFlightResponses(flights []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(flights))
	for _, f := range flights {
		out = append(out, toFlightResponse(f))
	}
	return out
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		Reference:     b.Reference,
		Status:        string(b.Status),
		CreatedAt:     formatTimestamp(b.CreatedAt),
		FlightDetails: toFlightResponse(b.FlightDetails),
		Passenger: passengerPayload{
			FirstName: b.Passenger.FirstName,
			LastName:  b.Passenger.LastName,
			Email:     b.Passenger.Email,
			Phone:     b.Passenger.Phone,
			Passport:  b.Passenger.Passport,
		},
	}
}

func toStatusResponse(r domain.StatusReport) statusResponse {
	return statusResponse{
		Flight:             r.Flight,
		Status:             r.Status,
		Gate:               r.Gate,
		Date:               r.Date,
		EstimatedDeparture: r.EstimatedDeparture,
		ServerTime:         formatTimestamp(r.ServerTime),
	}
}

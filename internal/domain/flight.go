package domain

type FlightType string

const (
	FlightTypeNonStop FlightType = "Non-stop"
	FlightTypeOneStop FlightType = "1 Stop"
)

type Flight struct {
	ID           int64
	FlightNumber string
	Airline      string
	Logo         string
	Departs      string
	Arrives      string
	Duration     string
	Price        int64
	Type         FlightType
}

package repository

import "github.com/Domenick1991/skyline/internal/domain"

// SeedFlights returns the demo inventory in display order.
func SeedFlights() []domain.Flight {
	return []domain.Flight{
		{ID: 1, FlightNumber: "DL401", Airline: "Delta", Logo: "D", Departs: "08:00 AM", Arrives: "11:00 AM", Duration: "3h 00m", Price: 345, Type: domain.FlightTypeNonStop},
		{ID: 2, FlightNumber: "UA218", Airline: "United", Logo: "U", Departs: "10:30 AM", Arrives: "02:45 PM", Duration: "4h 15m", Price: 290, Type: domain.FlightTypeOneStop},
		{ID: 3, FlightNumber: "BA176", Airline: "British Airways", Logo: "BA", Departs: "06:00 PM", Arrives: "06:00 AM", Duration: "7h 00m", Price: 850, Type: domain.FlightTypeNonStop},
		{ID: 4, FlightNumber: "EK202", Airline: "Emirates", Logo: "E", Departs: "09:15 PM", Arrives: "11:30 AM", Duration: "14h 15m", Price: 1200, Type: domain.FlightTypeNonStop},
		{ID: 5, FlightNumber: "LH401", Airline: "Lufthansa", Logo: "L", Departs: "04:20 PM", Arrives: "07:50 AM", Duration: "9h 30m", Price: 940, Type: domain.FlightTypeOneStop},
	}
}

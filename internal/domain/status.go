package domain

import "time"

type StatusReport struct {
	Flight             string
	Status             string
	Gate               string
	Date               string
	EstimatedDeparture string
	ServerTime         time.Time
}

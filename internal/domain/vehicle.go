package domain

import "time"

type Vehicle struct {
	ID           string `json:"id"`
	LicensePlate string `json:"licensePlate"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Type         string `json:"type"`
	Year         int    `json:"year"`
	LastKm       int    `json:"lastKm"`
}

const (
	TripActive    = "active"
	TripCompleted = "completed"
)

// Location is passed through from the client untouched.
type Location map[string]any

type TripPoint struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recordedAt"`
}

type Trip struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	VehicleID     string      `json:"vehicleId"`
	Status        string      `json:"status"`
	StartedAt     time.Time   `json:"startedAt"`
	EndedAt       *time.Time  `json:"endedAt,omitempty"`
	StartLocation Location    `json:"startLocation"`
	EndLocation   Location    `json:"endLocation,omitempty"`
	EndKm         *int        `json:"endKm,omitempty"`
	Points        []TripPoint `json:"points"`
}

type StartTripRequest struct {
	VehicleID     string   `json:"vehicle_id" validate:"required"`
	StartLocation Location `json:"start_location"`
}

type StopTripRequest struct {
	EndLocation Location `json:"end_location"`
	EndKm       *int     `json:"end_km" validate:"omitempty,min=0"`
}

type TripStatistics struct {
	TotalTrips   int `json:"totalTrips"`
	TotalKm      int `json:"totalKm"`
	TotalHours   int `json:"totalHours"`
	AverageSpeed int `json:"averageSpeed"`
	SafetyScore  int `json:"safetyScore"`
	StreakDays   int `json:"streakDays"`
}

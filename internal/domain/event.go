package domain

import "github.com/google/uuid"

// Event - a personal calendar entry
type Event struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Title         string    `json:"title" db:"title"`
	Date          string    `json:"date" db:"date"` // YYYY-MM-DD
	Time          string    `json:"time" db:"time"` // HH:MM
	DurationHours float64   `json:"duration_hours" db:"duration_hours"`
	LocationName  string    `json:"location_name" db:"location_name"`
	Purpose       string    `json:"purpose" db:"purpose"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Schedule represents a weekly meeting slot of a course offering
type Schedule struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OfferingID uuid.UUID `json:"offeringId" db:"offering_id"`
	DayOfWeek  int       `json:"dayOfWeek" db:"day_of_week"` // 1 = Monday .. 7 = Sunday
	StartTime  string    `json:"startTime" db:"start_time"`  // HH:MM
	EndTime    string    `json:"endTime" db:"end_time"`      // HH:MM
	Room       string    `json:"room" db:"room"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// NewSchedule creates a new Schedule instance
func NewSchedule(offeringID uuid.UUID, dayOfWeek int, startTime, endTime, room string) *Schedule {
	now := time.Now()
	return &Schedule{
		ID:         uuid.New(),
		OfferingID: offeringID,
		DayOfWeek:  dayOfWeek,
		StartTime:  startTime,
		EndTime:    endTime,
		Room:       room,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

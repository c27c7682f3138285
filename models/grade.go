package models

import (
	"time"

	"github.com/google/uuid"
)

// Grade records the outcome of an enrollment
type Grade struct {
	ID           uuid.UUID `json:"id" db:"id"`
	EnrollmentID uuid.UUID `json:"enrollmentId" db:"enrollment_id"`
	Value        float64   `json:"value" db:"value"`
	Letter       string    `json:"letter" db:"letter"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewGrade creates a new Grade instance
func NewGrade(enrollmentID uuid.UUID, value float64, letter string) *Grade {
	now := time.Now()
	return &Grade{
		ID:           uuid.New(),
		EnrollmentID: enrollmentID,
		Value:        value,
		Letter:       letter,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus tracks the lifecycle of a student's enrollment
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment links a student to a course offering
type Enrollment struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	StudentID  uuid.UUID        `json:"studentId" db:"student_id"`
	OfferingID uuid.UUID        `json:"offeringId" db:"offering_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`
}

// NewEnrollment creates a new active Enrollment instance
func NewEnrollment(studentID, offeringID uuid.UUID) *Enrollment {
	now := time.Now()
	return &Enrollment{
		ID:         uuid.New(),
		StudentID:  studentID,
		OfferingID: offeringID,
		Status:     EnrollmentActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Student represents the student record attached to a user account
type Student struct {
	ID             uuid.UUID `json:"id" db:"id"`
	StudentNumber  string    `json:"studentNumber" db:"student_number"`
	EnrollmentYear int       `json:"enrollmentYear" db:"enrollment_year"`
	UserID         uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// NewStudent creates a new Student instance
func NewStudent(studentNumber string, enrollmentYear int, userID uuid.UUID) *Student {
	now := time.Now()
	return &Student{
		ID:             uuid.New(),
		StudentNumber:  studentNumber,
		EnrollmentYear: enrollmentYear,
		UserID:         userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

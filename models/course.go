package models

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a catalog course owned by a department
type Course struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Code         string    `json:"code" db:"code"`
	Name         string    `json:"name" db:"name"`
	Credits      int       `json:"credits" db:"credits"`
	DepartmentID uuid.UUID `json:"departmentId" db:"department_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewCourse creates a new Course instance
func NewCourse(code, name string, credits int, departmentID uuid.UUID) *Course {
	now := time.Now()
	return &Course{
		ID:           uuid.New(),
		Code:         code,
		Name:         name,
		Credits:      credits,
		DepartmentID: departmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

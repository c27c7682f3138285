package models

import (
	"time"

	"github.com/google/uuid"
)

// Teacher represents the teacher record attached to a user account
type Teacher struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	OfficeNumber string    `json:"officeNumber" db:"office_number"`
	Phone        string    `json:"phone" db:"phone"`
	DepartmentID uuid.UUID `json:"departmentId" db:"department_id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewTeacher creates a new Teacher instance
func NewTeacher(title, officeNumber, phone string, departmentID, userID uuid.UUID) *Teacher {
	now := time.Now()
	return &Teacher{
		ID:           uuid.New(),
		Title:        title,
		OfficeNumber: officeNumber,
		Phone:        phone,
		DepartmentID: departmentID,
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

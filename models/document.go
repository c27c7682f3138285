package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a file published by a department
type Document struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	URL          string    `json:"url" db:"url"`
	DepartmentID uuid.UUID `json:"departmentId" db:"department_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewDocument creates a new Document instance
func NewDocument(title, url string, departmentID uuid.UUID) *Document {
	now := time.Now()
	return &Document{
		ID:           uuid.New(),
		Title:        title,
		URL:          url,
		DepartmentID: departmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

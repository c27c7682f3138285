package models

import (
	"time"

	"github.com/google/uuid"
)

// Department represents an academic department
type Department struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewDepartment creates a new Department instance
func NewDepartment(name string) *Department {
	now := time.Now()
	return &Department{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

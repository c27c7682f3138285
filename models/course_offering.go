package models

import (
	"time"

	"github.com/google/uuid"
)

// Semester identifies which term an offering is taught in
type Semester string

const (
	SemesterFall   Semester = "fall"
	SemesterSpring Semester = "spring"
	SemesterSummer Semester = "summer"
)

// CourseOffering represents a course taught by a teacher in a specific term
type CourseOffering struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CourseID     uuid.UUID `json:"courseId" db:"course_id"`
	TeacherID    uuid.UUID `json:"teacherId" db:"teacher_id"`
	Semester     Semester  `json:"semester" db:"semester"`
	AcademicYear string    `json:"academicYear" db:"academic_year"`
	Capacity     int       `json:"capacity" db:"capacity"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewCourseOffering creates a new CourseOffering instance
func NewCourseOffering(courseID, teacherID uuid.UUID, semester Semester, academicYear string, capacity int) *CourseOffering {
	now := time.Now()
	return &CourseOffering{
		ID:           uuid.New(),
		CourseID:     courseID,
		TeacherID:    teacherID,
		Semester:     semester,
		AcademicYear: academicYear,
		Capacity:     capacity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

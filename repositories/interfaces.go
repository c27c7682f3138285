package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/halilcengel/note.verse.backend/models"
)

// Sentinel errors shared by all repository implementations
var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("record already exists")
)

// ListParams carries pagination and ordering for list queries
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // asc or desc
}

// Normalize fills in defaults for zero values
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	if p.SortOrder != "asc" && p.SortOrder != "desc" {
		p.SortOrder = "desc"
	}
	return p
}

// Offset returns the row offset for the current page
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Commits if the function succeeds, rolls back on error.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles user account data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, params ListParams) ([]*models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentRepository handles student record data operations
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error)
	List(ctx context.Context, params ListParams) ([]*models.Student, int, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeacherRepository handles teacher record data operations
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Teacher, error)
	List(ctx context.Context, params ListParams) ([]*models.Teacher, int, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DepartmentRepository handles department data operations
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error)
	List(ctx context.Context, params ListParams) ([]*models.Department, int, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourseRepository handles course catalog data operations
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, params ListParams) ([]*models.Course, int, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OfferingFilter narrows course offering listings by term
type OfferingFilter struct {
	Semester     models.Semester
	AcademicYear string
}

// CourseOfferingRepository handles course offering data operations
type CourseOfferingRepository interface {
	Create(ctx context.Context, offering *models.CourseOffering) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CourseOffering, error)
	List(ctx context.Context, params ListParams, filter OfferingFilter) ([]*models.CourseOffering, int, error)
	Update(ctx context.Context, offering *models.CourseOffering) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnrollmentRepository handles enrollment data operations
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error)
	List(ctx context.Context, params ListParams) ([]*models.Enrollment, int, error)
	ListByOffering(ctx context.Context, offeringID uuid.UUID) ([]*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GradeRepository handles grade data operations
type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Grade, error)
	List(ctx context.Context, params ListParams) ([]*models.Grade, int, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentRepository handles department document data operations
type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	List(ctx context.Context, params ListParams) ([]*models.Document, int, error)
	Update(ctx context.Context, document *models.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScheduleRepository handles weekly schedule data operations
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	ListByOffering(ctx context.Context, offeringID uuid.UUID) ([]*models.Schedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories bundles every repository implementation
type Repositories struct {
	Users           UserRepository
	Students        StudentRepository
	Teachers        TeacherRepository
	Departments     DepartmentRepository
	Courses         CourseRepository
	CourseOfferings CourseOfferingRepository
	Enrollments     EnrollmentRepository
	Grades          GradeRepository
	Documents       DocumentRepository
	Schedules       ScheduleRepository
}

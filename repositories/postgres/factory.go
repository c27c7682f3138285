package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/config"
	"github.com/halilcengel/note.verse.backend/repositories"
)

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db     *DB
	logger *zap.Logger
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	return &RepositoryFactory{db: db, logger: logger}, nil
}

// InitSchema initializes the database schema
func (f *RepositoryFactory) InitSchema(ctx context.Context) error {
	return f.db.InitSchema(ctx)
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:           NewUserRepository(f.db, f.logger),
		Students:        NewStudentRepository(f.db, f.logger),
		Teachers:        NewTeacherRepository(f.db, f.logger),
		Departments:     NewDepartmentRepository(f.db, f.logger),
		Courses:         NewCourseRepository(f.db, f.logger),
		CourseOfferings: NewCourseOfferingRepository(f.db, f.logger),
		Enrollments:     NewEnrollmentRepository(f.db, f.logger),
		Grades:          NewGradeRepository(f.db, f.logger),
		Documents:       NewDocumentRepository(f.db, f.logger),
		Schedules:       NewScheduleRepository(f.db, f.logger),
	}
}

// GetTransactionManager returns a transaction manager
func (f *RepositoryFactory) GetTransactionManager() repositories.TransactionManager {
	return NewTransactionManager(f.db, f.logger)
}

// GetDB returns the database connection
func (f *RepositoryFactory) GetDB() *DB {
	return f.db
}

// Close closes the database connection
func (f *RepositoryFactory) Close() error {
	return f.db.Close()
}

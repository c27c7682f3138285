package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/config"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// InitSchema initializes the database schema
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		-- Users table
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			tc_no VARCHAR(11) NOT NULL UNIQUE,
			role VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Departments table
		CREATE TABLE IF NOT EXISTS departments (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Students table
		CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY,
			student_number VARCHAR(50) NOT NULL UNIQUE,
			enrollment_year INTEGER NOT NULL,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Teachers table
		CREATE TABLE IF NOT EXISTS teachers (
			id UUID PRIMARY KEY,
			title VARCHAR(100) NOT NULL,
			office_number VARCHAR(50),
			phone VARCHAR(50),
			department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Courses table
		CREATE TABLE IF NOT EXISTS courses (
			id UUID PRIMARY KEY,
			code VARCHAR(20) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			credits INTEGER NOT NULL,
			department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Course offerings table
		CREATE TABLE IF NOT EXISTS course_offerings (
			id UUID PRIMARY KEY,
			course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			teacher_id UUID NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
			semester VARCHAR(20) NOT NULL,
			academic_year VARCHAR(9) NOT NULL,
			capacity INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(course_id, teacher_id, semester, academic_year)
		);

		-- Enrollments table
		CREATE TABLE IF NOT EXISTS enrollments (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			offering_id UUID NOT NULL REFERENCES course_offerings(id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(student_id, offering_id)
		);

		-- Grades table
		CREATE TABLE IF NOT EXISTS grades (
			id UUID PRIMARY KEY,
			enrollment_id UUID NOT NULL UNIQUE REFERENCES enrollments(id) ON DELETE CASCADE,
			value DECIMAL(5, 2) NOT NULL,
			letter VARCHAR(2) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Documents table
		CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			url TEXT NOT NULL,
			department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Schedules table
		CREATE TABLE IF NOT EXISTS schedules (
			id UUID PRIMARY KEY,
			offering_id UUID NOT NULL REFERENCES course_offerings(id) ON DELETE CASCADE,
			day_of_week INTEGER NOT NULL,
			start_time VARCHAR(5) NOT NULL,
			end_time VARCHAR(5) NOT NULL,
			room VARCHAR(50),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_students_user_id ON students(user_id);
		CREATE INDEX IF NOT EXISTS idx_teachers_user_id ON teachers(user_id);
		CREATE INDEX IF NOT EXISTS idx_teachers_department_id ON teachers(department_id);
		CREATE INDEX IF NOT EXISTS idx_courses_department_id ON courses(department_id);
		CREATE INDEX IF NOT EXISTS idx_offerings_course_id ON course_offerings(course_id);
		CREATE INDEX IF NOT EXISTS idx_offerings_teacher_id ON course_offerings(teacher_id);
		CREATE INDEX IF NOT EXISTS idx_offerings_term ON course_offerings(semester, academic_year);
		CREATE INDEX IF NOT EXISTS idx_enrollments_student_id ON enrollments(student_id);
		CREATE INDEX IF NOT EXISTS idx_enrollments_offering_id ON enrollments(offering_id);
		CREATE INDEX IF NOT EXISTS idx_grades_enrollment_id ON grades(enrollment_id);
		CREATE INDEX IF NOT EXISTS idx_documents_department_id ON documents(department_id);
		CREATE INDEX IF NOT EXISTS idx_schedules_offering_id ON schedules(offering_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}

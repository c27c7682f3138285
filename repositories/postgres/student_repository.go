package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var studentSortColumns = map[string]string{
	"studentNumber":  "student_number",
	"enrollmentYear": "enrollment_year",
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
}

// StudentRepository implements the repositories.StudentRepository interface
type StudentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *DB, logger *zap.Logger) repositories.StudentRepository {
	return &StudentRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, student_number, enrollment_year, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		student.ID,
		student.StudentNumber,
		student.EnrollmentYear,
		student.UserID,
		student.CreatedAt,
		student.UpdatedAt,
	)
	if err != nil {
		return mapError("create student", err)
	}

	r.logger.Debug("student created",
		zap.String("id", student.ID.String()),
		zap.String("student_number", student.StudentNumber))
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByUserID retrieves a student by the owning user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	return r.getBy(ctx, "user_id = $1", userID)
}

func (r *StudentRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Student, error) {
	query := `
		SELECT id, student_number, enrollment_year, user_id, created_at, updated_at
		FROM students
		WHERE ` + where

	executor := GetExecutor(ctx, r.db)
	student := &models.Student{}

	err := executor.QueryRowContext(ctx, query, arg).Scan(
		&student.ID,
		&student.StudentNumber,
		&student.EnrollmentYear,
		&student.UserID,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get student", err)
	}

	return student, nil
}

// List retrieves students with pagination
func (r *StudentRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Student, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, mapError("count students", err)
	}

	query := `
		SELECT id, student_number, enrollment_year, user_id, created_at, updated_at
		FROM students
	` + orderClause(studentSortColumns, params) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := executor.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, mapError("list students", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID,
			&student.StudentNumber,
			&student.EnrollmentYear,
			&student.UserID,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, 0, mapError("scan student", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list students", err)
	}

	return students, total, nil
}

// Update updates a student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET student_number = $2, enrollment_year = $3, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		student.ID,
		student.StudentNumber,
		student.EnrollmentYear,
	)
	if err != nil {
		return mapError("update student", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update student", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes a student record
func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return mapError("delete student", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete student", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

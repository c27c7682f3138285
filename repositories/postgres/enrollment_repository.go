package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var enrollmentSortColumns = map[string]string{
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// EnrollmentRepository implements the repositories.EnrollmentRepository interface
type EnrollmentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *DB, logger *zap.Logger) repositories.EnrollmentRepository {
	return &EnrollmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, student_id, offering_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		enrollment.ID,
		enrollment.StudentID,
		enrollment.OfferingID,
		enrollment.Status,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	)
	if err != nil {
		return mapError("create enrollment", err)
	}

	r.logger.Debug("enrollment created", zap.String("id", enrollment.ID.String()))
	return nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, offering_id, status, created_at, updated_at
		FROM enrollments
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	enrollment := &models.Enrollment{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.OfferingID,
		&enrollment.Status,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get enrollment", err)
	}

	return enrollment, nil
}

// List retrieves enrollments with pagination
func (r *EnrollmentRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Enrollment, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&total); err != nil {
		return nil, 0, mapError("count enrollments", err)
	}

	query := `
		SELECT id, student_id, offering_id, status, created_at, updated_at
		FROM enrollments
	` + orderClause(enrollmentSortColumns, params) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := executor.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, mapError("list enrollments", err)
	}
	defer rows.Close()

	enrollments, err := scanEnrollments(rows)
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

// ListByOffering retrieves all enrollments of a course offering
func (r *EnrollmentRepository) ListByOffering(ctx context.Context, offeringID uuid.UUID) ([]*models.Enrollment, error) {
	query := `
		SELECT id, student_id, offering_id, status, created_at, updated_at
		FROM enrollments
		WHERE offering_id = $1
		ORDER BY created_at ASC
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, offeringID)
	if err != nil {
		return nil, mapError("list enrollments by offering", err)
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// Update updates an enrollment
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		UPDATE enrollments
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, enrollment.ID, enrollment.Status)
	if err != nil {
		return mapError("update enrollment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update enrollment", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes an enrollment
func (r *EnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return mapError("delete enrollment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete enrollment", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// scanEnrollments reads all rows into enrollment models
func scanEnrollments(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment := &models.Enrollment{}
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.OfferingID,
			&enrollment.Status,
			&enrollment.CreatedAt,
			&enrollment.UpdatedAt,
		); err != nil {
			return nil, mapError("scan enrollment", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("scan enrollments", err)
	}
	return enrollments, nil
}

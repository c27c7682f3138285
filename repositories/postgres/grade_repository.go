package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var gradeSortColumns = map[string]string{
	"value":     "value",
	"letter":    "letter",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GradeRepository implements the repositories.GradeRepository interface
type GradeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *DB, logger *zap.Logger) repositories.GradeRepository {
	return &GradeRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new grade
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (id, enrollment_id, value, letter, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		grade.ID,
		grade.EnrollmentID,
		grade.Value,
		grade.Letter,
		grade.CreatedAt,
		grade.UpdatedAt,
	)
	if err != nil {
		return mapError("create grade", err)
	}

	r.logger.Debug("grade created", zap.String("id", grade.ID.String()))
	return nil
}

// GetByID retrieves a grade by ID
func (r *GradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Grade, error) {
	query := `
		SELECT id, enrollment_id, value, letter, created_at, updated_at
		FROM grades
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	grade := &models.Grade{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&grade.ID,
		&grade.EnrollmentID,
		&grade.Value,
		&grade.Letter,
		&grade.CreatedAt,
		&grade.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get grade", err)
	}

	return grade, nil
}

// List retrieves grades with pagination
func (r *GradeRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Grade, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM grades`).Scan(&total); err != nil {
		return nil, 0, mapError("count grades", err)
	}

	query := `
		SELECT id, enrollment_id, value, letter, created_at, updated_at
		FROM grades
	` + orderClause(gradeSortColumns, params) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := executor.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, mapError("list grades", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(
			&grade.ID,
			&grade.EnrollmentID,
			&grade.Value,
			&grade.Letter,
			&grade.CreatedAt,
			&grade.UpdatedAt,
		); err != nil {
			return nil, 0, mapError("scan grade", err)
		}
		grades = append(grades, grade)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list grades", err)
	}

	return grades, total, nil
}

// Update updates a grade
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET value = $2, letter = $3, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, grade.ID, grade.Value, grade.Letter)
	if err != nil {
		return mapError("update grade", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update grade", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes a grade
func (r *GradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return mapError("delete grade", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete grade", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

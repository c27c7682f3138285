package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var teacherSortColumns = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// TeacherRepository implements the repositories.TeacherRepository interface
type TeacherRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *DB, logger *zap.Logger) repositories.TeacherRepository {
	return &TeacherRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new teacher record
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (id, title, office_number, phone, department_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		teacher.ID,
		teacher.Title,
		teacher.OfficeNumber,
		teacher.Phone,
		teacher.DepartmentID,
		teacher.UserID,
		teacher.CreatedAt,
		teacher.UpdatedAt,
	)
	if err != nil {
		return mapError("create teacher", err)
	}

	r.logger.Debug("teacher created", zap.String("id", teacher.ID.String()))
	return nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByUserID retrieves a teacher by the owning user account
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Teacher, error) {
	return r.getBy(ctx, "user_id = $1", userID)
}

func (r *TeacherRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Teacher, error) {
	query := `
		SELECT id, title, office_number, phone, department_id, user_id, created_at, updated_at
		FROM teachers
		WHERE ` + where

	executor := GetExecutor(ctx, r.db)
	teacher := &models.Teacher{}

	err := executor.QueryRowContext(ctx, query, arg).Scan(
		&teacher.ID,
		&teacher.Title,
		&teacher.OfficeNumber,
		&teacher.Phone,
		&teacher.DepartmentID,
		&teacher.UserID,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get teacher", err)
	}

	return teacher, nil
}

// List retrieves teachers with pagination
func (r *TeacherRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Teacher, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&total); err != nil {
		return nil, 0, mapError("count teachers", err)
	}

	query := `
		SELECT id, title, office_number, phone, department_id, user_id, created_at, updated_at
		FROM teachers
	` + orderClause(teacherSortColumns, params) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := executor.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, mapError("list teachers", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher := &models.Teacher{}
		if err := rows.Scan(
			&teacher.ID,
			&teacher.Title,
			&teacher.OfficeNumber,
			&teacher.Phone,
			&teacher.DepartmentID,
			&teacher.UserID,
			&teacher.CreatedAt,
			&teacher.UpdatedAt,
		); err != nil {
			return nil, 0, mapError("scan teacher", err)
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list teachers", err)
	}

	return teachers, total, nil
}

// Update updates a teacher record
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET title = $2, office_number = $3, phone = $4, department_id = $5, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		teacher.ID,
		teacher.Title,
		teacher.OfficeNumber,
		teacher.Phone,
		teacher.DepartmentID,
	)
	if err != nil {
		return mapError("update teacher", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update teacher", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes a teacher record
func (r *TeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return mapError("delete teacher", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete teacher", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

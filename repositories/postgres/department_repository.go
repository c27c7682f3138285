package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var departmentSortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// DepartmentRepository implements the repositories.DepartmentRepository interface
type DepartmentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *DB, logger *zap.Logger) repositories.DepartmentRepository {
	return &DepartmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		department.ID,
		department.Name,
		department.CreatedAt,
		department.UpdatedAt,
	)
	if err != nil {
		return mapError("create department", err)
	}

	r.logger.Debug("department created",
		zap.String("id", department.ID.String()),
		zap.String("name", department.Name))
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	department := &models.Department{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.CreatedAt,
		&department.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get department", err)
	}

	return department, nil
}

// List retrieves departments with pagination
func (r *DepartmentRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Department, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM departments`).Scan(&total); err != nil {
		return nil, 0, mapError("count departments", err)
	}

	query := `
		SELECT id, name, created_at, updated_at
		FROM departments
	` + orderClause(departmentSortColumns, params) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := executor.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, mapError("list departments", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		department := &models.Department{}
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.CreatedAt,
			&department.UpdatedAt,
		); err != nil {
			return nil, 0, mapError("scan department", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list departments", err)
	}

	return departments, total, nil
}

// Update updates a department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	query := `
		UPDATE departments
		SET name = $2, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, department.ID, department.Name)
	if err != nil {
		return mapError("update department", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update department", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes a department
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return mapError("delete department", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete department", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("department deleted", zap.String("id", id.String()))
	return nil
}

package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var courseSortColumns = map[string]string{
	"code":      "code",
	"name":      "name",
	"credits":   "credits",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// CourseRepository implements the repositories.CourseRepository interface
type CourseRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *DB, logger *zap.Logger) repositories.CourseRepository {
	return &CourseRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (id, code, name, credits, department_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		course.ID,
		course.Code,
		course.Name,
		course.Credits,
		course.DepartmentID,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return mapError("create course", err)
	}

	r.logger.Debug("course created",
		zap.String("id", course.ID.String()),
		zap.String("code", course.Code))
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `
		SELECT id, code, name, credits, department_id, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	course := &models.Course{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.Credits,
		&course.DepartmentID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get course", err)
	}

	return course, nil
}

// List retrieves courses with pagination
func (r *CourseRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Course, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, mapError("count courses", err)
	}

	query := `
		SELECT id, code, name, credits, department_id, created_at, updated_at
		FROM courses
	` + orderClause(courseSortColumns, params) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := executor.QueryContext(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, mapError("list courses", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Credits,
			&course.DepartmentID,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, 0, mapError("scan course", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list courses", err)
	}

	return courses, total, nil
}

// Update updates a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET code = $2, name = $3, credits = $4, department_id = $5, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		course.ID,
		course.Code,
		course.Name,
		course.Credits,
		course.DepartmentID,
	)
	if err != nil {
		return mapError("update course", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update course", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes a course
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return mapError("delete course", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete course", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

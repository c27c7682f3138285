package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

var offeringSortColumns = map[string]string{
	"semester":     "semester",
	"academicYear": "academic_year",
	"capacity":     "capacity",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// CourseOfferingRepository implements the repositories.CourseOfferingRepository interface
type CourseOfferingRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCourseOfferingRepository creates a new course offering repository
func NewCourseOfferingRepository(db *DB, logger *zap.Logger) repositories.CourseOfferingRepository {
	return &CourseOfferingRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new course offering
func (r *CourseOfferingRepository) Create(ctx context.Context, offering *models.CourseOffering) error {
	query := `
		INSERT INTO course_offerings (id, course_id, teacher_id, semester, academic_year, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		offering.ID,
		offering.CourseID,
		offering.TeacherID,
		offering.Semester,
		offering.AcademicYear,
		offering.Capacity,
		offering.CreatedAt,
		offering.UpdatedAt,
	)
	if err != nil {
		return mapError("create course offering", err)
	}

	r.logger.Debug("course offering created", zap.String("id", offering.ID.String()))
	return nil
}

// GetByID retrieves a course offering by ID
func (r *CourseOfferingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CourseOffering, error) {
	query := `
		SELECT id, course_id, teacher_id, semester, academic_year, capacity, created_at, updated_at
		FROM course_offerings
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	offering := &models.CourseOffering{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&offering.ID,
		&offering.CourseID,
		&offering.TeacherID,
		&offering.Semester,
		&offering.AcademicYear,
		&offering.Capacity,
		&offering.CreatedAt,
		&offering.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get course offering", err)
	}

	return offering, nil
}

// List retrieves course offerings with pagination, optionally filtered by term
func (r *CourseOfferingRepository) List(ctx context.Context, params repositories.ListParams, filter repositories.OfferingFilter) ([]*models.CourseOffering, int, error) {
	params = params.Normalize()
	executor := GetExecutor(ctx, r.db)

	// Build the WHERE clause from filter fields that are set
	where := ""
	args := []interface{}{}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		where = fmt.Sprintf("WHERE semester = $%d", len(args))
	}
	if filter.AcademicYear != "" {
		args = append(args, filter.AcademicYear)
		if where == "" {
			where = fmt.Sprintf("WHERE academic_year = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND academic_year = $%d", len(args))
		}
	}

	countQuery := `SELECT COUNT(*) FROM course_offerings ` + where
	var total int
	if err := executor.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count course offerings", err)
	}

	query := `
		SELECT id, course_id, teacher_id, semester, academic_year, capacity, created_at, updated_at
		FROM course_offerings
	` + where + " " + orderClause(offeringSortColumns, params) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError("list course offerings", err)
	}
	defer rows.Close()

	var offerings []*models.CourseOffering
	for rows.Next() {
		offering := &models.CourseOffering{}
		if err := rows.Scan(
			&offering.ID,
			&offering.CourseID,
			&offering.TeacherID,
			&offering.Semester,
			&offering.AcademicYear,
			&offering.Capacity,
			&offering.CreatedAt,
			&offering.UpdatedAt,
		); err != nil {
			return nil, 0, mapError("scan course offering", err)
		}
		offerings = append(offerings, offering)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list course offerings", err)
	}

	return offerings, total, nil
}

// Update updates a course offering
func (r *CourseOfferingRepository) Update(ctx context.Context, offering *models.CourseOffering) error {
	query := `
		UPDATE course_offerings
		SET course_id = $2, teacher_id = $3, semester = $4, academic_year = $5, capacity = $6, updated_at = NOW()
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		offering.ID,
		offering.CourseID,
		offering.TeacherID,
		offering.Semester,
		offering.AcademicYear,
		offering.Capacity,
	)
	if err != nil {
		return mapError("update course offering", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update course offering", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete deletes a course offering
func (r *CourseOfferingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM course_offerings WHERE id = $1`, id)
	if err != nil {
		return mapError("delete course offering", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete course offering", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

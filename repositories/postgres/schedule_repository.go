package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

// ScheduleRepository implements the repositories.ScheduleRepository interface
type ScheduleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *DB, logger *zap.Logger) repositories.ScheduleRepository {
	return &ScheduleRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new schedule slot for a course offering
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (id, offering_id, day_of_week, start_time, end_time, room, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		schedule.ID,
		schedule.OfferingID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Room,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return mapError("create schedule", err)
	}

	r.logger.Debug("schedule created", zap.String("id", schedule.ID.String()))
	return nil
}

// ListByOffering retrieves all schedule slots for a course offering
func (r *ScheduleRepository) ListByOffering(ctx context.Context, offeringID uuid.UUID) ([]*models.Schedule, error) {
	query := `
		SELECT id, offering_id, day_of_week, start_time, end_time, room, created_at, updated_at
		FROM schedules
		WHERE offering_id = $1
		ORDER BY day_of_week ASC, start_time ASC
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, offeringID)
	if err != nil {
		return nil, mapError("list schedules", err)
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		schedule := &models.Schedule{}
		if err := rows.Scan(
			&schedule.ID,
			&schedule.OfferingID,
			&schedule.DayOfWeek,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.Room,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		); err != nil {
			return nil, mapError("scan schedule", err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list schedules", err)
	}

	return schedules, nil
}

// Delete deletes a schedule slot
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return mapError("delete schedule", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("delete schedule", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

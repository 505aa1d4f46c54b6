package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/pkg/errors"
)

type eventRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewEventRepository - personal calendar events in the events table
func NewEventRepository(db *DB) repository.EventRepository {
	return &eventRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, user_id, title, date, time, duration_hours, location_name, purpose)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.UserID, event.Title, event.Date, event.Time,
		event.DurationHours, event.LocationName, event.Purpose,
	)
	if err != nil {
		r.logger.Error("Failed to create event", zap.String("event_id", event.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `
		SELECT id, user_id, title, date, time, duration_hours, location_name, purpose
		FROM events
		WHERE id = $1
	`

	var event domain.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrEventNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get event", zap.String("event_id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &event, nil
}

func (r *eventRepository) GetByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	query := `
		SELECT id, user_id, title, date, time, duration_hours, location_name, purpose
		FROM events
		WHERE user_id = $1
		ORDER BY date, time
	`

	events := make([]domain.Event, 0)
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		r.logger.Error("Failed to get events for user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, date = $3, time = $4, duration_hours = $5, location_name = $6, purpose = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Date, event.Time,
		event.DurationHours, event.LocationName, event.Purpose,
	)
	if err != nil {
		r.logger.Error("Failed to update event", zap.String("event_id", event.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to check update result", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete event", zap.String("event_id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to check delete result", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrEventNotFound
	}

	return nil
}

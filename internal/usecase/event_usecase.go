package usecase

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/pkg/errors"
	"github.com/wemeet-microservice/internal/usecase/dto"
)

// EventUseCase - personal calendar events
type EventUseCase struct {
	eventRepo repository.EventRepository
	logger    *zap.Logger
}

func NewEventUseCase(eventRepo repository.EventRepository, logger *zap.Logger) *EventUseCase {
	return &EventUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *EventUseCase) Create(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error) {
	if req.Purpose != "" && !domain.IsValidPurpose(req.Purpose) {
		return nil, errors.ErrInvalidPurpose
	}

	duration := req.DurationHours
	if duration == 0 {
		duration = 1
	}

	event := &domain.Event{
		ID:            uuid.New(),
		UserID:        req.UserID,
		Title:         req.Title,
		Date:          req.Date,
		Time:          req.Time,
		DurationHours: duration,
		LocationName:  req.LocationName,
		Purpose:       req.Purpose,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		uc.logger.Error("Failed to create event", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	uc.logger.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.Int64("user_id", event.UserID))

	return event, nil
}

func (uc *EventUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := uc.eventRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, errors.ErrEventNotFound) {
			return nil, errors.ErrEventNotFound
		}
		uc.logger.Error("Failed to get event", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return event, nil
}

func (uc *EventUseCase) GetByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	events, err := uc.eventRepo.GetByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list events", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func (uc *EventUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*domain.Event, error) {
	if req.Purpose != "" && !domain.IsValidPurpose(req.Purpose) {
		return nil, errors.ErrInvalidPurpose
	}

	event, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Date = req.Date
	event.Time = req.Time
	if req.DurationHours != 0 {
		event.DurationHours = req.DurationHours
	}
	event.LocationName = req.LocationName
	event.Purpose = req.Purpose

	if err := uc.eventRepo.Update(ctx, event); err != nil {
		if stderrors.Is(err, errors.ErrEventNotFound) {
			return nil, errors.ErrEventNotFound
		}
		uc.logger.Error("Failed to update event", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return event, nil
}

func (uc *EventUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.eventRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, errors.ErrEventNotFound) {
			return errors.ErrEventNotFound
		}
		uc.logger.Error("Failed to delete event", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

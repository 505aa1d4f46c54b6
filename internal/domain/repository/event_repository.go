package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wemeet-microservice/internal/domain"
)

// EventRepository - persistence for personal calendar events
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetByUser(ctx context.Context, userID int64) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wemeet-microservice/internal/domain"
)

// SessionRepository - persistence for meetup sessions
type SessionRepository interface {
	// Save stores a session (create or overwrite) and refreshes its TTL
	Save(ctx context.Context, session *domain.MeetupSession) error

	// Get returns a session or nil when it does not exist
	Get(ctx context.Context, id uuid.UUID) (*domain.MeetupSession, error)

	// Delete removes a session
	Delete(ctx context.Context, id uuid.UUID) error
}

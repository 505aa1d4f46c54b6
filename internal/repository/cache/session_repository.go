package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSessionRepository stores meetup sessions as JSON blobs with a TTL.
// The TTL is the session's lifecycle bound: an abandoned session simply
// expires instead of requiring explicit teardown.
func NewSessionRepository(redis *Redis, ttl time.Duration) repository.SessionRepository {
	return &sessionRepository{
		client: redis.Client(),
		logger: redis.logger,
		ttl:    ttl,
	}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("meetup:session:%s", id)
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.MeetupSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("Failed to marshal session", zap.String("session_id", session.ID.String()), zap.Error(err))
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.String("session_id", session.ID.String()), zap.Error(err))
		return fmt.Errorf("save session: %w", err)
	}

	r.logger.Debug("Session saved",
		zap.String("session_id", session.ID.String()),
		zap.Uint64("request_seq", session.RequestSeq))
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.MeetupSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil // expired or never existed
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.MeetupSession
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("Failed to unmarshal session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}

	r.logger.Debug("Session deleted", zap.String("session_id", id.String()))
	return nil
}

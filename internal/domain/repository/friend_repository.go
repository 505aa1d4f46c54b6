package repository

import (
	"context"

	"github.com/wemeet-microservice/internal/domain"
)

// FriendRepository - stored friend profiles
type FriendRepository interface {
	GetAll(ctx context.Context) ([]domain.Friend, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Friend, error)
}

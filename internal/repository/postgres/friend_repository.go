package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/pkg/errors"
)

type friendRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewFriendRepository - friend profiles stored in the friends table
func NewFriendRepository(db *DB) repository.FriendRepository {
	return &friendRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *friendRepository) GetAll(ctx context.Context) ([]domain.Friend, error) {
	query := `
		SELECT id, name, avatar, lat, lng, favorite_place_ids, preferences
		FROM friends
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load friends", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanFriends(rows)
}

func (r *friendRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Friend, error) {
	if len(ids) == 0 {
		return []domain.Friend{}, nil
	}

	query := `
		SELECT id, name, avatar, lat, lng, favorite_place_ids, preferences
		FROM friends
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to load friends by ids", zap.Int("ids_count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanFriends(rows)
}

func (r *friendRepository) scanFriends(rows *sql.Rows) ([]domain.Friend, error) {
	friends := make([]domain.Friend, 0)

	for rows.Next() {
		var f domain.Friend
		var favorites pq.Int64Array
		var preferences []byte

		if err := rows.Scan(&f.ID, &f.Name, &f.Avatar, &f.Lat, &f.Lng, &favorites, &preferences); err != nil {
			r.logger.Error("Failed to scan friend row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}

		f.FavoritePlaceIDs = []int64(favorites)
		if len(preferences) > 0 {
			if err := json.Unmarshal(preferences, &f.Preferences); err != nil {
				r.logger.Warn("Failed to parse friend preferences", zap.Int64("friend_id", f.ID), zap.Error(err))
			}
		}

		friends = append(friends, f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Friend rows iteration failed", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return friends, nil
}

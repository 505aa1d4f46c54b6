package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/pkg/errors"
)

type hotspotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewHotspotRepository - hotspot reference list stored in the hotspots table.
// Row order (position column) is significant: it is the tie-break order for
// candidate ranking.
func NewHotspotRepository(db *DB) repository.HotspotRepository {
	return &hotspotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *hotspotRepository) GetAll(ctx context.Context) ([]domain.NamedHotspot, error) {
	query := `
		SELECT name, lat, lng
		FROM hotspots
		ORDER BY position
	`

	hotspots := make([]domain.NamedHotspot, 0)
	if err := r.db.SelectContext(ctx, &hotspots, query); err != nil {
		r.logger.Error("Failed to load hotspots", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return hotspots, nil
}

func (r *hotspotRepository) Search(ctx context.Context, q string, limit int) ([]domain.NamedHotspot, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT name, lat, lng
		FROM hotspots
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY position
		LIMIT $2
	`

	hotspots := make([]domain.NamedHotspot, 0)
	if err := r.db.SelectContext(ctx, &hotspots, query, q, limit); err != nil {
		r.logger.Error("Failed to search hotspots", zap.String("query", q), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return hotspots, nil
}

func (r *hotspotRepository) Seed(ctx context.Context, hotspots []domain.NamedHotspot) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM hotspots`); err != nil {
		r.logger.Error("Failed to count hotspots", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if count > 0 {
		return nil // already seeded
	}

	query := `
		INSERT INTO hotspots (position, name, lat, lng)
		VALUES ($1, $2, $3, $4)
	`

	for i, h := range hotspots {
		if _, err := r.db.ExecContext(ctx, query, i, h.Name, h.Lat, h.Lng); err != nil {
			r.logger.Error("Failed to seed hotspot", zap.String("name", h.Name), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	r.logger.Info("Hotspots seeded", zap.Int("count", len(hotspots)))
	return nil
}

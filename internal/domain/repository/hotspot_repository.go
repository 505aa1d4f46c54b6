package repository

import (
	"context"

	"github.com/wemeet-microservice/internal/domain"
)

// HotspotRepository - access to the static named hotspot reference list
type HotspotRepository interface {
	// GetAll returns every hotspot in stored order
	GetAll(ctx context.Context) ([]domain.NamedHotspot, error)

	// Search returns hotspots whose name contains the query substring
	Search(ctx context.Context, query string, limit int) ([]domain.NamedHotspot, error)

	// Seed inserts the built-in hotspot list when the table is empty
	Seed(ctx context.Context, hotspots []domain.NamedHotspot) error
}

package repository

import (
	"context"

	"github.com/wemeet-microservice/internal/domain"
)

// RecommenderRepository - the external place-recommendation collaborator.
// Ranking, tag expansion and manual-location geocoding all happen on the
// other side of this boundary.
type RecommenderRepository interface {
	Recommend(ctx context.Context, req *domain.RecommendationRequest) ([]domain.PlaceResult, error)
}

package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/pkg/errors"
	"github.com/wemeet-microservice/internal/usecase/dto"
)

// ReferenceUseCase - read access to the reference data backing the app:
// hotspots, friend profiles and the purpose catalog
type ReferenceUseCase struct {
	hotspotRepo repository.HotspotRepository
	friendRepo  repository.FriendRepository
	logger      *zap.Logger
}

func NewReferenceUseCase(
	hotspotRepo repository.HotspotRepository,
	friendRepo repository.FriendRepository,
	logger *zap.Logger,
) *ReferenceUseCase {
	return &ReferenceUseCase{
		hotspotRepo: hotspotRepo,
		friendRepo:  friendRepo,
		logger:      logger,
	}
}

// Hotspots returns the full hotspot list in stored order
func (uc *ReferenceUseCase) Hotspots(ctx context.Context) (*dto.HotspotsResponse, error) {
	hotspots, err := uc.hotspotRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load hotspots", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &dto.HotspotsResponse{Hotspots: hotspots, Total: len(hotspots)}, nil
}

// SearchHotspots returns hotspots whose name contains the query
func (uc *ReferenceUseCase) SearchHotspots(ctx context.Context, query string, limit int) (*dto.HotspotsResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	hotspots, err := uc.hotspotRepo.Search(ctx, query, limit)
	if err != nil {
		uc.logger.Error("Failed to search hotspots", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &dto.HotspotsResponse{Hotspots: hotspots, Total: len(hotspots)}, nil
}

// Friends returns all stored friend profiles
func (uc *ReferenceUseCase) Friends(ctx context.Context) (*dto.FriendsResponse, error) {
	friends, err := uc.friendRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load friends", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if friends == nil {
		friends = []domain.Friend{}
	}
	return &dto.FriendsResponse{Friends: friends, Total: len(friends)}, nil
}

// Purposes returns the static purpose/filter-tag catalog
func (uc *ReferenceUseCase) Purposes() *dto.PurposesResponse {
	return &dto.PurposesResponse{Purposes: domain.PurposeCatalog()}
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/pkg/errors"
	"github.com/wemeet-microservice/internal/usecase/dto"
)

// Anchor used when no region can be computed (manual-location-only sets).
// The collaborator resolves manual locations server-side; the coordinates
// are the Seoul City Hall fallback the product has always used.
const (
	fallbackLocationName = "중간지점"
	fallbackLat          = 37.5665
	fallbackLng          = 126.9780
)

// RecommendationUseCase - assembles recommendation requests, talks to the
// external collaborator and applies responses under the last-issued-wins
// sequence guard
type RecommendationUseCase struct {
	sessionRepo     repository.SessionRepository
	recommenderRepo repository.RecommenderRepository
	cacheRepo       repository.CacheRepository
	streamRepo      repository.StreamRepository
	logger          *zap.Logger
	cacheTTL        time.Duration
}

func NewRecommendationUseCase(
	sessionRepo repository.SessionRepository,
	recommenderRepo repository.RecommenderRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		sessionRepo:     sessionRepo,
		recommenderRepo: recommenderRepo,
		cacheRepo:       cacheRepo,
		streamRepo:      streamRepo,
		logger:          logger,
		cacheTTL:        cacheTTL,
	}
}

// GetResults returns the last held place results without touching the
// collaborator
func (uc *RecommendationUseCase) GetResults(ctx context.Context, id uuid.UUID) (*dto.RecommendationsResponse, error) {
	session, err := uc.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return convertResults(session), nil
}

// RefreshNow issues a synchronous refresh: a new sequence number, one
// collaborator call, one guarded apply. A collaborator failure is not an
// error for the caller; the previous results are simply returned unchanged.
func (uc *RecommendationUseCase) RefreshNow(ctx context.Context, id uuid.UUID) (*dto.RecommendationsResponse, error) {
	session, err := uc.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.RequestSeq++
	session.Refreshing = true
	session.UpdatedAt = time.Now().UTC()
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.ErrCacheError
	}

	seq := session.RequestSeq
	results, fetchErr := uc.fetch(ctx, session)

	applied, err := uc.apply(ctx, session.ID, seq, results, fetchErr)
	if err != nil {
		return nil, err
	}
	if applied == nil {
		return nil, errors.ErrSessionNotFound
	}
	return convertResults(applied), nil
}

// ProcessRefresh handles one refresh event from the stream. Events for
// missing (expired/deleted) sessions and events superseded by a newer
// sequence are dropped without an error so the worker can ACK them.
func (uc *RecommendationUseCase) ProcessRefresh(ctx context.Context, event domain.MeetupRefreshEvent) error {
	session, err := uc.sessionRepo.Get(ctx, event.SessionID)
	if err != nil {
		return err
	}
	if session == nil {
		uc.logger.Debug("Refresh event for missing session, dropping",
			zap.String("session_id", event.SessionID.String()),
			zap.Uint64("seq", event.Seq))
		return nil
	}

	// A newer request was issued after this event was enqueued; fetching
	// would be wasted work and applying would be wrong.
	if event.Seq != session.RequestSeq {
		uc.publishUpdated(ctx, domain.MeetupUpdatedEvent{
			SessionID: session.ID,
			Seq:       event.Seq,
			Stale:     true,
		})
		return nil
	}

	results, fetchErr := uc.fetch(ctx, session)
	_, err = uc.apply(ctx, session.ID, event.Seq, results, fetchErr)
	return err
}

// fetch assembles the payload and calls the collaborator, with a short-TTL
// cache keyed on the payload content
func (uc *RecommendationUseCase) fetch(ctx context.Context, session *domain.MeetupSession) ([]domain.PlaceResult, error) {
	req := buildRecommendationRequest(session)
	key := recommendationCacheKey(req)

	if cached, err := uc.cacheRepo.Get(ctx, key); err == nil && cached != nil {
		var results []domain.PlaceResult
		if err := json.Unmarshal(cached, &results); err == nil {
			uc.logger.Debug("Recommendation cache hit",
				zap.String("session_id", session.ID.String()),
				zap.String("key", key))
			return results, nil
		}
	}

	results, err := uc.recommenderRepo.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache recommendations", zap.Error(err))
		}
	}

	return results, nil
}

// apply re-reads the session and applies the response under the sequence
// guard: only the latest issued request may replace the held results, and
// never twice. Stale and failed responses leave the previous results
// intact. Returns the session as stored afterwards, or nil when it no
// longer exists.
func (uc *RecommendationUseCase) apply(
	ctx context.Context,
	id uuid.UUID,
	seq uint64,
	results []domain.PlaceResult,
	fetchErr error,
) (*domain.MeetupSession, error) {
	session, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.ErrCacheError
	}
	if session == nil {
		// Session torn down while the request was in flight
		uc.logger.Debug("Session gone before response applied",
			zap.String("session_id", id.String()),
			zap.Uint64("seq", seq))
		return nil, nil
	}

	if fetchErr != nil {
		uc.logger.Warn("Recommendation refresh failed, keeping previous results",
			zap.String("session_id", id.String()),
			zap.Uint64("seq", seq),
			zap.Error(fetchErr))

		if seq == session.RequestSeq {
			session.Refreshing = false
			session.UpdatedAt = time.Now().UTC()
			if err := uc.sessionRepo.Save(ctx, session); err != nil {
				return nil, errors.ErrCacheError
			}
		}
		uc.publishUpdated(ctx, domain.MeetupUpdatedEvent{
			SessionID: session.ID,
			Seq:       seq,
			Error:     fetchErr.Error(),
		})
		return session, nil
	}

	if seq != session.RequestSeq || seq <= session.AppliedSeq {
		uc.logger.Debug("Discarding stale recommendation response",
			zap.String("session_id", id.String()),
			zap.Uint64("response_seq", seq),
			zap.Uint64("request_seq", session.RequestSeq),
			zap.Uint64("applied_seq", session.AppliedSeq))
		uc.publishUpdated(ctx, domain.MeetupUpdatedEvent{
			SessionID: session.ID,
			Seq:       seq,
			Stale:     true,
		})
		return session, nil
	}

	if results == nil {
		results = []domain.PlaceResult{}
	}
	session.Results = results
	session.AppliedSeq = seq
	session.Refreshing = false
	session.UpdatedAt = time.Now().UTC()

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.ErrCacheError
	}

	region := ""
	if session.SelectedRegion != nil {
		region = session.SelectedRegion.Name
	}
	uc.publishUpdated(ctx, domain.MeetupUpdatedEvent{
		SessionID:   session.ID,
		Seq:         seq,
		ResultCount: len(results),
		Region:      region,
	})

	uc.logger.Info("Recommendations applied",
		zap.String("session_id", session.ID.String()),
		zap.Uint64("seq", seq),
		zap.Int("result_count", len(results)),
		zap.String("region", region))

	return session, nil
}

func (uc *RecommendationUseCase) loadSession(ctx context.Context, id uuid.UUID) (*domain.MeetupSession, error) {
	session, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.ErrCacheError
	}
	if session == nil {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

func (uc *RecommendationUseCase) publishUpdated(ctx context.Context, event domain.MeetupUpdatedEvent) {
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamMeetupUpdated, event); err != nil {
		uc.logger.Warn("Failed to publish updated event",
			zap.String("session_id", event.SessionID.String()),
			zap.Error(err))
	}
}

// buildRecommendationRequest assembles a fresh payload from session state.
// The payload does not outlive the call.
func buildRecommendationRequest(session *domain.MeetupSession) *domain.RecommendationRequest {
	req := &domain.RecommendationRequest{
		Users:           session.Participants,
		Purpose:         session.Purpose,
		ManualLocations: domain.TrimManualLocations(session.ManualLocations),
		Tags:            session.Tags,
	}

	switch {
	case session.SelectedRegion != nil:
		req.LocationName = session.SelectedRegion.Name
		req.CurrentLat = session.SelectedRegion.Lat
		req.CurrentLng = session.SelectedRegion.Lng
	case session.Centroid != nil:
		req.LocationName = fallbackLocationName
		req.CurrentLat = session.Centroid.Lat
		req.CurrentLng = session.Centroid.Lng
	default:
		req.LocationName = fallbackLocationName
		req.CurrentLat = fallbackLat
		req.CurrentLng = fallbackLng
	}

	return req
}

// recommendationCacheKey hashes the payload content so identical requests
// within the TTL share one collaborator call
func recommendationCacheKey(req *domain.RecommendationRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return "meetup:rec:unkeyed"
	}
	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf("meetup:rec:%x", h.Sum64())
}

func convertResults(session *domain.MeetupSession) *dto.RecommendationsResponse {
	results := session.Results
	if results == nil {
		results = []domain.PlaceResult{}
	}
	return &dto.RecommendationsResponse{
		Results:    results,
		Refreshing: session.Refreshing,
		AppliedSeq: session.AppliedSeq,
	}
}

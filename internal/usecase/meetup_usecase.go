package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/pkg/errors"
	"github.com/wemeet-microservice/internal/pkg/utils"
	"github.com/wemeet-microservice/internal/usecase/dto"
)

// maxCandidates - how many nearest hotspots are offered for selection
const maxCandidates = 3

// ComputeCandidates computes the participants' centroid and ranks the static
// hotspot list by Euclidean distance in raw degree space, nearest first.
// Ties keep the hotspot list order (stable sort). Pure function.
func ComputeCandidates(
	hotspots []domain.NamedHotspot,
	participants []domain.Participant,
) (domain.Coordinate, []domain.CandidateRegion) {
	if len(participants) == 0 {
		return domain.Coordinate{}, nil
	}

	var sumLat, sumLng float64
	for _, p := range participants {
		sumLat += p.Coordinate.Lat
		sumLng += p.Coordinate.Lng
	}
	centroid := domain.Coordinate{
		Lat: sumLat / float64(len(participants)),
		Lng: sumLng / float64(len(participants)),
	}

	candidates := make([]domain.CandidateRegion, 0, len(hotspots))
	for _, h := range hotspots {
		candidates = append(candidates, domain.CandidateRegion{
			Name:     h.Name,
			Lat:      h.Lat,
			Lng:      h.Lng,
			Distance: utils.DegreeDistance(centroid.Lat, centroid.Lng, h.Lat, h.Lng),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return centroid, candidates
}

// MeetupUseCase - owns the meetup session lifecycle and all midpoint
// selection state transitions
type MeetupUseCase struct {
	sessionRepo repository.SessionRepository
	friendRepo  repository.FriendRepository
	streamRepo  repository.StreamRepository
	hotspots    []domain.NamedHotspot
	logger      *zap.Logger
}

// NewMeetupUseCase - hotspots are loaded once at startup and immutable after
func NewMeetupUseCase(
	sessionRepo repository.SessionRepository,
	friendRepo repository.FriendRepository,
	streamRepo repository.StreamRepository,
	hotspots []domain.NamedHotspot,
	logger *zap.Logger,
) *MeetupUseCase {
	return &MeetupUseCase{
		sessionRepo: sessionRepo,
		friendRepo:  friendRepo,
		streamRepo:  streamRepo,
		hotspots:    hotspots,
		logger:      logger,
	}
}

// Candidates - stateless candidate computation for callers that manage
// their own state
func (uc *MeetupUseCase) Candidates(req dto.ComputeCandidatesRequest) (*dto.CandidatesResponse, error) {
	participants := convertParticipants(req.Participants)
	if len(participants) == 0 {
		return nil, errors.ErrNoStartingPoint
	}

	centroid, candidates := ComputeCandidates(uc.hotspots, participants)

	result := make([]dto.CandidateRegionDTO, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, dto.ConvertCandidate(c, &centroid))
	}

	return &dto.CandidatesResponse{
		Centroid:   centroid,
		Candidates: result,
	}, nil
}

// CreateSession starts a new session, computes the initial candidate list
// and triggers the first recommendation refresh
func (uc *MeetupUseCase) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	purpose := req.Purpose
	if purpose == "" {
		purpose = domain.PurposeMeal
	}
	if !domain.IsValidPurpose(purpose) {
		return nil, errors.ErrInvalidPurpose
	}

	participants, err := uc.resolveParticipants(ctx, req.FriendIDs, req.Participants)
	if err != nil {
		return nil, err
	}

	manual := domain.TrimManualLocations(req.ManualLocations)
	if len(participants) == 0 && len(manual) == 0 {
		return nil, errors.ErrNoStartingPoint
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	session := &domain.MeetupSession{
		ID:              uuid.New(),
		OwnerID:         req.OwnerID,
		Participants:    participants,
		ManualLocations: manual,
		Purpose:         purpose,
		Tags:            tags,
		Results:         []domain.PlaceResult{},
		RequestSeq:      1,
		Refreshing:      true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	uc.recompute(session)

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.ErrCacheError
	}

	uc.publishRefresh(ctx, session)

	uc.logger.Info("Meetup session created",
		zap.String("session_id", session.ID.String()),
		zap.Int("participants", len(participants)),
		zap.Int("manual_locations", len(manual)),
		zap.String("purpose", purpose))

	return dto.ConvertSession(session), nil
}

// GetSession returns the current session state
func (uc *MeetupUseCase) GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uc.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ConvertSession(session), nil
}

// DeleteSession ends the session lifecycle. In-flight refreshes for the
// session arrive at a missing key and are dropped by the worker.
func (uc *MeetupUseCase) DeleteSession(ctx context.Context, id uuid.UUID) error {
	session, err := uc.loadSession(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.sessionRepo.Delete(ctx, session.ID); err != nil {
		return errors.ErrCacheError
	}
	return nil
}

// ReplaceParticipants swaps the participant set wholesale. The candidate
// list is recomputed and the selected region unconditionally resets to the
// new nearest candidate, overriding any prior manual pick.
func (uc *MeetupUseCase) ReplaceParticipants(ctx context.Context, id uuid.UUID, req dto.ReplaceParticipantsRequest) (*dto.SessionResponse, error) {
	session, err := uc.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	participants, err := uc.resolveParticipants(ctx, req.FriendIDs, req.Participants)
	if err != nil {
		return nil, err
	}

	manual := domain.TrimManualLocations(req.ManualLocations)
	if len(participants) == 0 && len(manual) == 0 {
		return nil, errors.ErrNoStartingPoint
	}

	session.Participants = participants
	session.ManualLocations = manual
	uc.recompute(session)

	return uc.commit(ctx, session)
}

// SetFilters updates purpose and/or tags and triggers a refresh
func (uc *MeetupUseCase) SetFilters(ctx context.Context, id uuid.UUID, req dto.SetFiltersRequest) (*dto.SessionResponse, error) {
	session, err := uc.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Purpose != "" {
		if !domain.IsValidPurpose(req.Purpose) {
			return nil, errors.ErrInvalidPurpose
		}
		session.Purpose = req.Purpose
	}
	if req.Tags != nil {
		session.Tags = req.Tags
	}

	return uc.commit(ctx, session)
}

// SelectRegion overrides which candidate the recommendations are anchored
// to. The region must be a member of the current candidate list; the list
// itself is not altered.
func (uc *MeetupUseCase) SelectRegion(ctx context.Context, id uuid.UUID, name string) (*dto.SessionResponse, error) {
	session, err := uc.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	var selected *domain.CandidateRegion
	for i := range session.Candidates {
		if session.Candidates[i].Name == name {
			selected = &session.Candidates[i]
			break
		}
	}
	if selected == nil {
		return nil, errors.ErrRegionNotCandidate.WithDetails(map[string]interface{}{
			"region": name,
		})
	}

	region := *selected
	session.SelectedRegion = &region

	return uc.commit(ctx, session)
}

// loadSession maps a missing key to ErrSessionNotFound
func (uc *MeetupUseCase) loadSession(ctx context.Context, id uuid.UUID) (*domain.MeetupSession, error) {
	session, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.ErrCacheError
	}
	if session == nil {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

// recompute refreshes centroid, candidates and the auto-selected region
// from the current participant set. With a manual-location-only set there
// is nothing to anchor on, so the candidate list is empty and the
// collaborator resolves locations server-side.
func (uc *MeetupUseCase) recompute(session *domain.MeetupSession) {
	if len(session.Participants) == 0 {
		session.Centroid = nil
		session.Candidates = []domain.CandidateRegion{}
		session.SelectedRegion = nil
		return
	}

	centroid, candidates := ComputeCandidates(uc.hotspots, session.Participants)
	session.Centroid = &centroid
	session.Candidates = candidates
	if len(candidates) > 0 {
		nearest := candidates[0]
		session.SelectedRegion = &nearest
	} else {
		session.SelectedRegion = nil
	}
}

// commit bumps the request sequence, persists the session and enqueues the
// refresh. Every mutation issues a new request immediately; there is no
// debouncing.
func (uc *MeetupUseCase) commit(ctx context.Context, session *domain.MeetupSession) (*dto.SessionResponse, error) {
	session.RequestSeq++
	session.Refreshing = true
	session.UpdatedAt = time.Now().UTC()

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.ErrCacheError
	}

	uc.publishRefresh(ctx, session)

	return dto.ConvertSession(session), nil
}

// publishRefresh is fire-and-forget: a lost refresh event only means the
// results stay stale until the next user action
func (uc *MeetupUseCase) publishRefresh(ctx context.Context, session *domain.MeetupSession) {
	event := domain.MeetupRefreshEvent{
		SessionID: session.ID,
		Seq:       session.RequestSeq,
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamMeetupRefresh, event); err != nil {
		uc.logger.Warn("Failed to publish refresh event",
			zap.String("session_id", session.ID.String()),
			zap.Uint64("seq", session.RequestSeq),
			zap.Error(err))
	}
}

// resolveParticipants merges explicit participant inputs with stored friend
// profiles referenced by id. Explicit inputs come first so the requesting
// user leads the list.
func (uc *MeetupUseCase) resolveParticipants(ctx context.Context, friendIDs []int64, inputs []dto.ParticipantInput) ([]domain.Participant, error) {
	participants := convertParticipants(inputs)

	if len(friendIDs) > 0 {
		friends, err := uc.friendRepo.GetByIDs(ctx, friendIDs)
		if err != nil {
			return nil, err
		}
		for i := range friends {
			participants = append(participants, friends[i].ToParticipant())
		}
	}

	return participants, nil
}

func convertParticipants(inputs []dto.ParticipantInput) []domain.Participant {
	participants := make([]domain.Participant, 0, len(inputs))
	for _, in := range inputs {
		participants = append(participants, domain.Participant{
			ID:               in.ID,
			DisplayName:      in.Name,
			Coordinate:       domain.Coordinate{Lat: in.Lat, Lng: in.Lng},
			FavoritePlaceIDs: in.FavoritePlaceIDs,
			Preferences:      in.Preferences,
		})
	}
	return participants
}

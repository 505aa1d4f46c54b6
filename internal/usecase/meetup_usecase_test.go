package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/pkg/errors"
	"github.com/wemeet-microservice/internal/usecase"
	"github.com/wemeet-microservice/internal/usecase/dto"
)

// memorySessionRepo is an in-memory SessionRepository. Sessions go through
// a round-trip copy on Get, matching the serialize/deserialize behavior of
// the Redis-backed implementation.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.MeetupSession
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[uuid.UUID]domain.MeetupSession)}
}

func (r *memorySessionRepo) Save(_ context.Context, session *domain.MeetupSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepo) Get(_ context.Context, id uuid.UUID) (*domain.MeetupSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// MockFriendRepository is a mock of FriendRepository
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) GetAll(ctx context.Context) ([]domain.Friend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Friend), args.Error(1)
}

func (m *MockFriendRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Friend, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Friend), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func newMeetupUseCase(sessionRepo *memorySessionRepo, friendRepo *MockFriendRepository, streamRepo *MockStreamRepository) *usecase.MeetupUseCase {
	return usecase.NewMeetupUseCase(sessionRepo, friendRepo, streamRepo, domain.DefaultHotspots(), zap.NewNop())
}

func participantAt(id int64, name string, lat, lng float64) dto.ParticipantInput {
	return dto.ParticipantInput{ID: id, Name: name, Lat: lat, Lng: lng}
}

func TestComputeCandidates(t *testing.T) {
	hotspots := domain.DefaultHotspots()

	t.Run("two participants yield centroid and three nearest candidates", func(t *testing.T) {
		participants := []domain.Participant{
			{ID: 1, Coordinate: domain.Coordinate{Lat: 37.557, Lng: 126.924}},
			{ID: 2, Coordinate: domain.Coordinate{Lat: 37.498, Lng: 127.027}},
		}

		centroid, candidates := usecase.ComputeCandidates(hotspots, participants)

		assert.InDelta(t, 37.5275, centroid.Lat, 1e-9)
		assert.InDelta(t, 126.9755, centroid.Lng, 1e-9)

		require.Len(t, candidates, 3)
		for i := 1; i < len(candidates); i++ {
			assert.LessOrEqual(t, candidates[i-1].Distance, candidates[i].Distance)
		}
	})

	t.Run("participant on a hotspot ranks it first with zero distance", func(t *testing.T) {
		participants := []domain.Participant{
			{ID: 1, Coordinate: domain.Coordinate{Lat: 37.571, Lng: 126.985}},
		}

		centroid, candidates := usecase.ComputeCandidates(hotspots, participants)

		assert.Equal(t, 37.571, centroid.Lat)
		require.NotEmpty(t, candidates)
		assert.Equal(t, "종로", candidates[0].Name)
		assert.Zero(t, candidates[0].Distance)
	})

	t.Run("single point north-east of the center ranks 동대문 first", func(t *testing.T) {
		participants := []domain.Participant{
			{ID: 1, Coordinate: domain.Coordinate{Lat: 37.586, Lng: 127.029}},
		}

		centroid, candidates := usecase.ComputeCandidates(hotspots, participants)

		assert.Equal(t, domain.Coordinate{Lat: 37.586, Lng: 127.029}, centroid)
		require.Len(t, candidates, 3)
		assert.Equal(t, "동대문", candidates[0].Name)
		assert.InDelta(t, 0.025, candidates[0].Distance, 1e-9)
	})

	t.Run("no participants yields no candidates", func(t *testing.T) {
		_, candidates := usecase.ComputeCandidates(hotspots, nil)
		assert.Empty(t, candidates)
	})

	t.Run("fewer hotspots than the cap returns them all", func(t *testing.T) {
		short := hotspots[:2]
		participants := []domain.Participant{
			{ID: 1, Coordinate: domain.Coordinate{Lat: 37.55, Lng: 127.0}},
		}

		_, candidates := usecase.ComputeCandidates(short, participants)
		assert.Len(t, candidates, 2)
	})
}

func TestMeetupUseCase_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates session with nearest candidate pre-selected", func(t *testing.T) {
		sessionRepo := newMemorySessionRepo()
		friendRepo := &MockFriendRepository{}
		streamRepo := &MockStreamRepository{}
		streamRepo.On("PublishToStream", ctx, domain.StreamMeetupRefresh, mock.Anything).Return(nil)

		uc := newMeetupUseCase(sessionRepo, friendRepo, streamRepo)

		resp, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
			OwnerID: 1,
			Participants: []dto.ParticipantInput{
				participantAt(1, "지수", 37.557, 126.924),
				participantAt(2, "민준", 37.498, 127.027),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "meal", resp.Purpose)
		require.Len(t, resp.Candidates, 3)
		require.NotNil(t, resp.SelectedRegion)
		assert.Equal(t, resp.Candidates[0].Name, resp.SelectedRegion.Name)
		assert.Equal(t, uint64(1), resp.RequestSeq)
		assert.True(t, resp.Refreshing)

		streamRepo.AssertCalled(t, "PublishToStream", ctx, domain.StreamMeetupRefresh,
			domain.MeetupRefreshEvent{SessionID: uuid.MustParse(resp.ID), Seq: 1})
	})

	t.Run("no participants and no manual locations is rejected", func(t *testing.T) {
		uc := newMeetupUseCase(newMemorySessionRepo(), &MockFriendRepository{}, &MockStreamRepository{})

		_, err := uc.CreateSession(ctx, dto.CreateSessionRequest{OwnerID: 1})
		assert.ErrorIs(t, err, errors.ErrNoStartingPoint)
	})

	t.Run("whitespace-only manual locations do not count as starting points", func(t *testing.T) {
		uc := newMeetupUseCase(newMemorySessionRepo(), &MockFriendRepository{}, &MockStreamRepository{})

		_, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
			OwnerID:         1,
			ManualLocations: []string{"   ", "\t"},
		})
		assert.ErrorIs(t, err, errors.ErrNoStartingPoint)
	})

	t.Run("manual locations alone pass the gate with no candidates", func(t *testing.T) {
		streamRepo := &MockStreamRepository{}
		streamRepo.On("PublishToStream", ctx, domain.StreamMeetupRefresh, mock.Anything).Return(nil)
		uc := newMeetupUseCase(newMemorySessionRepo(), &MockFriendRepository{}, streamRepo)

		resp, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
			OwnerID:         1,
			ManualLocations: []string{"  홍대입구역  ", ""},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"홍대입구역"}, resp.ManualLocations)
		assert.Empty(t, resp.Candidates)
		assert.Nil(t, resp.SelectedRegion)
		assert.Nil(t, resp.Centroid)
	})

	t.Run("friend ids are resolved into participants", func(t *testing.T) {
		friendRepo := &MockFriendRepository{}
		friendRepo.On("GetByIDs", ctx, []int64{7}).Return([]domain.Friend{
			{ID: 7, Name: "하은", Lat: 37.544, Lng: 127.056},
		}, nil)
		streamRepo := &MockStreamRepository{}
		streamRepo.On("PublishToStream", ctx, domain.StreamMeetupRefresh, mock.Anything).Return(nil)

		uc := newMeetupUseCase(newMemorySessionRepo(), friendRepo, streamRepo)

		resp, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
			OwnerID:      1,
			FriendIDs:    []int64{7},
			Participants: []dto.ParticipantInput{participantAt(1, "지수", 37.557, 126.924)},
		})

		require.NoError(t, err)
		require.Len(t, resp.Participants, 2)
		assert.Equal(t, "지수", resp.Participants[0].DisplayName)
		assert.Equal(t, "하은", resp.Participants[1].DisplayName)
	})

	t.Run("invalid purpose is rejected", func(t *testing.T) {
		uc := newMeetupUseCase(newMemorySessionRepo(), &MockFriendRepository{}, &MockStreamRepository{})

		_, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
			OwnerID:      1,
			Purpose:      "skydiving",
			Participants: []dto.ParticipantInput{participantAt(1, "지수", 37.557, 126.924)},
		})
		assert.ErrorIs(t, err, errors.ErrInvalidPurpose)
	})

	t.Run("refresh publish failure does not fail creation", func(t *testing.T) {
		streamRepo := &MockStreamRepository{}
		streamRepo.On("PublishToStream", ctx, domain.StreamMeetupRefresh, mock.Anything).
			Return(assert.AnError)
		uc := newMeetupUseCase(newMemorySessionRepo(), &MockFriendRepository{}, streamRepo)

		resp, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
			OwnerID:      1,
			Participants: []dto.ParticipantInput{participantAt(1, "지수", 37.557, 126.924)},
		})
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}

func TestMeetupUseCase_ReplaceParticipants(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*usecase.MeetupUseCase, *memorySessionRepo, uuid.UUID) {
		t.Helper()
		sessionRepo := newMemorySessionRepo()
		streamRepo := &MockStreamRepository{}
		streamRepo.On("PublishToStream", mock.Anything, domain.StreamMeetupRefresh, mock.Anything).Return(nil)
		uc := newMeetupUseCase(sessionRepo, &MockFriendRepository{}, streamRepo)

		resp, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
			OwnerID: 1,
			Participants: []dto.ParticipantInput{
				participantAt(1, "지수", 37.557, 126.924),
				participantAt(2, "민준", 37.498, 127.027),
			},
		})
		require.NoError(t, err)
		return uc, sessionRepo, uuid.MustParse(resp.ID)
	}

	t.Run("manual region pick is overridden when participants change", func(t *testing.T) {
		uc, _, id := setup(t)

		session, err := uc.GetSession(ctx, id)
		require.NoError(t, err)
		require.Len(t, session.Candidates, 3)

		// Pick the farthest candidate on purpose
		picked, err := uc.SelectRegion(ctx, id, session.Candidates[2].Name)
		require.NoError(t, err)
		assert.Equal(t, session.Candidates[2].Name, picked.SelectedRegion.Name)

		resp, err := uc.ReplaceParticipants(ctx, id, dto.ReplaceParticipantsRequest{
			Participants: []dto.ParticipantInput{
				participantAt(1, "지수", 37.557, 126.924),
				participantAt(2, "민준", 37.498, 127.027),
				participantAt(3, "하은", 37.571, 126.985),
			},
		})
		require.NoError(t, err)

		// The selection always snaps back to the new nearest candidate
		require.NotNil(t, resp.SelectedRegion)
		assert.Equal(t, resp.Candidates[0].Name, resp.SelectedRegion.Name)
	})

	t.Run("same participant set leaves candidates unchanged", func(t *testing.T) {
		uc, _, id := setup(t)

		before, err := uc.GetSession(ctx, id)
		require.NoError(t, err)

		after, err := uc.ReplaceParticipants(ctx, id, dto.ReplaceParticipantsRequest{
			Participants: []dto.ParticipantInput{
				participantAt(1, "지수", 37.557, 126.924),
				participantAt(2, "민준", 37.498, 127.027),
			},
		})
		require.NoError(t, err)

		require.Len(t, after.Candidates, len(before.Candidates))
		for i := range before.Candidates {
			assert.Equal(t, before.Candidates[i].Name, after.Candidates[i].Name)
			assert.Equal(t, before.Candidates[i].Distance, after.Candidates[i].Distance)
		}
		assert.Equal(t, before.SelectedRegion.Name, after.SelectedRegion.Name)
		assert.Equal(t, before.RequestSeq+1, after.RequestSeq)
	})

	t.Run("emptying the session entirely is rejected", func(t *testing.T) {
		uc, _, id := setup(t)

		_, err := uc.ReplaceParticipants(ctx, id, dto.ReplaceParticipantsRequest{})
		assert.ErrorIs(t, err, errors.ErrNoStartingPoint)
	})

	t.Run("switching to manual-only clears candidates and selection", func(t *testing.T) {
		uc, _, id := setup(t)

		resp, err := uc.ReplaceParticipants(ctx, id, dto.ReplaceParticipantsRequest{
			ManualLocations: []string{"서울역"},
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Candidates)
		assert.Nil(t, resp.SelectedRegion)
		assert.Nil(t, resp.Centroid)
	})
}

func TestMeetupUseCase_SelectRegion(t *testing.T) {
	ctx := context.Background()

	sessionRepo := newMemorySessionRepo()
	streamRepo := &MockStreamRepository{}
	streamRepo.On("PublishToStream", mock.Anything, domain.StreamMeetupRefresh, mock.Anything).Return(nil)
	uc := newMeetupUseCase(sessionRepo, &MockFriendRepository{}, streamRepo)

	created, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
		OwnerID:      1,
		Participants: []dto.ParticipantInput{participantAt(1, "지수", 37.557, 126.924)},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	t.Run("selecting a listed candidate bumps the sequence", func(t *testing.T) {
		resp, err := uc.SelectRegion(ctx, id, created.Candidates[1].Name)
		require.NoError(t, err)
		assert.Equal(t, created.Candidates[1].Name, resp.SelectedRegion.Name)
		assert.Equal(t, created.RequestSeq+1, resp.RequestSeq)
		// The candidate list itself is untouched
		require.Len(t, resp.Candidates, len(created.Candidates))
	})

	t.Run("selecting an unlisted region is rejected", func(t *testing.T) {
		_, err := uc.SelectRegion(ctx, id, "부산")
		assert.ErrorIs(t, err, errors.ErrRegionNotCandidate)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := uc.SelectRegion(ctx, uuid.New(), "강남")
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)
	})
}

func TestMeetupUseCase_SetFilters(t *testing.T) {
	ctx := context.Background()

	sessionRepo := newMemorySessionRepo()
	streamRepo := &MockStreamRepository{}
	streamRepo.On("PublishToStream", mock.Anything, domain.StreamMeetupRefresh, mock.Anything).Return(nil)
	uc := newMeetupUseCase(sessionRepo, &MockFriendRepository{}, streamRepo)

	created, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
		OwnerID:      1,
		Participants: []dto.ParticipantInput{participantAt(1, "지수", 37.557, 126.924)},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	t.Run("updates purpose and tags", func(t *testing.T) {
		resp, err := uc.SetFilters(ctx, id, dto.SetFiltersRequest{
			Purpose: "cafe",
			Tags:    []string{"#조용한"},
		})
		require.NoError(t, err)
		assert.Equal(t, "cafe", resp.Purpose)
		assert.Equal(t, []string{"#조용한"}, resp.Tags)
	})

	t.Run("invalid purpose is rejected", func(t *testing.T) {
		_, err := uc.SetFilters(ctx, id, dto.SetFiltersRequest{Purpose: "nope"})
		assert.ErrorIs(t, err, errors.ErrInvalidPurpose)
	})
}

func TestMeetupUseCase_DeleteSession(t *testing.T) {
	ctx := context.Background()

	sessionRepo := newMemorySessionRepo()
	streamRepo := &MockStreamRepository{}
	streamRepo.On("PublishToStream", mock.Anything, domain.StreamMeetupRefresh, mock.Anything).Return(nil)
	uc := newMeetupUseCase(sessionRepo, &MockFriendRepository{}, streamRepo)

	created, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
		OwnerID:      1,
		Participants: []dto.ParticipantInput{participantAt(1, "지수", 37.557, 126.924)},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, uc.DeleteSession(ctx, id))

	_, err = uc.GetSession(ctx, id)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)

	assert.ErrorIs(t, uc.DeleteSession(ctx, id), errors.ErrSessionNotFound)
}

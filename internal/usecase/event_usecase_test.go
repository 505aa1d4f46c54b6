package usecase_test

import (
	"context"
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

// MockEventRepository is a mock of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) GetByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestEventUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates event with default duration", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		eventRepo.On("Create", ctx, mock.AnythingOfType("*domain.Event")).Return(nil)

		uc := usecase.NewEventUseCase(eventRepo, zap.NewNop())

		event, err := uc.Create(ctx, dto.CreateEventRequest{
			UserID: 1,
			Title:  "지수랑 점심",
			Date:   "2026-09-05",
			Time:   "12:30",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.Equal(t, 1.0, event.DurationHours)
	})

	t.Run("invalid purpose is rejected", func(t *testing.T) {
		uc := usecase.NewEventUseCase(&MockEventRepository{}, zap.NewNop())

		_, err := uc.Create(ctx, dto.CreateEventRequest{
			UserID:  1,
			Title:   "회의",
			Date:    "2026-09-05",
			Time:    "10:00",
			Purpose: "skydiving",
		})
		assert.ErrorIs(t, err, errors.ErrInvalidPurpose)
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		eventRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)

		uc := usecase.NewEventUseCase(eventRepo, zap.NewNop())

		_, err := uc.Create(ctx, dto.CreateEventRequest{
			UserID: 1,
			Title:  "회의",
			Date:   "2026-09-05",
			Time:   "10:00",
		})
		assert.ErrorIs(t, err, errors.ErrDatabaseError)
	})
}

func TestEventUseCase_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("updates fields in place", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		eventRepo.On("GetByID", ctx, id).Return(&domain.Event{
			ID: id, UserID: 1, Title: "옛 제목", Date: "2026-09-05", Time: "10:00", DurationHours: 2,
		}, nil)
		eventRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.Title == "새 제목" && e.DurationHours == 2
		})).Return(nil)

		uc := usecase.NewEventUseCase(eventRepo, zap.NewNop())

		event, err := uc.Update(ctx, id, dto.UpdateEventRequest{
			Title: "새 제목",
			Date:  "2026-09-06",
			Time:  "11:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "새 제목", event.Title)
		assert.Equal(t, "2026-09-06", event.Date)
	})

	t.Run("unknown event", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		eventRepo.On("GetByID", ctx, id).Return(nil, errors.ErrEventNotFound)

		uc := usecase.NewEventUseCase(eventRepo, zap.NewNop())

		_, err := uc.Update(ctx, id, dto.UpdateEventRequest{Title: "x", Date: "2026-09-06", Time: "11:00"})
		assert.ErrorIs(t, err, errors.ErrEventNotFound)
	})
}

func TestEventUseCase_GetByUser(t *testing.T) {
	ctx := context.Background()

	eventRepo := &MockEventRepository{}
	eventRepo.On("GetByUser", ctx, int64(1)).Return([]domain.Event(nil), nil)

	uc := usecase.NewEventUseCase(eventRepo, zap.NewNop())

	events, err := uc.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	eventRepo := &MockEventRepository{}
	eventRepo.On("Delete", ctx, id).Return(errors.ErrEventNotFound)

	uc := usecase.NewEventUseCase(eventRepo, zap.NewNop())
	assert.ErrorIs(t, uc.Delete(ctx, id), errors.ErrEventNotFound)
}

package meetup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/worker/meetup"
)

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

// MockRefreshProcessor is a mock of RefreshProcessor
type MockRefreshProcessor struct {
	mock.Mock
}

func (m *MockRefreshProcessor) ProcessRefresh(ctx context.Context, event domain.MeetupRefreshEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func refreshMessage(t *testing.T, id string, event domain.MeetupRefreshEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestRefreshWorker_Name(t *testing.T) {
	w := meetup.NewRefreshWorker(&MockStreamRepository{}, &MockRefreshProcessor{}, "test-group", zap.NewNop())
	assert.Equal(t, "meetup-refresh", w.Name())
}

func TestRefreshWorker_Stop(t *testing.T) {
	w := meetup.NewRefreshWorker(&MockStreamRepository{}, &MockRefreshProcessor{}, "test-group", zap.NewNop())

	// Stop should not error even if not started
	assert.NoError(t, w.Stop())

	// Calling stop multiple times should be safe
	assert.NoError(t, w.Stop())
}

func TestRefreshWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamMeetupRefresh, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamMeetupRefresh, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	w := meetup.NewRefreshWorker(mockStream, &MockRefreshProcessor{}, "test-group", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestRefreshWorker_ProcessesAndAcks(t *testing.T) {
	sessionID := uuid.New()
	event := domain.MeetupRefreshEvent{SessionID: sessionID, Seq: 2}
	msg := refreshMessage(t, "1-0", event)

	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamMeetupRefresh, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamMeetupRefresh, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{msg}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamMeetupRefresh, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamMeetupRefresh, "test-group", "1-0").Return(nil)

	processor := &MockRefreshProcessor{}
	processor.On("ProcessRefresh", mock.Anything, event).Return(nil)

	w := meetup.NewRefreshWorker(mockStream, processor, "test-group", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	processor.AssertCalled(t, "ProcessRefresh", mock.Anything, event)
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamMeetupRefresh, "test-group", "1-0")
}

func TestRefreshWorker_AcksUnparseableMessages(t *testing.T) {
	bad := domain.StreamMessage{ID: "2-0", Data: "not json"}

	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamMeetupRefresh, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamMeetupRefresh, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{bad}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamMeetupRefresh, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamMeetupRefresh, "test-group", "2-0").Return(nil)

	processor := &MockRefreshProcessor{}

	w := meetup.NewRefreshWorker(mockStream, processor, "test-group", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	// Broken messages are ACKed so they do not clog the stream
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamMeetupRefresh, "test-group", "2-0")
	processor.AssertNotCalled(t, "ProcessRefresh", mock.Anything, mock.Anything)
}

func TestRefreshWorker_LeavesFailedMessagesPending(t *testing.T) {
	event := domain.MeetupRefreshEvent{SessionID: uuid.New(), Seq: 1}
	msg := refreshMessage(t, "3-0", event)

	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamMeetupRefresh, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamMeetupRefresh, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{msg}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamMeetupRefresh, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	processor := &MockRefreshProcessor{}
	processor.On("ProcessRefresh", mock.Anything, event).Return(assert.AnError)

	w := meetup.NewRefreshWorker(mockStream, processor, "test-group", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	mockStream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

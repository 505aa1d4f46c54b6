package meetup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"github.com/wemeet-microservice/internal/worker"
)

// RefreshProcessor - the slice of RecommendationUseCase the worker needs
type RefreshProcessor interface {
	ProcessRefresh(ctx context.Context, event domain.MeetupRefreshEvent) error
}

const (
	maxBatchSize    = 20                     // messages per read
	emptyQueueSleep = 100 * time.Millisecond // pause when the queue is empty
)

// RefreshWorker consumes meetup refresh events and drives the
// recommendation pipeline. Every message is ACKed exactly once: stale and
// unparseable events are dropped, not retried, so a burst of mutations
// costs at most one collaborator call.
type RefreshWorker struct {
	*worker.BaseWorker
	streamRepo       repository.StreamRepository
	recommendationUC RefreshProcessor
	consumerName     string
}

func NewRefreshWorker(
	streamRepo repository.StreamRepository,
	recommendationUC RefreshProcessor,
	consumerGroup string,
	logger *zap.Logger,
) *RefreshWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RefreshWorker{
		BaseWorker:       worker.NewBaseWorker("meetup-refresh", consumerGroup, logger),
		streamRepo:       streamRepo,
		recommendationUC: recommendationUC,
		consumerName:     consumerName,
	}
}

// Start runs the consume loop until stopped
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RefreshWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamMeetupRefresh, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch reads and handles up to maxBatchSize messages.
// Returns how many messages were consumed from the stream.
func (w *RefreshWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamMeetupRefresh,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			continue
		}

		if err := w.recommendationUC.ProcessRefresh(ctx, *event); err != nil {
			// Transient failure: leave the message pending for redelivery
			logger.Error("Failed to process refresh event",
				zap.String("message_id", msg.ID),
				zap.String("session_id", event.SessionID.String()),
				zap.Uint64("seq", event.Seq),
				zap.Error(err))
			continue
		}

		w.ack(ctx, msg.ID)
	}

	return len(messages), nil
}

func (w *RefreshWorker) parseMessage(msg domain.StreamMessage) (*domain.MeetupRefreshEvent, error) {
	var event domain.MeetupRefreshEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh event: %w", err)
	}
	return &event, nil
}

func (w *RefreshWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamMeetupRefresh, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

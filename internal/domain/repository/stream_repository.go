package repository

import (
	"context"

	"github.com/wemeet-microservice/internal/domain"
)

// StreamRepository - Redis Streams access with consumer groups
type StreamRepository interface {
	// CreateConsumerGroup creates the group, tolerating BUSYGROUP
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch reads up to count pending messages without blocking
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage acknowledges a processed message
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream serializes data as JSON into the "data" field
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

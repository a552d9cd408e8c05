package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/wrnass1/hotelbooking/internal/cache"
	"github.com/wrnass1/hotelbooking/internal/kafka"
	"go.uber.org/zap"
)

// CacheInvalidationConsumer listens to booking events and evicts the cached
// availability entries for the affected room, so reads served from Redis
// converge quickly after a write from any process instance.
type CacheInvalidationConsumer struct {
	consumer *kafka.Consumer
	cache    *cache.Service
	logger   *zap.Logger
}

// NewCacheInvalidationConsumer creates a consumer on the booking events topic.
func NewCacheInvalidationConsumer(
	brokers []string,
	groupID string,
	cacheSvc *cache.Service,
	logger *zap.Logger,
) *CacheInvalidationConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicBookingEvents, logger)
	return &CacheInvalidationConsumer{
		consumer: consumer,
		cache:    cacheSvc,
		logger:   logger,
	}
}

// Start begins consuming booking events. This blocks until the context is
// cancelled.
func (c *CacheInvalidationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CacheInvalidationConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CacheInvalidationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // don't retry malformed messages
	}

	switch cloudEvent.Type {
	case BookingCreated:
		var evt BookingCreatedEvent
		if err := cloudEvent.ParseData(&evt); err != nil {
			c.logger.Error("failed to parse booking created event", zap.Error(err))
			return nil
		}
		c.cache.DeletePattern(ctx, cache.RoomAvailabilityPattern(evt.RoomID))

	case BookingUpdated:
		var evt BookingUpdatedEvent
		if err := cloudEvent.ParseData(&evt); err != nil {
			c.logger.Error("failed to parse booking updated event", zap.Error(err))
			return nil
		}
		c.cache.DeletePattern(ctx, cache.RoomAvailabilityPattern(evt.RoomID))

	case BookingCancelled:
		var evt BookingCancelledEvent
		if err := cloudEvent.ParseData(&evt); err != nil {
			c.logger.Error("failed to parse booking cancelled event", zap.Error(err))
			return nil
		}
		c.cache.DeletePattern(ctx, cache.RoomAvailabilityPattern(evt.RoomID))

	case BookingDeleted:
		// The room id is not carried on deletes; flush every availability
		// entry rather than let a freed range read as taken until TTL.
		c.cache.DeletePattern(ctx, "availability:*")

	default:
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
	}
	return nil
}

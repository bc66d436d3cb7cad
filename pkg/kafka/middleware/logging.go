package kafka_middleware

import (
	"context"
	"time"

	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"
)

// LoggingProducerMiddleware logs every publish with its outcome and duration.
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration", time.Since(start),
		}
		if err != nil {
			log.Error("Failed to publish Kafka message", append(attrs, "transient", kafka.IsTransient(err), "error", err)...)
			return err
		}

		log.Debug("Published Kafka message", attrs...)
		return nil
	}
}

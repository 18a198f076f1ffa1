package consumer

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-timesheet/internal/entitlement"
	"go-timesheet/internal/events"
)

// ConsumeUserLifecycle provisions the standard leave entitlements for
// every user_created event. Provisioning is idempotent so redelivery
// after a failed commit is harmless.
func ConsumeUserLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	entitlementService entitlement.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.user_lifecycle")
	log.Info("user lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("user lifecycle consumer stopped")
				return
			}
			log.Error("fetch user lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.UserCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode user_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		year := event.OccurredAt.UTC().Year()
		if year == 1 {
			year = time.Now().UTC().Year()
		}
		if err := entitlementService.Provision(ctx, event.UserID, year); err != nil {
			log.Error("provision entitlements failed",
				zap.String("user_id", event.UserID),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit user lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("entitlements provisioned from user_created event",
			zap.String("user_id", event.UserID),
			zap.String("request_id", event.RequestID),
		)
	}
}

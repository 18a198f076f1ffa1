package notification

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// FromEnv picks the transport from NOTIFY_DRIVER. Anything other than
// "ses" means demo mode. An SES setup failure also falls back to the
// log sender rather than failing startup.
func FromEnv(ctx context.Context, logger *zap.Logger) Sender {
	if os.Getenv("NOTIFY_DRIVER") != "ses" {
		return NewLogSender(logger)
	}

	from := os.Getenv("NOTIFY_FROM")
	if from == "" {
		from = "noreply@company.com"
	}

	sender, err := NewSESSender(ctx, from, logger)
	if err != nil {
		logger.Warn("ses sender unavailable, falling back to log sender", zap.Error(err))
		return NewLogSender(logger)
	}
	return sender
}

package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender is the demo-mode transport: it logs the message that would
// have been delivered. This is the default sender.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger ...*zap.Logger) *LogSender {
	l := zap.L().Named("notification.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log")
	}
	return &LogSender{logger: l}
}

func (s *LogSender) SendLeaveSubmitted(ctx context.Context, n LeaveNotice) error {
	if n.RequesterEmail == "" {
		s.logger.Warn("no email address for requester", zap.String("requester", n.RequesterName))
		return ErrNoRecipient
	}
	s.logger.Info("confirmation email (demo mode)",
		zap.String("to", n.RequesterEmail),
		zap.String("subject", submittedSubject(n)),
	)
	return nil
}

func (s *LogSender) SendManagerAlert(ctx context.Context, n LeaveNotice) error {
	if n.ManagerEmail == "" {
		s.logger.Warn("no email address for manager", zap.String("manager", n.ManagerName))
		return ErrNoRecipient
	}
	s.logger.Info("manager notification email (demo mode)",
		zap.String("to", n.ManagerEmail),
		zap.String("manager", n.ManagerName),
		zap.String("subject", managerSubject(n)),
	)
	return nil
}

func (s *LogSender) SendLeaveDecision(ctx context.Context, n LeaveNotice) error {
	if n.RequesterEmail == "" {
		s.logger.Warn("no email address for requester", zap.String("requester", n.RequesterName))
		return ErrNoRecipient
	}
	s.logger.Info("status notification email (demo mode)",
		zap.String("to", n.RequesterEmail),
		zap.String("subject", decisionSubject(n)),
		zap.String("status", n.Status),
	)
	return nil
}

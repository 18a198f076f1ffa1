package notification

import (
	"bytes"
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// SESSender is the real transport, selected with NOTIFY_DRIVER=ses.
type SESSender struct {
	client *ses.Client
	from   string
	logger *zap.Logger
}

func NewSESSender(ctx context.Context, from string, logger ...*zap.Logger) (*SESSender, error) {
	l := zap.L().Named("notification.ses")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.ses")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &SESSender{
		client: ses.NewFromConfig(cfg),
		from:   from,
		logger: l,
	}, nil
}

func (s *SESSender) SendLeaveSubmitted(ctx context.Context, n LeaveNotice) error {
	if n.RequesterEmail == "" {
		return ErrNoRecipient
	}
	return s.send(ctx, n.RequesterEmail, submittedSubject(n), submittedBody(n))
}

func (s *SESSender) SendManagerAlert(ctx context.Context, n LeaveNotice) error {
	if n.ManagerEmail == "" {
		return ErrNoRecipient
	}
	return s.send(ctx, n.ManagerEmail, managerSubject(n), managerBody(n))
}

func (s *SESSender) SendLeaveDecision(ctx context.Context, n LeaveNotice) error {
	if n.RequesterEmail == "" {
		return ErrNoRecipient
	}
	return s.send(ctx, n.RequesterEmail, decisionSubject(n), decisionBody(n))
}

func (s *SESSender) send(ctx context.Context, to, subject, body string) error {
	raw := buildRawEmail(s.from, to, subject, body)

	res, err := s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: raw},
	})
	if err != nil {
		return err
	}

	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Stringp("message_id", res.MessageId),
	)
	return nil
}

func buildRawEmail(from, to, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}

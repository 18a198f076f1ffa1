package bootstrap

import "context"

// AuditLog records a lifecycle event worth keeping outside normal
// request logs.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

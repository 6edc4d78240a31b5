package bootstrap

import "context"

// AuditLog is a single audit trail entry emitted on operational events.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

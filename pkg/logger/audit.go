package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// MutationEvent describes a change made through the API
type MutationEvent struct {
	Action     string // e.g. "user.create", "role.set_permissions"
	Resource   string
	ResourceID string
	ActorID    string
	IPAddress  string
	Success    bool
	Reason     string
	Metadata   map[string]string
}

// AuditLogger writes mutation events to a dedicated slog stream
type AuditLogger struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger.With(slog.String("audit_type", "mutation")),
		now:    time.Now,
	}
}

// LogMutation records event and returns the generated event id
func (al *AuditLogger) LogMutation(ctx context.Context, event MutationEvent) string {
	eventID := uuid.NewString()

	attrs := []slog.Attr{
		slog.String("event_id", eventID),
		slog.String("action", event.Action),
		slog.String("resource", event.Resource),
		slog.Bool("success", event.Success),
		slog.String("timestamp", al.now().UTC().Format(time.RFC3339)),
	}

	if event.ResourceID != "" {
		attrs = append(attrs, slog.String("resource_id", event.ResourceID))
	}
	if event.ActorID != "" {
		attrs = append(attrs, slog.String("actor_id", event.ActorID))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	for key, val := range event.Metadata {
		attrs = append(attrs, slog.String(key, val))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(ctx, level, "audit", attrs...)
	return eventID
}

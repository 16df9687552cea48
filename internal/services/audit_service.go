package services

import (
	"context"
	"log/slog"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/pkg/logger"
)

// Actor identifies who triggered a mutation
type Actor struct {
	ID string
	IP string
}

type actorKey struct{}

// WithActor attaches the acting user to ctx for audit records
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor set by WithActor, if any
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// MutationLogger is implemented by logger.AuditLogger
type MutationLogger interface {
	LogMutation(ctx context.Context, event logger.MutationEvent) string
}

// AuditService records every mutation together with its outcome
type AuditService struct {
	sink   MutationLogger
	logger *slog.Logger
}

func NewAuditService(sink MutationLogger, logger *slog.Logger) *AuditService {
	return &AuditService{
		sink:   sink,
		logger: logger,
	}
}

// Record logs action against resource/id. A nil err is a success; the
// error reason is stored otherwise.
func (s *AuditService) Record(ctx context.Context, action, resource, id string, err error, metadata map[string]string) {
	if s == nil || s.sink == nil {
		return
	}

	event := logger.MutationEvent{
		Action:     action,
		Resource:   resource,
		ResourceID: id,
		Success:    err == nil,
		Metadata:   metadata,
	}
	if actor, ok := ActorFromContext(ctx); ok {
		event.ActorID = actor.ID
		event.IPAddress = actor.IP
	}
	if err != nil {
		event.Reason = models.Reason(err)
	}

	s.sink.LogMutation(ctx, event)
}

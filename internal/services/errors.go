package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/gridboard/internal/models"
)

// classify keeps domain and context errors intact for the handler layer
// and hides anything else behind ErrInternalServer.
func classify(log *slog.Logger, msg string, err error, attrs ...any) error {
	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrBadRequest),
		errors.Is(err, models.ErrForbidden):
		log.Info(msg, append(attrs, slog.String("reason", models.Reason(err)))...)
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn(msg, append(attrs, slog.Any("error", err))...)
		return err
	default:
		log.Error(msg, append(attrs, slog.Any("error", err))...)
		return models.ErrInternalServer
	}
}

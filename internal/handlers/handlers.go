// Package handlers exposes the dashboard services over a JSON HTTP API
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BradenHooton/gridboard/internal/auth"
	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/services"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

// ListResponse is the envelope of a paginated query. The query result is
// flattened next to the success flag.
type ListResponse[T any] struct {
	Success bool `json:"success"`
	query.Result[T]
}

func writeList[T any](w http.ResponseWriter, result query.Result[T]) {
	if result.Records == nil {
		result.Records = []T{}
	}
	pkghttp.WriteJSON(w, http.StatusOK, ListResponse[T]{Success: true, Result: result})
}

// writeServiceError maps sentinel errors to status codes. The reason
// attached by the repositories is shown for client errors only.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	reason := models.Reason(err)
	switch {
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, reason)
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, reason)
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, reason)
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, reason)
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, reason)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		pkghttp.WriteError(w, http.StatusServiceUnavailable, "request_cancelled", "Request cancelled")
	default:
		if logger != nil {
			logger.Error("request failed", slog.String("error", err.Error()))
		}
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}

// actorContext attaches the session user and client address to the
// request context for the audit trail
func actorContext(r *http.Request, ipConfig *pkghttp.IPConfig) context.Context {
	actor := services.Actor{IP: pkghttp.ExtractClientIP(r, ipConfig)}
	if session := auth.GetSessionFromContext(r); session != nil {
		actor.ID = session.UserID
	}
	return services.WithActor(r.Context(), actor)
}

// decodeAndValidate reads the JSON body into dst and validates it
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := pkghttp.DecodeJSON(w, r, dst); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return false
	}
	if err := ValidateRequest(dst); err != nil {
		pkghttp.WriteBadRequest(w, models.Reason(err))
		return false
	}
	return true
}

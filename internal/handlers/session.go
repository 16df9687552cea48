package handlers

import (
	"log/slog"
	"net/http"

	"github.com/BradenHooton/gridboard/internal/auth"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
	"github.com/BradenHooton/gridboard/pkg/logger"
)

// SessionHandler signs the demo tokens in and out. It only drives the
// menu shown by the dashboard shell.
type SessionHandler struct {
	store  *auth.SessionStore
	opts   SessionOptions
	logger *slog.Logger
}

// SessionOptions configures cookie issuing and failure handling
type SessionOptions struct {
	Delay    auth.FailureDelay
	Cookie   auth.CookieConfig
	MaxAge   int
	Env      string
	IPConfig *pkghttp.IPConfig
}

func NewSessionHandler(store *auth.SessionStore, opts SessionOptions, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{store: store, opts: opts, logger: logger}
}

type SignInRequest struct {
	Token string `json:"token" validate:"required,max=256"`
}

// Current resolves the auth_token cookie
//
// @Router /session [get]
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	token, err := auth.GetSessionCookie(r)
	if err != nil {
		pkghttp.WriteUnauthorized(w, "Not authenticated")
		return
	}
	session, ok := h.store.Lookup(token)
	if !ok {
		pkghttp.WriteUnauthorized(w, "Invalid session")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, session, "")
}

// SignIn exchanges a token for the session cookie. Rejections are delayed.
//
// @Router /session [post]
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, ok := h.store.Lookup(req.Token)
	h.opts.Delay.Wait(r.Context(), ok)
	if !ok {
		h.logger.Warn("session sign-in rejected",
			slog.String("ip", pkghttp.ExtractClientIP(r, h.opts.IPConfig)),
			logger.RedactedAttr("token", req.Token, h.opts.Env),
		)
		pkghttp.WriteUnauthorized(w, "Invalid session token")
		return
	}

	auth.SetSessionCookie(w, req.Token, h.opts.MaxAge, h.opts.Cookie)
	h.logger.Info("session signed in", slog.String("user_id", session.UserID), slog.String("role", session.Role))
	pkghttp.WriteSuccess(w, http.StatusOK, session, "Signed in")
}

// @Router /session [delete]
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.opts.Cookie)
	pkghttp.WriteSuccess(w, http.StatusOK, nil, "Signed out")
}

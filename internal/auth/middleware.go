package auth

import (
	"context"
	"net/http"

	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

type contextKey string

// SessionContextKey stores the resolved *Session
const SessionContextKey contextKey = "session"

// RequireSession resolves the auth_token cookie. With required set,
// requests without a valid token get 401; otherwise they continue
// anonymously.
func RequireSession(store *SessionStore, required bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := GetSessionCookie(r)
			if err != nil || token == "" {
				if required {
					pkghttp.WriteUnauthorized(w, "Authentication required")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			session, ok := store.Lookup(token)
			if !ok {
				if required {
					pkghttp.WriteUnauthorized(w, "Invalid session")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLevel rejects sessions without level. Anonymous requests that
// RequireSession let through are not checked.
func RequireLevel(level string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSessionFromContext(r)
			if session != nil && !session.Has(level) {
				pkghttp.WriteForbidden(w, "forbidden: insufficient access level")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext returns the session attached by RequireSession
func GetSessionFromContext(r *http.Request) *Session {
	session, ok := r.Context().Value(SessionContextKey).(*Session)
	if !ok {
		return nil
	}
	return session
}

package auth

import (
	"crypto/subtle"
	"slices"
	"strings"
)

// Access levels carried by a session token
const (
	LevelAdmin  = "admin"
	LevelEditor = "editor"
	LevelUser   = "user"
)

// Session is the identity resolved from an auth_token cookie. It drives
// menu composition only and is not an authorization decision.
type Session struct {
	UserID    string   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Levels    []string `json:"permissions"`
	MenuItems []string `json:"menuItems"`
}

// Has reports whether the session carries level
func (s *Session) Has(level string) bool {
	return s != nil && slices.Contains(s.Levels, level)
}

var builtinSessions = map[string]Session{
	"admin-token-123":  {UserID: "1", Name: "Admin User", Role: LevelAdmin, Levels: []string{LevelAdmin, LevelEditor}},
	"editor-token-456": {UserID: "2", Name: "Editor User", Role: LevelEditor, Levels: []string{LevelEditor}},
	"user-token-789":   {UserID: "3", Name: "Regular User", Role: LevelUser, Levels: []string{LevelUser}},
}

// levelsFor expands a configured level into the levels it grants
func levelsFor(level string) []string {
	switch level {
	case LevelAdmin:
		return []string{LevelAdmin, LevelEditor}
	case LevelEditor:
		return []string{LevelEditor}
	default:
		return []string{LevelUser}
	}
}

// MenuItems returns the navigation entries visible for levels
func MenuItems(levels []string) []string {
	items := make([]string, 0, 7)
	if slices.Contains(levels, LevelAdmin) {
		items = append(items, "Dashboard", "User Management", "Product Management", "System Settings")
	}
	if slices.Contains(levels, LevelEditor) {
		items = append(items, "Content Editor", "Media Library")
	}
	if slices.Contains(levels, LevelUser) {
		items = append(items, "Profile", "My Content")
	}
	return items
}

type sessionEntry struct {
	token   []byte
	session Session
}

// SessionStore is a fixed token table
type SessionStore struct {
	entries []sessionEntry
}

// NewSessionStore returns the built-in demo tokens plus extra, which maps
// token to level (admin, editor or user).
func NewSessionStore(extra map[string]string) *SessionStore {
	s := &SessionStore{}
	for token, session := range builtinSessions {
		s.add(token, session)
	}
	for token, level := range extra {
		level = strings.ToLower(strings.TrimSpace(level))
		levels := levelsFor(level)
		s.add(token, Session{
			UserID: "token:" + token[:min(4, len(token))],
			Name:   "Configured " + levels[0],
			Role:   levels[0],
			Levels: levels,
		})
	}
	return s
}

func (s *SessionStore) add(token string, session Session) {
	session.Levels = slices.Clone(session.Levels)
	session.MenuItems = MenuItems(session.Levels)
	for i, e := range s.entries {
		if string(e.token) == token {
			s.entries[i].session = session
			return
		}
	}
	s.entries = append(s.entries, sessionEntry{token: []byte(token), session: session})
}

// Lookup resolves token. Every entry is compared in constant time.
func (s *SessionStore) Lookup(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}

	var found *Session
	candidate := []byte(token)
	for i := range s.entries {
		if subtle.ConstantTimeCompare(s.entries[i].token, candidate) == 1 {
			session := s.entries[i].session
			session.Levels = slices.Clone(session.Levels)
			session.MenuItems = slices.Clone(session.MenuItems)
			found = &session
		}
	}
	return found, found != nil
}

// Package session implements server-side sessions correlated with clients
// via an opaque token cookie.
package session

import (
	"sync"
)

// FlagAdminAuthenticated marks a session as belonging to an authenticated
// admin.
const FlagAdminAuthenticated = "isAdminAuthenticated"

// Session is the per-client state referenced by a session token. A session
// is persisted into the store at most once per response: the saved marker
// makes the first write win.
type Session struct {
	mu    sync.RWMutex
	token string
	flags map[string]bool
	saved bool
}

// New returns a fresh, empty session not yet bound to a token.
func New() *Session {
	return &Session{flags: make(map[string]bool)}
}

// Token returns the token this session is stored under, if any.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken binds the session to a store token.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Flag reads a boolean flag.
func (s *Session) Flag(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[name]
}

// SetFlag sets a boolean flag.
func (s *Session) SetFlag(name string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[name] = value
}

// IsAdminAuthenticated reports whether the admin flag is set.
func (s *Session) IsAdminAuthenticated() bool {
	return s.Flag(FlagAdminAuthenticated)
}

// SetAdminAuthenticated flips the admin flag. Logout sets it false without
// evicting the store entry.
func (s *Session) SetAdminAuthenticated(v bool) {
	s.SetFlag(FlagAdminAuthenticated, v)
}

// Empty reports whether the session carries no state worth persisting.
func (s *Session) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flags) == 0
}

// Saved reports whether the session has already been persisted this
// lifecycle.
func (s *Session) Saved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved
}

// MarkSaved records that the session has been persisted.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = true
}

// Package session tracks the currently authenticated identity. At most one
// session exists and it stays valid until explicitly ended; there is no
// expiry and no token.
package session

import (
	"github.com/zarlcorp/zwallet/internal/kvstore"
)

const sessionKey = "session"

// Session points at an identity by email. It embeds only the display name
// captured at login time, never other identity fields.
type Session struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
}

// Manager reads and writes the session record through the store.
type Manager struct {
	store *kvstore.Store
}

// New creates a session manager over the given store.
func New(store *kvstore.Store) *Manager {
	return &Manager{store: store}
}

// Current returns the active session, if any. An unreadable stored record
// reads as no session.
func (m *Manager) Current() (Session, bool) {
	s, status := kvstore.GetRecord(m.store, sessionKey, Session{})
	if status != kvstore.StatusPresent || s.Email == "" {
		return Session{}, false
	}
	return s, true
}

// Start records s as the active session, replacing any previous one.
func (m *Manager) Start(s Session) error {
	return kvstore.SetRecord(m.store, sessionKey, s)
}

// End removes the session record. Ending an absent session is a no-op.
func (m *Manager) End() error {
	return m.store.Delete(sessionKey)
}

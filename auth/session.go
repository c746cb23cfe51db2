package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated portal session. Expiry slides with activity:
// any touched request restarts the idle clock, mirroring the front-end
// auto-logout timer.
type Session struct {
	Token        string    `json:"token"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// SessionStatus reports where a session sits in its idle window.
type SessionStatus struct {
	RemainingIdle time.Duration `json:"remainingIdleMs"`
	Warning       bool          `json:"warning"`
}

// SessionStore holds active sessions in memory, keyed by token.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	warning  time.Duration
	now      func() time.Time
}

func NewSessionStore(idle, warning time.Duration) *SessionStore {
	if idle <= 0 {
		idle = 5 * time.Minute
	}
	if warning <= 0 || warning >= idle {
		warning = time.Minute
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		idle:     idle,
		warning:  warning,
		now:      time.Now,
	}
}

// Create opens a session for the user and returns its bearer token.
func (s *SessionStore) Create(userID string) *Session {
	now := s.now()
	sess := &Session{
		Token:        strings.ReplaceAll(uuid.New().String(), "-", ""),
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return sess
}

// Get returns the session for a token, expiring it first when the idle window
// has elapsed. Expired sessions are removed on sight.
func (s *SessionStore) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if s.now().Sub(sess.LastActivity) >= s.idle {
		delete(s.sessions, token)
		return nil, false
	}
	return sess, true
}

// Touch restarts the idle clock, the server-side equivalent of the activity
// listeners resetting the logout timer.
func (s *SessionStore) Touch(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().Sub(sess.LastActivity) >= s.idle {
		delete(s.sessions, token)
		return false
	}
	sess.LastActivity = s.now()
	return true
}

// Status reports the remaining idle time and whether the session is inside
// the pre-logout warning window.
func (s *SessionStore) Status(token string) (SessionStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return SessionStatus{}, false
	}
	remaining := s.idle - s.now().Sub(sess.LastActivity)
	if remaining <= 0 {
		delete(s.sessions, token)
		return SessionStatus{}, false
	}
	return SessionStatus{
		RemainingIdle: remaining,
		Warning:       remaining <= s.warning,
	}, true
}

// Delete closes a session (logout).
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// DeleteForUser closes every session the user holds (global sign-out).
func (s *SessionStore) DeleteForUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, token)
		}
	}
}

// Sweep drops every idle-expired session and returns how many went.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for token, sess := range s.sessions {
		if s.now().Sub(sess.LastActivity) >= s.idle {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}

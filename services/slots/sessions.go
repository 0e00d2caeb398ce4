package slots

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionStore holds live editor sessions in process memory. Sessions are
// view-local by contract: one provider owns one editor exclusively, nothing
// is shared across instances and nothing survives expiry, so the store is
// deliberately not backed by Redis or Mongo.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Editor
}

const defaultSessionTTL = 30 * time.Minute

// NewSessionStore creates a store whose sessions expire after ttl of
// inactivity.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Editor),
	}
}

// Put registers a freshly opened editor.
func (s *SessionStore) Put(ed *Editor) {
	s.mu.Lock()
	s.sessions[ed.SessionID()] = ed
	s.mu.Unlock()
}

// Get returns the provider's live editor. Unknown sessions, expired
// sessions and sessions owned by another provider are indistinguishable to
// the caller.
func (s *SessionStore) Get(providerID, sessionID string) (*Editor, error) {
	s.mu.RLock()
	ed, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || ed.ProviderID() != providerID {
		return nil, ErrSessionNotFound
	}
	if ed.expiredAt(time.Now(), s.ttl) {
		s.Delete(sessionID)
		return nil, ErrSessionNotFound
	}
	ed.touch()
	return ed, nil
}

// Delete destroys a session. The editor's state has no existence afterwards.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ed := range s.sessions {
		if ed.expiredAt(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper evicts idle sessions in the background.
func (s *SessionStore) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		logger := zap.L()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if removed := s.sweepExpired(time.Now()); removed > 0 {
				logger.Debug("Swept expired editor sessions", zap.Int("removed", removed))
			}
		}
	}()
}

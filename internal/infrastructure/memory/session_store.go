// Package memory provides in-process implementations of the session store and
// rate limiter, used when no Redis address is configured and throughout the
// test suites. State does not survive a restart, which mirrors the browser
// storage the gateway replaced: losing it merely logs clients out.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/campusconnect/portal/internal/core/domain"
)

// SessionStore keeps sessions in a mutex-guarded map. Values are stored as
// JSON so that read-side corruption handling matches the Redis adapter.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	prefs    map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string][]byte),
		prefs:    make(map[string]string),
	}
}

func (s *SessionStore) Read(_ context.Context, key string) (*domain.Session, error) {
	s.mu.RLock()
	raw, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Write(_ context.Context, key string, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a stored session with undecodable bytes. Test hook for
// the fail-closed read path.
func (s *SessionStore) Corrupt(key string) {
	s.mu.Lock()
	s.sessions[key] = []byte("{not json")
	s.mu.Unlock()
}

func (s *SessionStore) ReadPreference(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs[key], nil
}

func (s *SessionStore) WritePreference(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.prefs[key] = value
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) ClearPreference(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.prefs, key)
	s.mu.Unlock()
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusconnect/portal/internal/core/domain"
)

// sessionTTL matches the upstream token lifetime.
const sessionTTL = 24 * time.Hour

const (
	sessionPrefix = "session:"
	prefPrefix    = "pref:"
)

// SessionStore persists sessions as JSON documents in Redis.
// Corrupt documents are dropped on read so the caller fails closed to
// "unauthenticated" instead of erroring out.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wraps the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Read(ctx context.Context, key string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session read: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		_ = s.client.Del(ctx, sessionPrefix+key).Err()
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Write(ctx context.Context, key string, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	return s.client.Set(ctx, sessionPrefix+key, raw, sessionTTL).Err()
}

func (s *SessionStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, sessionPrefix+key).Err()
}

// ReadPreference returns the stored preference value, or "" when absent.
func (s *SessionStore) ReadPreference(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, prefPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

// WritePreference stores a preference without expiry; preferences survive
// logout independently of the session token.
func (s *SessionStore) WritePreference(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, prefPrefix+key, value, 0).Err()
}

func (s *SessionStore) ClearPreference(ctx context.Context, key string) error {
	return s.client.Del(ctx, prefPrefix+key).Err()
}

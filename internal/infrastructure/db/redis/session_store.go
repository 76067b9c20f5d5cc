package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore keeps server-trusted session records in Redis. Records carry
// their own TTL, so an expired session is simply absent on lookup.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) key(sessionID string) string {
	return sessionPrefix + sessionID
}

// Put stores the record with a TTL derived from its expiry.
func (s *SessionStore) Put(ctx context.Context, rec domain.SessionRecord) error {
	if rec.ID == "" || rec.IdentityID == "" {
		return fmt.Errorf("session store: missing session or identity id")
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session store: expires_at must be in the future")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session store: marshal: %w", err)
	}
	return s.client.Set(ctx, s.key(rec.ID), data, ttl).Err()
}

// Get returns (nil, nil) for an unknown or expired session id.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session store: get: %w", err)
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("session store: unmarshal: %w", err)
	}
	return &rec, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

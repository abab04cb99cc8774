package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/devfolio/portfolio-web/internal/auth/domain"
)

const sessionKeyPrefix = "session:" // Key per session: session:{session_id}

// ErrNoSession is returned when a session id is unknown or has expired.
var ErrNoSession = errors.New("session not found")

// Store persists authenticated identities in Redis, one JSON value per
// session id with a TTL. The identity is serialized exactly as produced
// at the OAuth callback; nothing is added or stripped.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// TTL reports the lifetime applied to new sessions.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create stores the identity under a fresh session id and returns the id.
func (s *Store) Create(ctx context.Context, ident domain.Identity) (string, error) {
	sid := uuid.NewString()

	data, err := json.Marshal(ident)
	if err != nil {
		return "", fmt.Errorf("marshal identity: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sid), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

// Get restores the identity for a session id. Unknown and expired ids are
// indistinguishable: both return ErrNoSession.
func (s *Store) Get(ctx context.Context, sid string) (*domain.Identity, error) {
	data, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var ident domain.Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}
	return &ident, nil
}

// Destroy invalidates a session. Destroying an already absent session is
// not an error.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *Store) key(sid string) string {
	return sessionKeyPrefix + sid
}

// README: Session store backed by Redis, keyed by conversation id with idle TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store persists one session per conversation id. Access across different
// ids is safe; serializing turns of the same id is the caller's job.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore returns a Store with the given idle TTL. The TTL is refreshed on
// every save, so only idle conversations expire.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: rdb, ttl: ttl}
}

// GetOrCreate loads the session for id, creating a zero-valued one if absent.
func (s *Store) GetOrCreate(ctx context.Context, id string) (Session, error) {
	raw, err := s.redis.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return s.Reset(ctx, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("session get: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// Corrupt payload: replace rather than fail the conversation.
		return s.Reset(ctx, id)
	}
	return sess, nil
}

// Save overwrites the session for id and refreshes the idle TTL.
func (s *Store) Save(ctx context.Context, id string, sess Session) error {
	sess.UpdatedAt = time.Now()
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.redis.Set(ctx, keyPrefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Reset unconditionally replaces the session for id with a zero-valued one.
func (s *Store) Reset(ctx context.Context, id string) (Session, error) {
	sess := Session{}
	if err := s.Save(ctx, id, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

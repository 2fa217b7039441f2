package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// AttemptStore persists the transient attempt, keyed per line worker.
type AttemptStore interface {
	// Get returns nil, nil when the worker has no stored attempt.
	Get(ctx context.Context, lineWorkerID uuid.UUID) (*Attempt, error)
	Save(ctx context.Context, attempt *Attempt) error
	Delete(ctx context.Context, lineWorkerID uuid.UUID) error
}

type attemptKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	AttemptKey(lineWorkerID string) string
}

// RedisAttemptStore keeps attempts as JSON blobs with a TTL so abandoned
// attempts evaporate on their own.
type RedisAttemptStore struct {
	kv  attemptKV
	ttl time.Duration
}

// NewRedisAttemptStore builds the Redis-backed attempt store.
func NewRedisAttemptStore(kv attemptKV, ttl time.Duration) (*RedisAttemptStore, error) {
	if kv == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("attempt ttl must be positive")
	}
	return &RedisAttemptStore{kv: kv, ttl: ttl}, nil
}

// Get loads the worker's current attempt, if any.
func (s *RedisAttemptStore) Get(ctx context.Context, lineWorkerID uuid.UUID) (*Attempt, error) {
	raw, err := s.kv.Get(ctx, s.kv.AttemptKey(lineWorkerID.String()))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading attempt: %w", err)
	}
	var attempt Attempt
	if err := json.Unmarshal([]byte(raw), &attempt); err != nil {
		return nil, fmt.Errorf("decoding attempt: %w", err)
	}
	return &attempt, nil
}

// Save stores the attempt, refreshing the TTL.
func (s *RedisAttemptStore) Save(ctx context.Context, attempt *Attempt) error {
	if attempt == nil {
		return errors.New("attempt is required")
	}
	if attempt.LineWorkerID == uuid.Nil {
		return errors.New("attempt line worker id is required")
	}
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encoding attempt: %w", err)
	}
	return s.kv.Set(ctx, s.kv.AttemptKey(attempt.LineWorkerID.String()), string(raw), s.ttl)
}

// Delete removes the worker's attempt. Deleting an absent attempt is fine.
func (s *RedisAttemptStore) Delete(ctx context.Context, lineWorkerID uuid.UUID) error {
	return s.kv.Del(ctx, s.kv.AttemptKey(lineWorkerID.String()))
}

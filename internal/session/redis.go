package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// snapshotKey is the fixed storage key for the session snapshot.
const snapshotKey = "saglikhep:admin:session"

// RedisStore keeps the session snapshot in Redis, for panel operators
// running the tooling from shared infrastructure.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed snapshot store. A zero ttl means
// the snapshot never expires on its own.
func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func (s *RedisStore) Load(ctx context.Context) (Snapshot, bool, error) {
	val, err := s.client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKey, data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, snapshotKey).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"signin/internal/domain"
)

// DefaultRedisPrefix namespaces keys written by RedisTokenStore.
const DefaultRedisPrefix = "signin"

// RedisTokenStore keeps each key as a Redis string under "<prefix>:<key>".
type RedisTokenStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisTokenStore returns a store backed by rdb. An empty prefix uses
// DefaultRedisPrefix.
func NewRedisTokenStore(rdb redis.UniversalClient, prefix string) *RedisTokenStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisTokenStore{rdb: rdb, prefix: prefix}
}

func (s *RedisTokenStore) key(k string) string { return s.prefix + ":" + k }

// Save stores value under key with no expiry.
func (s *RedisTokenStore) Save(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return domain.NewStorageFailure("Could not save the session", err)
	}
	return nil
}

// Read returns the value stored under key and whether it was present.
func (s *RedisTokenStore) Read(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, domain.NewStorageFailure("Could not read the saved session", err)
	}
	return v, true, nil
}

// Clear deletes key.
func (s *RedisTokenStore) Clear(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return domain.NewStorageFailure("Could not clear the session", err)
	}
	return nil
}

// Compile-time assertion that RedisTokenStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*RedisTokenStore)(nil)

package rulesource

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/redis"
)

// KeyValueGetter is satisfied by *redis.Store.
type KeyValueGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// RedisSource reads rule documents published to Redis.
type RedisSource struct {
	store KeyValueGetter
}

// NewRedisSource creates a source over store. Key prefixing is the store's
// concern.
func NewRedisSource(store KeyValueGetter) *RedisSource {
	return &RedisSource{store: store}
}

func (s *RedisSource) Load(ctx context.Context, key string) ([]byte, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, key)
	}
	if err != nil {
		return nil, errors.Join(ErrSourceUnavailable, err)
	}
	return data, nil
}

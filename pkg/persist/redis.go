package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces storefront keys inside a shared Redis.
const DefaultRedisPrefix = "storefront:"

// RedisRepository keeps each snapshot under <prefix><namespace> without TTL.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-backed repository
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(namespace string) string {
	return r.prefix + namespace
}

func (r *RedisRepository) Load(ctx context.Context, namespace string, v any) (bool, error) {
	if namespace == "" {
		return false, ErrInvalidNamespace
	}
	data, err := r.client.Get(ctx, r.key(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s state: %w", namespace, err)
	}
	if err := decode(namespace, data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisRepository) Save(ctx context.Context, namespace string, v any) error {
	data, err := encode(namespace, v)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(namespace), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s state: %w", namespace, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, namespace string) error {
	if err := r.client.Del(ctx, r.key(namespace)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s state: %w", namespace, err)
	}
	return nil
}

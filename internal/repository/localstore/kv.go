// Package localstore is the device-local persistence layer. Values are JSON
// blobs in a key-value store; every read goes through a guard that treats a
// corrupt blob as a cache miss and removes it.
package localstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrKeyMissing reports that the store has no value for the key.
var ErrKeyMissing = errors.New("key missing")

// KV abstracts the raw key-value store underneath the guard.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RedisKV backs the store with redis.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyMissing
	}
	return val, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

const redisKeyNamespace = "rcshop"

// redisCmdable testlarda almashtirish uchun kerakli buyruqlar
type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisKVStore struct {
	store redisCmdable
}

// RedisOptions ulanish sozlamalari
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisKVStore Redis asosidagi ombor. Ulanish ping bilan tekshiriladi.
func NewRedisKVStore(ctx context.Context, opts RedisOptions) (repository.KeyValueStore, *redis.Client, error) {
	if opts.Addr == "" {
		return nil, nil, errors.New("redis manzili bo'sh")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return &redisKVStore{store: client}, client, nil
}

func redisKey(key string) string {
	return redisKeyNamespace + ":" + key
}

func (r *redisKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.store.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *redisKVStore) Set(ctx context.Context, key, value string) error {
	return r.store.Set(ctx, redisKey(key), value, 0).Err()
}

func (r *redisKVStore) Delete(ctx context.Context, key string) error {
	return r.store.Del(ctx, redisKey(key)).Err()
}

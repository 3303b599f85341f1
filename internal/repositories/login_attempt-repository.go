package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinical-service/pkg/cache"

	"github.com/go-redis/redis/v8"
)

// LoginAttemptRepositoryInterface cuenta intentos fallidos de login por clave
// dentro de una ventana de tiempo.
type LoginAttemptRepositoryInterface interface {
	Count(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

type RedisLoginAttemptRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisLoginAttemptRepository(client *redis.Client, prefix string) LoginAttemptRepositoryInterface {
	return &RedisLoginAttemptRepository{client: client, prefix: prefix + "login:"}
}

func (r *RedisLoginAttemptRepository) Count(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Get(ctx, r.prefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Incr fija el vencimiento solo con el primer intento de la ventana.
func (r *RedisLoginAttemptRepository) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := r.prefix + key
	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (r *RedisLoginAttemptRepository) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// MemoryLoginAttemptRepository renueva la ventana con cada intento.
type MemoryLoginAttemptRepository struct {
	mu       sync.Mutex
	attempts *cache.Cache[int64]
}

func NewMemoryLoginAttemptRepository() LoginAttemptRepositoryInterface {
	return &MemoryLoginAttemptRepository{attempts: cache.New[int64]()}
}

func (r *MemoryLoginAttemptRepository) Count(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, _ := r.attempts.Get(key)
	return n, nil
}

func (r *MemoryLoginAttemptRepository) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, _ := r.attempts.Get(key)
	n++
	r.attempts.Set(key, n, window)
	return n, nil
}

func (r *MemoryLoginAttemptRepository) Reset(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts.Set(key, 0)
	return nil
}

package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const scanBatch = 200

// namespace separa las entradas del cache de otras claves de la aplicación
// que comparten el prefijo, como los contadores de login.
const namespace = "cache:"

// RedisStore guarda las entradas en Redis bajo prefix+"cache:", de modo que
// varias instancias del servidor comparten el mismo cache.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix + namespace}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

// Invalidate recorre el espacio de claves con SCAN; los caracteres comodín
// del patrón se escapan para conservar la semántica de subcadena.
func (s *RedisStore) Invalidate(ctx context.Context, pattern string) error {
	match := s.prefix + "*"
	if pattern != "" {
		match = s.prefix + "*" + escapeGlob(pattern) + "*"
	}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

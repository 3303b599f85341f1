package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// Store es el backend de bytes compartido por los servicios.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate con patrón vacío borra todo; en otro caso borra las claves
	// que contienen el patrón.
	Invalidate(ctx context.Context, pattern string) error
}

// MemoryStore adapta Cache[[]byte] a Store. Nunca devuelve error.
type MemoryStore struct {
	cache *Cache[[]byte]
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{cache: New[[]byte](opts...)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.cache.Get(key)
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.cache.Set(key, bytes.Clone(value), ttl)
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, pattern string) error {
	s.cache.Invalidate(pattern)
	return nil
}

func (s *MemoryStore) Len() int { return s.cache.Len() }

// Key compone la clave de memoización: endpoint + JSON de los filtros.
func Key(endpoint string, filters any) string {
	if filters == nil {
		return endpoint
	}
	raw, err := json.Marshal(filters)
	if err != nil {
		return endpoint
	}
	return endpoint + string(raw)
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Memoize devuelve el valor cacheado bajo key o, si no existe, llama a fetch
// y guarda su resultado. Los errores de fetch no se cachean; los del store se
// tratan como fallo de cache y no interrumpen la llamada.
func Memoize[T any](ctx context.Context, store Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if raw, ok, err := store.Get(ctx, key); err == nil && ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err == nil {
		_ = store.Set(ctx, key, raw, ttl)
	}
	return value, nil
}

// loggingStore registra los fallos del backend con zap.
type loggingStore struct {
	next   Store
	logger *zap.Logger
}

// WithLogging envuelve un Store para que sus errores queden en el log.
func WithLogging(next Store, logger *zap.Logger) Store {
	return &loggingStore{next: next, logger: logger}
}

func (s *loggingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := s.next.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache: error de lectura", zap.String("key", key), zap.Error(err))
		return v, ok, err
	}
	if ok {
		s.logger.Debug("cache: hit", zap.String("key", key))
	} else {
		s.logger.Debug("cache: miss", zap.String("key", key))
	}
	return v, ok, nil
}

func (s *loggingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.next.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("cache: error de escritura", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *loggingStore) Invalidate(ctx context.Context, pattern string) error {
	if err := s.next.Invalidate(ctx, pattern); err != nil {
		s.logger.Warn("cache: error al invalidar", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	s.logger.Debug("cache: invalidado", zap.String("pattern", pattern))
	return nil
}

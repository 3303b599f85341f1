package listeners

import (
	"context"

	"clinical-service/pkg/cache"
	"clinical-service/pkg/eventbus"

	"go.uber.org/zap"
)

// CacheListener descarta los informes cacheados ante cualquier escritura.
type CacheListener struct {
	store    cache.Store
	patterns []string
	logger   *zap.Logger
}

func NewCacheListener(store cache.Store, logger *zap.Logger, patterns ...string) *CacheListener {
	return &CacheListener{store: store, patterns: patterns, logger: logger}
}

func (l *CacheListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.Wildcard, l.Handle)
	l.logger.Info("CacheListener suscrito a todos los eventos", zap.Strings("patterns", l.patterns))
}

func (l *CacheListener) Handle(ctx context.Context, event eventbus.Event) error {
	for _, p := range l.patterns {
		if err := l.store.Invalidate(ctx, p); err != nil {
			return err
		}
	}
	l.logger.Debug("Cache invalidada por evento", zap.String("event", event.Name()))
	return nil
}

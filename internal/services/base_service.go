package services

import (
	"context"
	"time"

	"clinical-service/internal/events"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/eventbus"
	"clinical-service/pkg/utils"

	"go.uber.org/zap"
)

// EventPublisher lo implementa *eventbus.Bus.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// Page es un listado paginado tal como se guarda en cache.
type Page[T any] struct {
	Items []T    `json:"items"`
	Total uint64 `json:"total"`
}

// BaseService reúne lo que comparten los servicios de dominio: cache de
// lecturas, publicación de eventos y log.
type BaseService struct {
	store     cache.Store
	ttl       time.Duration
	publisher EventPublisher
	logger    *zap.Logger
}

func NewBaseService(store cache.Store, ttl time.Duration, publisher EventPublisher, logger *zap.Logger) *BaseService {
	return &BaseService{store: store, ttl: ttl, publisher: publisher, logger: logger}
}

func memoize[T any](ctx context.Context, s *BaseService, key string, fetch func(context.Context) (T, error)) (T, error) {
	return cache.Memoize(ctx, s.store, key, s.ttl, fetch)
}

// invalidate no falla la escritura: a lo sumo quedan lecturas viejas hasta el TTL.
// Los informes se descartan aquí mismo, antes de responder, y no solo desde
// el listener asíncrono.
func (s *BaseService) invalidate(ctx context.Context, patterns ...string) {
	for _, p := range append(patterns[:len(patterns):len(patterns)], informesCachePrefix) {
		if err := s.store.Invalidate(ctx, p); err != nil {
			s.logger.Warn("No se pudo invalidar la cache", zap.String("pattern", p), zap.Error(err))
		}
	}
}

func (s *BaseService) publish(ctx context.Context, event events.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if userID, err := utils.GetUserIDFromCtx(ctx); err == nil {
		event.UsuarioID = userID
	}
	s.publisher.Publish(ctx, event)
}

package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Wildcard suscribe un listener a todos los eventos.
const Wildcard = "*"

const listenerTimeout = 30 * time.Second

type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

// Bus entrega cada evento a sus listeners en goroutines propias.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	wg        sync.WaitGroup
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish no bloquea: los listeners corren con su propio timeout, desligados
// del contexto de la petición que originó el evento.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	targets := make([]Listener, 0, len(b.listeners[event.Name()])+len(b.listeners[Wildcard]))
	targets = append(targets, b.listeners[event.Name()]...)
	targets = append(targets, b.listeners[Wildcard]...)
	b.mu.RUnlock()

	for _, l := range targets {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("eventbus: error en el listener",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(l)
	}
}

// Wait bloquea hasta que terminen los listeners en curso.
func (b *Bus) Wait() {
	b.wg.Wait()
}

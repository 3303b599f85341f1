// Package cache memoizes responses with a per-entry time-to-live.
//
// Cache is the in-process store. Services talk to a Store, which is either a
// MemoryStore (backed by Cache) or a RedisStore shared between instances.
package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL se aplica cuando Set recibe un ttl nulo o negativo.
const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// Cache es un mapa clave→valor con expiración perezosa: las entradas vencidas
// solo se eliminan al leerlas o al invalidar. No tiene límite de tamaño.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
	now        func() time.Time
}

type Option func(*options)

type options struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL cambia el TTL por defecto del cache.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock sustituye time.Now, útil en pruebas.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func New[V any](opts ...Option) *Cache[V] {
	o := options{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: o.ttl,
		now:        o.now,
	}
}

// Set guarda value bajo key, sobrescribiendo cualquier entrada previa.
// Sin ttl (o con ttl <= 0) se usa el TTL por defecto.
func (c *Cache[V]) Set(key string, value V, ttl ...time.Duration) {
	d := c.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now(), ttl: d}
	c.mu.Unlock()
}

// Get devuelve el valor si existe y now-storedAt <= ttl. Una entrada vencida
// se elimina en la misma llamada.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.storedAt) > e.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Invalidate sin patrón vacía el cache. Con patrón borra toda clave que lo
// contenga como subcadena. Devuelve cuántas entradas se eliminaron.
func (c *Cache[V]) Invalidate(pattern ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(pattern) == 0 || pattern[0] == "" {
		n := len(c.entries)
		c.entries = make(map[string]entry[V])
		return n
	}

	n := 0
	for key := range c.entries {
		if strings.Contains(key, pattern[0]) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Len cuenta las entradas almacenadas, incluidas las vencidas aún no leídas.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

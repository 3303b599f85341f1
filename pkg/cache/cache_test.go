package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCache_GetAfterSet(t *testing.T) {
	c := New[string]()
	c.Set("/api/equipos", "lista")

	v, ok := c.Get("/api/equipos")
	require.True(t, ok)
	assert.Equal(t, "lista", v)
}

func TestCache_SetOverwrites(t *testing.T) {
	c := New[int]()
	c.Set("k", 1)
	c.Set("k", 2)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	clock := newFakeClock()
	c := New[string](WithClock(clock.Now))

	c.Set("k", "v", time.Second)

	clock.Advance(time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "la entrada sigue viva cuando now-timestamp == ttl")

	clock.Advance(time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "la entrada vencida se elimina al leerla")
}

func TestCache_DefaultTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string](WithClock(clock.Now))
	c.Set("k", "v")
	c.Set("cero", "v", 0)

	clock.Advance(DefaultTTL)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.Advance(time.Nanosecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	_, ok = c.Get("cero")
	assert.False(t, ok, "ttl 0 usa el TTL por defecto")
}

func TestCache_WithTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string](WithClock(clock.Now), WithTTL(time.Minute))
	c.Set("k", "v")

	clock.Advance(time.Minute + time.Second)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_InvalidatePattern(t *testing.T) {
	c := New[int]()
	c.Set("/api/dar-de-baja{}", 1)
	c.Set(`/api/dar-de-baja{"estado":"pendiente"}`, 2)
	c.Set("/api/solicitudes-bodega{}", 3)
	c.Set("/api/informes{}", 4)

	removed := c.Invalidate("dar-de-baja")
	assert.Equal(t, 2, removed)

	_, ok := c.Get("/api/dar-de-baja{}")
	assert.False(t, ok)
	_, ok = c.Get(`/api/dar-de-baja{"estado":"pendiente"}`)
	assert.False(t, ok)

	v, ok := c.Get("/api/solicitudes-bodega{}")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	v, ok = c.Get("/api/informes{}")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestCache_InvalidateAll(t *testing.T) {
	c := New[int]()
	c.Set("a", 1)
	c.Set("b", 2)

	assert.Equal(t, 2, c.Invalidate())
	assert.Equal(t, 0, c.Len())

	c.Set("c", 3)
	assert.Equal(t, 1, c.Invalidate(""))
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set("k", i)
			c.Get("k")
			c.Invalidate("x")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "/api/equipos", Key("/api/equipos", nil))
	assert.Equal(t, `/api/equipos{"estado":"operativo","page":1}`,
		Key("/api/equipos", map[string]interface{}{"page": 1, "estado": "operativo"}))
}

func TestMemoize(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := Memoize(ctx, store, "k", time.Minute, fetch)
	require.NoError(t, err)
	second, err := Memoize(ctx, store, "k", time.Minute, fetch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	require.NoError(t, store.Invalidate(ctx, "k"))
	_, err = Memoize(ctx, store, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoize_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	boom := errors.New("sin conexión")

	_, err := Memoize(ctx, store, "k", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())

	v, err := Memoize(ctx, store, "k", time.Minute, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("redis caído")
}
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("redis caído")
}
func (brokenStore) Invalidate(context.Context, string) error { return errors.New("redis caído") }

func TestMemoize_StoreFailureFallsThrough(t *testing.T) {
	store := WithLogging(brokenStore{}, zap.NewNop())
	v, err := Memoize(context.Background(), store, "k", time.Minute, func(context.Context) (string, error) {
		return "desde la base", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "desde la base", v)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS no definido")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	store := NewRedisStore(client, "test:clinical:")
	require.NoError(t, store.Invalidate(ctx, ""))

	require.NoError(t, store.Set(ctx, "ordenes{}", []byte(`[1]`), time.Minute))
	require.NoError(t, store.Set(ctx, "visitas{}", []byte(`[2]`), time.Minute))

	raw, ok, err := store.Get(ctx, "ordenes{}")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(raw))

	require.NoError(t, store.Invalidate(ctx, "ordenes"))
	_, ok, err = store.Get(ctx, "ordenes{}")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.Get(ctx, "visitas{}")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, client.Set(ctx, "test:clinical:login:visitas@hospital.org", 3, time.Minute).Err())
	require.NoError(t, store.Invalidate(ctx, ""))
	_, ok, _ = store.Get(ctx, "visitas{}")
	assert.False(t, ok)
	ajena, err := client.Get(ctx, "test:clinical:login:visitas@hospital.org").Int()
	require.NoError(t, err, "las claves fuera del cache no se tocan")
	assert.Equal(t, 3, ajena)
	client.Del(ctx, "test:clinical:login:visitas@hospital.org")
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `a\*b\?\[c\]`, escapeGlob("a*b?[c]"))
}

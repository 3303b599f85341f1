package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"clinical-service/pkg/cache"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Los contadores de login comparten cliente y prefijo con el cache, pero
// ninguna invalidación del cache debe tocarlos.
func TestRedisLoginAttempt_SobreviveInvalidacionDelCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS no definido")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	const prefix = "test:clinical:"
	store := cache.NewRedisStore(client, prefix)
	attempts := NewRedisLoginAttemptRepository(client, prefix)

	for _, email := range []string{"informes@hospital.org", "tecnico@hospital.org"} {
		require.NoError(t, attempts.Reset(ctx, email))
		for i := 0; i < 4; i++ {
			_, err := attempts.Incr(ctx, email, time.Minute)
			require.NoError(t, err)
		}
	}
	require.NoError(t, store.Set(ctx, "informes:resumen", []byte(`{}`), time.Minute))

	require.NoError(t, store.Invalidate(ctx, "informes"))
	n, err := attempts.Count(ctx, "informes@hospital.org")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	_, ok, err := store.Get(ctx, "informes:resumen")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Invalidate(ctx, ""))
	n, err = attempts.Count(ctx, "tecnico@hospital.org")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	require.NoError(t, attempts.Reset(ctx, "informes@hospital.org"))
	require.NoError(t, attempts.Reset(ctx, "tecnico@hospital.org"))
}

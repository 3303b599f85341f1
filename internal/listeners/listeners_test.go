package listeners

import (
	"context"
	"sync"
	"testing"

	"clinical-service/internal/events"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/constants"
	"clinical-service/pkg/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sent struct {
	userID uint64
	kind   string
}

type fakeHub struct {
	mu   sync.Mutex
	sent []sent
}

func (h *fakeHub) Broadcast(messageType string, _ interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, sent{kind: messageType})
	return nil
}

func (h *fakeHub) SendToUser(userID uint64, messageType string, _ interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, sent{userID: userID, kind: messageType})
	return nil
}

func TestCacheListener_InvalidatesReportsOnAnyEvent(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "informes:resumen", []byte(`{}`), 0))
	require.NoError(t, store.Set(ctx, "equipos:1", []byte(`{}`), 0))

	bus := eventbus.New(zap.NewNop())
	NewCacheListener(store, zap.NewNop(), "informes").Register(bus)

	bus.Publish(ctx, events.New(constants.EventOrdenCreada, "orden", 1, nil))
	bus.Wait()

	_, ok, _ := store.Get(ctx, "informes:resumen")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "equipos:1")
	assert.True(t, ok)
}

func TestNotificationListener(t *testing.T) {
	hub := &fakeHub{}
	l := NewNotificationListener(hub, zap.NewNop())

	checkIn := events.New(constants.EventVisitaCheckIn, "visita", 10, nil)
	checkIn.UsuarioID = 7
	require.NoError(t, l.Handle(context.Background(), checkIn))
	require.NoError(t, l.Handle(context.Background(), events.New(constants.EventOrdenCreada, "orden", 1, nil)))

	assert.Equal(t, []sent{
		{kind: constants.EventVisitaCheckIn},
		{userID: 7, kind: "visita.confirmada"},
		{kind: constants.EventOrdenCreada},
	}, hub.sent)
}

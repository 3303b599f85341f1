package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_BroadcastAndDirect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	registered := make(chan struct{}, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		userID := uint64(1)
		if r.URL.Query().Get("u") == "2" {
			userID = 2
		}
		client := NewClient(hub, conn, userID)
		hub.Register(client)
		registered <- struct{}{}
		go client.WritePump()
		client.ReadPump()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c1, _, err := websocket.DefaultDialer.Dial(url+"?u=1", nil)
	require.NoError(t, err)
	defer c1.Close()
	c2, _, err := websocket.DefaultDialer.Dial(url+"?u=2", nil)
	require.NoError(t, err)
	defer c2.Close()
	<-registered
	<-registered

	require.NoError(t, hub.SendToUser(2, "visita.check_in", map[string]int{"visita_id": 9}))
	require.NoError(t, hub.Broadcast("orden.creada", map[string]int{"orden_id": 3}))

	read := func(c *websocket.Conn) Envelope {
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := c.ReadMessage()
		require.NoError(t, err)
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	}

	// direct y broadcast van por canales distintos: el orden no está garantizado.
	assert.ElementsMatch(t, []string{"visita.check_in", "orden.creada"}, []string{read(c2).Type, read(c2).Type})
	assert.Equal(t, "orden.creada", read(c1).Type)
}

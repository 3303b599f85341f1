package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orden struct {
	ID     uint64 `json:"id"`
	Estado string `json:"estado"`
}

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/ordenes", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    []orden{{ID: 1, Estado: r.URL.Query().Get("filter[estado]")}},
			})
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": orden{ID: 2, Estado: "pendiente"}})
		}
	})
	mux.HandleFunc("/api/v1/visitas/1/check-in", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Fuera del radio",
			"details": map[string]interface{}{"distancia": 250, "radio": 100},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetIsMemoized(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c := New(srv.URL+"/api/v1", nil, zap.NewNop())
	c.SetToken("tkn")
	ctx := context.Background()

	var first, second []orden
	require.NoError(t, c.Get(ctx, "ordenes", map[string]string{"filter[estado]": "pendiente"}, &first))
	require.NoError(t, c.Get(ctx, "/ordenes", map[string]string{"filter[estado]": "pendiente"}, &second))
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, "pendiente", first[0].Estado)

	var other []orden
	require.NoError(t, c.Get(ctx, "ordenes", map[string]string{"filter[estado]": "completada"}, &other))
	assert.Equal(t, int32(2), hits.Load(), "otros filtros son otra clave")
}

func TestClient_PostInvalidatesResource(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c := New(srv.URL+"/api/v1", nil, zap.NewNop())
	c.SetToken("tkn")
	ctx := context.Background()

	var list []orden
	require.NoError(t, c.Get(ctx, "ordenes", nil, &list))

	var created orden
	require.NoError(t, c.Post(ctx, "ordenes", map[string]interface{}{"equipo_id": 1}, &created))
	assert.Equal(t, uint64(2), created.ID)

	require.NoError(t, c.Get(ctx, "ordenes", nil, &list))
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_ErrorEnvelope(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c := New(srv.URL+"/api/v1", nil, zap.NewNop())

	err := c.Post(context.Background(), "visitas/1/check-in", map[string]interface{}{"latitud": 0}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Fuera del radio", apiErr.Message)
	assert.EqualValues(t, 100, apiErr.Details["radio"])
}

func TestResource(t *testing.T) {
	assert.Equal(t, "/ordenes", resource("/ordenes/5/estado"))
	assert.Equal(t, "/ordenes", resource("ordenes"))
}

package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent string

func (e testEvent) Name() string { return string(e) }

func TestBus_PublishReachesNamedAndWildcard(t *testing.T) {
	bus := New(zap.NewNop())
	var named, all atomic.Int32

	bus.Subscribe("visita.check_in", func(context.Context, Event) error {
		named.Add(1)
		return nil
	})
	bus.Subscribe(Wildcard, func(context.Context, Event) error {
		all.Add(1)
		return errors.New("fallo ignorado")
	})

	bus.Publish(context.Background(), testEvent("visita.check_in"))
	bus.Publish(context.Background(), testEvent("orden.creada"))
	bus.Wait()

	assert.Equal(t, int32(1), named.Load())
	assert.Equal(t, int32(2), all.Load())
}

func TestBus_NoListeners(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(context.Background(), testEvent("nadie"))
	bus.Wait()
}

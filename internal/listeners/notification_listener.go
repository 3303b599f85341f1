package listeners

import (
	"context"

	"clinical-service/internal/events"
	"clinical-service/pkg/eventbus"

	"go.uber.org/zap"
)

// Broadcaster lo implementa *websocket.Hub.
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) error
	SendToUser(userID uint64, messageType string, payload interface{}) error
}

// NotificationListener reenvía los eventos de dominio a los tableros
// conectados por websocket.
type NotificationListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewNotificationListener(hub Broadcaster, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{hub: hub, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.Wildcard, l.Handle)
	l.logger.Info("NotificationListener suscrito a todos los eventos")
}

// Handle difunde el evento a todos y, si es una marca de visita, confirma al
// técnico que la hizo en todas sus conexiones.
func (l *NotificationListener) Handle(_ context.Context, event eventbus.Event) error {
	if err := l.hub.Broadcast(event.Name(), event); err != nil {
		return err
	}

	de, ok := event.(events.DomainEvent)
	if !ok || de.UsuarioID == 0 || de.Entidad != "visita" {
		return nil
	}
	if err := l.hub.SendToUser(de.UsuarioID, "visita.confirmada", de); err != nil {
		l.logger.Warn("No se pudo confirmar la marca al técnico", zap.Uint64("userID", de.UsuarioID), zap.Error(err))
	}
	return nil
}

package events

import "time"

// DomainEvent se publica después de cada escritura que cambia el estado de un
// registro. Type es uno de los constants.Event*.
type DomainEvent struct {
	Type       string      `json:"type"`
	Entidad    string      `json:"entidad"`
	EntidadID  uint64      `json:"entidad_id"`
	UsuarioID  uint64      `json:"usuario_id,omitempty"`
	Estado     string      `json:"estado,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func (e DomainEvent) Name() string {
	return e.Type
}

func New(eventType, entidad string, id uint64, payload interface{}) DomainEvent {
	return DomainEvent{
		Type:       eventType,
		Entidad:    entidad,
		EntidadID:  id,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

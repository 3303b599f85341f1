package websocket

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Envelope es el sobre de cada mensaje enviado al tablero.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type directMessage struct {
	userID uint64
	data   []byte
}

// Hub mantiene los clientes conectados. Todo el estado se toca solo desde Run.
type Hub struct {
	clients     map[*Client]bool
	userClients map[uint64]map[*Client]bool
	broadcast   chan []byte
	direct      chan directMessage
	register    chan *Client
	unregister  chan *Client
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[uint64]map[*Client]bool),
		broadcast:   make(chan []byte, 64),
		direct:      make(chan directMessage, 64),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			if h.userClients[client.UserID] == nil {
				h.userClients[client.UserID] = make(map[*Client]bool)
			}
			h.userClients[client.UserID][client] = true
			h.logger.Debug("websocket: cliente registrado", zap.Uint64("userID", client.UserID))
		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				h.logger.Debug("websocket: cliente desconectado", zap.Uint64("userID", client.UserID))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}
		case msg := <-h.direct:
			for client := range h.userClients[msg.userID] {
				h.deliver(client, msg.data)
			}
		}
	}
}

// deliver descarta al cliente cuyo buffer está lleno.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	if set := h.userClients[client.UserID]; set != nil {
		delete(set, client)
		if len(set) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
	close(client.Send)
}

func (h *Hub) Register(client *Client) { h.register <- client }

// Broadcast envía el mensaje a todos los clientes conectados.
func (h *Hub) Broadcast(messageType string, payload interface{}) error {
	data, err := encode(messageType, payload)
	if err != nil {
		return err
	}
	h.broadcast <- data
	return nil
}

// SendToUser envía el mensaje a todas las conexiones de un usuario.
func (h *Hub) SendToUser(userID uint64, messageType string, payload interface{}) error {
	data, err := encode(messageType, payload)
	if err != nil {
		return err
	}
	h.direct <- directMessage{userID: userID, data: data}
	return nil
}

func encode(messageType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

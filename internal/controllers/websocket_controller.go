package controllers

import (
	"net/http"

	"clinical-service/pkg/utils"
	appwebsocket "clinical-service/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WebSocketController struct {
	hub      *appwebsocket.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketController acepta solo los orígenes configurados para CORS.
// Una lista vacía deja pasar cualquier origen.
func NewWebSocketController(hub *appwebsocket.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
		logger: logger,
	}
}

// ServeWs se monta detrás del middleware de autenticación, que ya dejó el
// usuario en el contexto.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("ServeWs: no se pudo abrir el websocket", zap.Uint64("userID", userID), zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, userID)
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("ServeWs: cliente conectado", zap.Uint64("userID", userID))
	return nil
}

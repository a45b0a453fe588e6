package handler

import (
	"strings"

	"adorder-be/internal/pkg/apperror"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/serverutils"
	internalWS "adorder-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type NotificationHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// ServeWs authenticates the handshake and hands the connection to the hub.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on the upgrade request, so the query
	// parameter wins.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		if authHeader := c.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return apperror.Unauthenticated("missing token")
	}

	principal, err := serverutils.ParsePrincipal(tokenStr, h.jwtSecret)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", nil)
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		fields := map[string]interface{}{"user_id": principal.UserID}
		h.logger.Info("NotificationHandler", "Starting WebSocket session", fields)
		internalWS.ServeWs(h.hub, conn, principal.UserID, principal.IsAdmin())
		h.logger.Info("NotificationHandler", "WebSocket session ended", fields)
	})(c)
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}

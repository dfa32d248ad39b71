package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/auth"
	"github.com/procurehub/backend/internal/authz"
	"github.com/procurehub/backend/internal/config"
	"github.com/procurehub/backend/internal/events"
	"go.uber.org/zap"
)

// WSHub streams recorded audit events to connected compliance clients.
// Admin privilege is required to attach; the feed carries whatever the
// audit writer published, with no replay of missed events.
type WSHub struct {
	cfg        *config.Config
	authorizer *authz.Authorizer
	subscriber events.Subscriber
	log        *zap.Logger
	mu         sync.RWMutex
	conns      map[*websocket.Conn]bool
}

func NewWSHub(cfg *config.Config, authorizer *authz.Authorizer, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:        cfg,
		authorizer: authorizer,
		subscriber: subscriber,
		log:        log,
		conns:      make(map[*websocket.Conn]bool),
	}
}

func (h *WSHub) Start(ctx context.Context) {
	if h.subscriber == nil {
		return
	}
	_ = h.subscriber.Subscribe(ctx, events.StreamAudit, func(event events.Event) {
		h.broadcast(event)
	})
}

func (h *WSHub) broadcast(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.conns {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	principal := authz.Principal{UID: claims.UID, Email: claims.Email, DisplayName: claims.DisplayName}
	if !h.authorizer.IsAdmin(context.Background(), principal) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"admin access required"}`))
		conn.Close()
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

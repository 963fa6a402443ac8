package handler

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/broker"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/middleware"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxSessionLifetime = time.Hour
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 4 * 1024 // the feed is server-to-client only
)

// Control frames sent alongside broker events
const (
	FeedMessageConnected      = "connected"
	FeedMessageSessionExpired = "session_expired"
)

type FeedMessage struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

// LiveFeedHandler streams purchase and contact events to connected admins.
// Each connection holds its own broker subscription, so every server
// instance sees events published by any other.
type LiveFeedHandler struct {
	events   broker.EventBroker
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]*feedClient
	mu       sync.RWMutex
}

type feedClient struct {
	conn        *websocket.Conn
	userID      uuid.UUID
	email       string
	connectedAt time.Time
}

// NewLiveFeedHandler accepts upgrades from the listed origins. Requests
// without an Origin header (non-browser clients) are always accepted.
func NewLiveFeedHandler(events broker.EventBroker, allowedOrigins []string) *LiveFeedHandler {
	h := &LiveFeedHandler{
		events:  events,
		clients: make(map[*websocket.Conn]*feedClient),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// HandleWebSocket upgrades an admin connection
// GET /api/admin/ws
func (h *LiveFeedHandler) HandleWebSocket(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, err := h.events.Subscribe(ctx)
	if err != nil {
		logger.Log.Error("Failed to subscribe to admin events", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Live feed unavailable"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &feedClient{
		conn:        conn,
		userID:      claims.UserID,
		email:       claims.Email,
		connectedAt: time.Now(),
	}

	h.mu.Lock()
	h.clients[conn] = client
	total := len(h.clients)
	h.mu.Unlock()

	logger.Log.Info("Admin connected to live feed",
		zap.String("user_id", client.userID.String()),
		zap.String("email", client.email),
		zap.Int("total", total),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(ctx, client, events)
		// unblocks readPump when the writer gives up first
		_ = conn.Close()
	}()

	h.readPump(client)
	cancel()
	<-done

	h.removeClient(conn)
}

// ConnectedClients reports how many admins are on the feed
func (h *LiveFeedHandler) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll sends a close frame to every client; used on shutdown
func (h *LiveFeedHandler) CloseAll(reason string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		h.sendClose(conn, websocket.CloseGoingAway, reason)
		_ = conn.Close()
	}
}

// readPump discards client frames; it exists to process pongs and
// notice disconnects.
func (h *LiveFeedHandler) readPump(client *feedClient) {
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Debug("Live feed read error",
					zap.String("user_id", client.userID.String()),
					zap.Error(err),
				)
			}
			return
		}
	}
}

// writePump is the only goroutine that writes data frames to the connection
func (h *LiveFeedHandler) writePump(ctx context.Context, client *feedClient, events <-chan broker.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	sessionTimer := time.NewTimer(maxSessionLifetime)
	defer sessionTimer.Stop()

	if err := h.writeJSON(client, FeedMessage{Type: FeedMessageConnected}); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				h.sendClose(client.conn, websocket.CloseGoingAway, "event stream closed")
				return
			}
			if err := h.writeJSON(client, event); err != nil {
				return
			}

		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.Debug("Ping failed", zap.String("user_id", client.userID.String()), zap.Error(err))
				return
			}

		case <-sessionTimer.C:
			logger.Log.Info("Live feed session expired", zap.String("user_id", client.userID.String()))
			_ = h.writeJSON(client, FeedMessage{
				Type:  FeedMessageSessionExpired,
				Error: "session expired, reconnect to continue",
			})
			h.sendClose(client.conn, websocket.CloseNormalClosure, "session expired")
			return
		}
	}
}

func (h *LiveFeedHandler) writeJSON(client *feedClient, v interface{}) error {
	_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := client.conn.WriteJSON(v); err != nil {
		logger.Log.Debug("Failed to write to live feed",
			zap.String("user_id", client.userID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// sendClose uses WriteControl, which is safe alongside writePump
func (h *LiveFeedHandler) sendClose(conn *websocket.Conn, code int, reason string) {
	err := conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait),
	)
	if err != nil && err != websocket.ErrCloseSent {
		logger.Log.Debug("Failed to send close frame", zap.Error(err))
	}
}

func (h *LiveFeedHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, exists := h.clients[conn]
	if !exists {
		return
	}
	delete(h.clients, conn)

	logger.Log.Info("Admin disconnected from live feed",
		zap.String("user_id", client.userID.String()),
		zap.Duration("session", time.Since(client.connectedAt).Round(time.Second)),
		zap.Int("remaining", len(h.clients)),
	)
}

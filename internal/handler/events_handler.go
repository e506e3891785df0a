package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mockdesk/mockdesk-backend/internal/config"
	"github.com/mockdesk/mockdesk-backend/internal/middleware"
	"github.com/mockdesk/mockdesk-backend/internal/service"
	ws "github.com/mockdesk/mockdesk-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// EventsHandler streams editor stale events to open editor tabs.
type EventsHandler struct {
	rdb         *redis.Client
	mockService *service.MockService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(rdb *redis.Client, mockService *service.MockService, log zerolog.Logger, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		rdb:         rdb,
		mockService: mockService,
		log:         log.With().Str("component", "events_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// MockEventsStream godoc
// WS /ws/v1/mocks/:mock_id/events
// Upgrades to WebSocket and forwards the mock's editor stale events, so
// clients refetch the editor view after every mutation.
func (h *EventsHandler) MockEventsStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	mockID, err := strconv.Atoi(c.Param("mock_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mock ID"})
		return
	}

	// Ownership gate before upgrading; a stranger gets nothing to stream.
	if _, err := h.mockService.GetOwned(c.Request.Context(), mockID, claims.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this mock"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("user_id", claims.UserID).
		Int("mock_id", mockID).
		Logger()

	wsLog.Info().Msg("Editor connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.MockEventsChannel(mockID))
	defer sub.Close()

	// Reader goroutine: answers pings, detects client close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	events := sub.Channel()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			var stale service.StaleEvent
			if err := json.Unmarshal([]byte(msg.Payload), &stale); err != nil {
				wsLog.Warn().Err(err).Msg("Invalid event payload")
				continue
			}
			if err := ws.WriteTyped(conn, ws.StaleResponse{Event: ws.EventStale, MockID: stale.MockID}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping connection")
				return
			}
		}
	}
}

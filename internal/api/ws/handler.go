package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/events"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	maxMessageSize = 4096
)

// Source is the part of the desktop the stream needs.
type Source interface {
	ID() string
	Events() *events.Broadcaster
}

// Handler streams desktop events to WebSocket clients
type Handler struct {
	source   Source
	upgrader websocket.Upgrader
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandler creates a new stream handler. Origins lists the browser
// origins allowed to connect; an empty list or "*" allows any origin.
func NewHandler(source Source, origins []string, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		source:   source,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(origins)},
		metrics:  metrics,
		logger:   logger,
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

// HandleConnection upgrades the request and streams events until the
// client disconnects or the desktop shuts down.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	broadcaster := h.source.Events()
	sub := broadcaster.Subscribe()
	defer broadcaster.Unsubscribe(sub)

	replies := make(chan events.Event, 8)
	done := make(chan struct{})
	go h.writeLoop(conn, sub, replies, done)

	replies <- events.Event{
		Type:      events.TypeSystem,
		Data:      gin.H{"message": "Connected to LuminOS", "desktop_id": h.source.ID()},
		Timestamp: time.Now().UnixMilli(),
	}

	h.readLoop(conn, replies, done)
}

// readLoop handles client messages. Only ping is understood; anything
// else is ignored.
func (h *Handler) readLoop(conn *websocket.Conn, replies chan<- events.Event, done <-chan struct{}) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		h.record("in", msg.Type)

		if msg.Type != "ping" {
			continue
		}
		select {
		case replies <- events.Event{Type: events.TypePong, Timestamp: time.Now().UnixMilli()}:
		case <-done:
			return
		}
	}
}

// writeLoop is the only writer on conn. It ends when the subscription
// closes or a write fails, and closes done either way.
func (h *Handler) writeLoop(conn *websocket.Conn, sub <-chan events.Event, replies <-chan events.Event, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(done)
		conn.Close()
	}()

	for {
		var ev events.Event
		select {
		case e, ok := <-sub:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "desktop shutting down"),
					time.Now().Add(writeWait))
				return
			}
			ev = e
		case ev = <-replies:
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			h.logger.Debug("WebSocket write failed", zap.String("type", ev.Type), zap.Error(err))
			return
		}
		h.record("out", ev.Type)
	}
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}

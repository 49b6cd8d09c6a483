package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

const (
	writeWait      = 10 * time.Second
	detachWait     = 5 * time.Second
	queueLength    = 256
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler streams desktop events over websocket connections
type Handler struct {
	desktop *desktop.Desktop
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(d *desktop.Desktop, logger *logging.Logger) *Handler {
	return &Handler{
		desktop: d,
		logger:  logging.OrNop(logger).Named("ws"),
		metrics: d.Metrics(),
	}
}

// HandleConnection upgrades the request and streams until either side hangs up
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	cl := newClient(uuid.NewString(), h.logger)
	logger := h.logger.With(zap.String("client_id", cl.id))
	logger.Info("Client connected")

	if err := h.desktop.Do(ctx, func() error {
		cl.attach(h.desktop)
		return nil
	}); err != nil {
		logger.Warn("Failed to attach client", zap.Error(err))
		return
	}
	defer func() {
		detachCtx, cancelDetach := context.WithTimeout(context.Background(), detachWait)
		defer cancelDetach()
		if err := h.desktop.Do(detachCtx, func() error {
			cl.detach()
			return nil
		}); err != nil {
			logger.Warn("Failed to detach client", zap.Error(err))
		}
		logger.Info("Client disconnected")
	}()

	written := make(chan struct{})
	go func() {
		defer close(written)
		h.writeLoop(ctx, cancel, conn, cl)
	}()

	h.readLoop(ctx, conn, cl)
	cancel()
	<-written
}

// readLoop handles client frames until the connection fails
func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, cl *client) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("WebSocket read error", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			cl.push(errorFrame("malformed message"))
			continue
		}

		switch msg.Type {
		case "ping":
			cl.push(Frame{Type: FramePong})
		case "open":
			h.open(ctx, cl, msg.Path)
		case "window_event":
			h.deliver(ctx, cl, msg)
		default:
			cl.push(errorFrame("unknown message type"))
		}
	}
}

func (h *Handler) open(ctx context.Context, cl *client, argument string) {
	err := h.desktop.Do(ctx, func() error {
		_, err := h.desktop.Manager.Open(argument)
		return err
	})
	if err != nil {
		cl.push(errorFrame(err.Error()))
	}
}

func (h *Handler) deliver(ctx context.Context, cl *client, msg types.WSMessage) {
	event, err := msg.Event()
	if err != nil {
		cl.push(errorFrame(err.Error()))
		return
	}
	err = h.desktop.Do(ctx, func() error {
		return h.desktop.Deliver(msg.WindowID, event)
	})
	if err != nil {
		cl.push(errorFrame(err.Error()))
	}
}

// writeLoop is the only writer of conn
func (h *Handler) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, cl *client) {
	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case frame := <-cl.queue:
			data, err := sonic.Marshal(frame)
			if err != nil {
				h.logger.Error("Failed to encode frame", zap.String("type", frame.Type), zap.Error(err))
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Debug("WebSocket write error", zap.String("client_id", cl.id), zap.Error(err))
				cancel()
				conn.Close()
				return
			}
			if h.metrics != nil {
				h.metrics.RecordWSMessage(frame.Type)
			}
		}
	}
}

package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/compositor"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	desktop *desktop.Desktop
	logger  *logging.Logger
	timeout time.Duration
}

// NewHandlers creates a new handler set
func NewHandlers(d *desktop.Desktop, logger *logging.Logger) *Handlers {
	return &Handlers{
		desktop: d,
		logger:  logging.OrNop(logger).Named("http"),
		timeout: 5 * time.Second,
	}
}

// Register adds every route to r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// Process table
	r.GET("/processes", h.ListProcesses)
	r.POST("/processes", h.OpenProcess)
	r.DELETE("/processes/:pid", h.KillProcess)
	r.POST("/processes/:pid/terminate", h.TerminateProcess)
	r.POST("/reset", h.Reset)

	// Shell models
	r.GET("/menu", h.Menu)
	r.POST("/menu/invoke", h.InvokeMenu)
	r.GET("/dock", h.Dock)

	// Windows
	r.GET("/windows", h.ListWindows)
	r.POST("/windows/:id/focus", h.FocusWindow)
	r.POST("/windows/:id/minimize", h.MinimizeWindow)
	r.POST("/windows/:id/maximize", h.MaximizeWindow)
	r.POST("/windows/:id/events", h.SendWindowEvent)
	r.DELETE("/windows/:id", h.CloseWindow)

	// File system
	r.GET("/files", h.GetFile)

	// Front-end logs
	r.POST("/logs", h.StreamLogs)
}

// Root reports the service identity
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "J-OS Desktop",
		"version": Version,
	})
}

// Health reports process and window counts
func (h *Handlers) Health(c *gin.Context) {
	var processes, windows int
	err := h.do(c, func() error {
		processes = h.desktop.Manager.Running()
		windows = h.desktop.Compositor.Count()
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{
		"status":    "healthy",
		"processes": processes,
		"windows":   windows,
	}
	if m := h.desktop.Metrics(); m != nil {
		body["metrics"] = m.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// do runs fn on the desktop's control loop, bounded by the request
// context. A timeout reported as 503 means fn never ran.
func (h *Handlers) do(c *gin.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	return h.desktop.Do(ctx, fn)
}

// fail writes err with the status it maps to
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrFileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrNotImplemented):
		status = http.StatusNotImplemented
	case errors.Is(err, errNotFound),
		errors.Is(err, desktop.ErrMenuItemNotFound),
		errors.Is(err, compositor.ErrWindowNotFound),
		errors.Is(err, vfs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, vfs.ErrInvalidPath),
		errors.Is(err, types.ErrUnsupportedEvent):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, desktop.ErrLoopStopped):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		h.logger.Error("Request failed", zap.String("route", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

var (
	errNotFound   = errors.New("not found")
	errBadRequest = errors.New("bad request")
)

func parseID(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.Join(errBadRequest, errors.New("invalid "+name+": "+raw))
	}
	return n, nil
}

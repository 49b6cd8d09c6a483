package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// ListWindows returns every window bottom to top with the focused id
func (h *Handlers) ListWindows(c *gin.Context) {
	var (
		windows []app.Window
		focused types.WindowID
	)
	err := h.do(c, func() error {
		windows = h.desktop.Compositor.Windows()
		focused = h.desktop.Compositor.Focused()
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"focused": focused, "windows": windows})
}

// FocusWindow raises and focuses a window
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowAction(c, h.desktop.Compositor.Focus)
}

// MinimizeWindow hides a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowAction(c, h.desktop.Compositor.Minimize)
}

// MaximizeWindow toggles the maximized state of a window
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.windowAction(c, h.desktop.Compositor.Maximize)
}

// CloseWindow closes a window on behalf of the user
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowAction(c, h.desktop.Compositor.Close)
}

// SendWindowEvent delivers an application event to the owner of a window
func (h *Handlers) SendWindowEvent(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req types.WindowEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := req.Event()
	if err != nil {
		h.fail(c, err)
		return
	}

	err = h.do(c, func() error {
		return h.desktop.Deliver(types.WindowID(id), event)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"delivered": req.Kind})
}

func (h *Handlers) windowAction(c *gin.Context, action func(types.WindowID) error) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var window app.Window
	err = h.do(c, func() error {
		windowID := types.WindowID(id)
		if err := action(windowID); err != nil {
			return err
		}
		if w, ok := h.desktop.Compositor.Get(windowID); ok {
			window = w
		}
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": window})
}

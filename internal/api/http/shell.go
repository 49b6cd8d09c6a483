package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
)

// InvokeRequest names a menu item
type InvokeRequest struct {
	Menu string `json:"menu" binding:"required"`
	Item string `json:"item" binding:"required"`
}

// Menu returns the menu of the focused application
func (h *Handlers) Menu(c *gin.Context) {
	var (
		entries []app.MenuEntry
		focused = app.NoProcess
	)
	err := h.do(c, func() error {
		entries = h.desktop.MenuBar.Entries()
		if a, ok := h.desktop.MenuBar.Focused(); ok {
			if pid, ok := h.desktop.Manager.ProcessOf(a); ok {
				focused = pid
			}
		}
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"focused": focused, "entries": entries})
}

// InvokeMenu runs the action of a menu item
func (h *Handlers) InvokeMenu(c *gin.Context) {
	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.do(c, func() error {
		return h.desktop.MenuBar.Invoke(req.Menu, req.Item)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoked": true})
}

// Dock returns the dock entries
func (h *Handlers) Dock(c *gin.Context) {
	var entries []desktop.DockEntry
	err := h.do(c, func() error {
		entries = h.desktop.Dock.Entries()
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

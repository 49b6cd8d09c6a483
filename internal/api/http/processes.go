package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
)

// OpenRequest launches a program by command line
type OpenRequest struct {
	Argument string `json:"argument" binding:"required"`
}

// ListProcesses returns the process table
func (h *Handlers) ListProcesses(c *gin.Context) {
	var processes []app.ProcessInfo
	err := h.do(c, func() error {
		processes = h.desktop.Manager.ListProcesses()
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"processes": processes})
}

// OpenProcess launches or routes an open request
func (h *Handlers) OpenProcess(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pid := app.NoProcess
	err := h.do(c, func() error {
		var err error
		pid, err = h.desktop.Manager.Open(req.Argument)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pid": pid})
}

// KillProcess removes a process from the table
func (h *Handlers) KillProcess(c *gin.Context) {
	pid, err := parseID(c, "pid")
	if err != nil {
		h.fail(c, err)
		return
	}

	var killed bool
	err = h.do(c, func() error {
		_, killed = h.desktop.Manager.Lookup(app.ProcessID(pid))
		h.desktop.Manager.Kill(app.ProcessID(pid))
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"killed": killed})
}

// TerminateProcess asks a process to quit itself
func (h *Handlers) TerminateProcess(c *gin.Context) {
	pid, err := parseID(c, "pid")
	if err != nil {
		h.fail(c, err)
		return
	}

	err = h.do(c, func() error {
		if !h.desktop.Manager.Terminate(app.ProcessID(pid)) {
			return errNotFound
		}
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"terminated": true})
}

// Reset kills every process and restarts numbering
func (h *Handlers) Reset(c *gin.Context) {
	err := h.do(c, func() error {
		h.desktop.Reset()
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
)

// NodeView is the wire form of a file system node
type NodeView struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Kind     vfs.Kind   `json:"kind"`
	Content  string     `json:"content,omitempty"`
	Charset  string     `json:"charset,omitempty"`
	Source   string     `json:"source,omitempty"`
	MIMEType string     `json:"mime_type,omitempty"`
	Target   string     `json:"target,omitempty"`
	ModTime  time.Time  `json:"mod_time"`
	Children []NodeView `json:"children,omitempty"`
}

func newNodeView(n *vfs.Node, withChildren bool) NodeView {
	view := NodeView{
		Name:     n.Name,
		Path:     vfs.ConstructPath(n),
		Kind:     n.Kind,
		Content:  n.Content,
		Charset:  n.Charset,
		Source:   n.Source,
		MIMEType: n.MIMEType,
		Target:   vfs.ConstructPath(n.Target),
		ModTime:  n.ModTime,
	}
	if withChildren && n.IsDir() {
		view.Children = []NodeView{}
		for _, child := range n.Children() {
			view.Children = append(view.Children, newNodeView(child, false))
		}
	}
	return view
}

// GetFile returns a node and, for directories, its entries
func (h *Handlers) GetFile(c *gin.Context) {
	p := c.DefaultQuery("path", paths.Root)

	var view NodeView
	err := h.do(c, func() error {
		node, err := h.desktop.FS.GetNode(p)
		if err != nil {
			return err
		}
		view = newNodeView(node, true)
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

package app

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// WindowSpec describes a window to open
type WindowSpec struct {
	X           int
	Y           int
	Width       int
	Height      int
	Title       string
	View        string
	Args        string
	Application Application
}

// Window is the compositor's record of an open window
type Window struct {
	ID          types.WindowID `json:"id"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Title       string         `json:"title"`
	View        string         `json:"view"`
	Args        string         `json:"args"`
	Focused     bool           `json:"focused"`
	Minimized   bool           `json:"minimized"`
	Maximized   bool           `json:"maximized"`
	Application Application    `json:"-"`
}

// WindowContext identifies the window an event concerns
type WindowContext struct {
	WindowID types.WindowID
}

// Compositor is the window surface scoped to one application instance. It
// only sees the windows that instance opened.
type Compositor interface {
	Open(spec WindowSpec) *Window
	Close(id types.WindowID)
	CloseAll()
	Focus(id types.WindowID)
	GetByID(id types.WindowID) (*Window, bool)
	Update(w *Window)
	Windows() []*Window
	Prompt(ctx context.Context, id types.WindowID, message, defaultValue string) (string, error)
	Alert(ctx context.Context, id types.WindowID, message string) error
}

// WindowCompositor hands out scoped compositors and reports focus changes
// back to the manager it is registered with
type WindowCompositor interface {
	NewLocal() Compositor
	RegisterApplicationManager(m *Manager)
}

package compositor

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// EventType tags a window Event
type EventType string

const (
	EventCreate   EventType = "create_window"
	EventUpdate   EventType = "update_window"
	EventFocus    EventType = "focus_window"
	EventMinimize EventType = "minimize_window"
	EventMaximize EventType = "maximize_window"
	EventDestroy  EventType = "destroy_window"
	EventWindows  EventType = "update_windows"
)

// Event reports a change to one window, or to the whole stack for
// EventWindows. Window is a copy taken when the event was published.
type Event struct {
	Type     EventType      `json:"event"`
	WindowID types.WindowID `json:"window_id,omitempty"`
	Moved    bool           `json:"moved,omitempty"`
	Resized  bool           `json:"resized,omitempty"`
	Window   *app.Window    `json:"window,omitempty"`
}

package types

import (
	"errors"
	"fmt"
)

// ErrUnsupportedEvent is returned for event kinds a view may not raise
var ErrUnsupportedEvent = errors.New("unsupported event")

// WindowEventRequest is an application event raised by a window view
type WindowEventRequest struct {
	Kind string `json:"kind" binding:"required"`
	Path string `json:"path,omitempty"`
	Line string `json:"line,omitempty"`
}

// Event decodes the request into the event it names. Only the kinds a view
// may raise are accepted; lifecycle events belong to the kernel.
func (r WindowEventRequest) Event() (ApplicationEvent, error) {
	switch EventKind(r.Kind) {
	case KindFinderOpenFile:
		if r.Path == "" {
			return nil, fmt.Errorf("%w: %s requires a path", ErrUnsupportedEvent, r.Kind)
		}
		return NewFinderOpenFileEvent(r.Path), nil
	case KindAboutOpenContact:
		return NewAboutOpenContactEvent(), nil
	case KindTerminalCommand:
		return NewTerminalCommandEvent(r.Line), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, r.Kind)
	}
}

// WSMessage is a frame sent by a websocket client
type WSMessage struct {
	Type     string   `json:"type"`
	WindowID WindowID `json:"window_id,omitempty"`
	WindowEventRequest
}

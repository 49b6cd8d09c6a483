package ws

import (
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/compositor"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Frame types sent to clients
const (
	FrameSystem    = "system"
	FrameProcesses = "processes"
	FrameWindow    = "window"
	FrameMenu      = "menu"
	FrameView      = "view"
	FramePong      = "pong"
	FrameError     = "error"
)

// Frame is one server message
type Frame struct {
	Type      string         `json:"type"`
	ClientID  string         `json:"client_id,omitempty"`
	WindowID  types.WindowID `json:"window_id,omitempty"`
	Kind      string         `json:"kind,omitempty"`
	Message   string         `json:"message,omitempty"`
	Payload   any            `json:"payload,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

func errorFrame(message string) Frame {
	return Frame{Type: FrameError, Message: message}
}

// client is the kernel-side state of one connection. attach and detach run
// on the control loop, and so do the listeners they register; push is safe
// from any goroutine.
type client struct {
	id     string
	queue  chan Frame
	subs   []eventbus.Subscription
	views  map[types.WindowID]eventbus.Subscription
	d      *desktop.Desktop
	logger *logging.Logger
}

func newClient(id string, logger *logging.Logger) *client {
	return &client{
		id:     id,
		queue:  make(chan Frame, queueLength),
		views:  make(map[types.WindowID]eventbus.Subscription),
		logger: logging.OrNop(logger),
	}
}

// push queues a frame, dropping it when the client cannot keep up
func (cl *client) push(frame Frame) {
	frame.Timestamp = time.Now().Unix()
	select {
	case cl.queue <- frame:
	default:
		cl.logger.Warn("Client queue full, dropping frame",
			zap.String("client_id", cl.id),
			zap.String("type", frame.Type),
		)
	}
}

// attach subscribes to the desktop and sends the current state
func (cl *client) attach(d *desktop.Desktop) {
	cl.d = d
	cl.push(Frame{Type: FrameSystem, ClientID: cl.id, Message: "Connected to J-OS"})

	cl.subs = append(cl.subs,
		d.Subscribe(cl.onProcessEvent),
		d.Compositor.Subscribe(cl.onWindowEvent),
		d.MenuBar.Subscribe(cl.onMenu),
	)

	cl.pushProcesses()
	cl.push(Frame{Type: FrameWindow, Kind: string(compositor.EventWindows), Payload: d.Compositor.Windows()})
	cl.onMenu(d.MenuBar.Entries())

	for _, w := range d.Compositor.Windows() {
		cl.watch(w.ID, w.Application)
	}
}

// detach drops every subscription of the connection
func (cl *client) detach() {
	for _, sub := range cl.subs {
		sub.Unsubscribe()
	}
	cl.subs = nil
	for id, sub := range cl.views {
		sub.Unsubscribe()
		delete(cl.views, id)
	}
}

func (cl *client) onProcessEvent(event app.Event) {
	if event.Kind == app.EventUpdate {
		cl.pushProcesses()
	}
}

func (cl *client) pushProcesses() {
	cl.push(Frame{Type: FrameProcesses, Payload: cl.d.Manager.ListProcesses()})
}

func (cl *client) onWindowEvent(event compositor.Event) {
	switch event.Type {
	case compositor.EventCreate:
		if event.Window != nil {
			cl.watch(event.WindowID, event.Window.Application)
		}
	case compositor.EventDestroy:
		if sub, ok := cl.views[event.WindowID]; ok {
			sub.Unsubscribe()
			delete(cl.views, event.WindowID)
		}
	}
	cl.push(Frame{Type: FrameWindow, WindowID: event.WindowID, Kind: string(event.Type), Payload: event})
}

func (cl *client) onMenu(entries []app.MenuEntry) {
	cl.push(Frame{Type: FrameMenu, Payload: entries})
}

// watch forwards the view events of one window
func (cl *client) watch(id types.WindowID, owner app.Application) {
	if owner == nil {
		return
	}
	if _, ok := cl.views[id]; ok {
		return
	}
	cl.views[id] = owner.SubscribeToWindowEvents(id, func(event types.ViewEvent) {
		cl.push(Frame{Type: FrameView, WindowID: id, Kind: string(event.ViewKind()), Payload: event})
	})
}

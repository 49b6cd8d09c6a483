package compositor

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"go.uber.org/zap"
)

// NoWindow is the id reported when nothing is focused
const NoWindow types.WindowID = 0

type geometry struct {
	x, y, width, height int
}

type entry struct {
	window *app.Window
	owner  *Local
	last   geometry
}

// Compositor owns every window of the desktop. It is not safe for
// concurrent use; drive it from the same goroutine as the manager.
type Compositor struct {
	nextID   types.WindowID
	windows  map[types.WindowID]*entry
	stack    []types.WindowID // bottom to top
	focused  types.WindowID
	manager  *app.Manager
	events   eventbus.Bus[Event]
	prompter Prompter
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// New creates an empty compositor
func New() *Compositor {
	return &Compositor{
		nextID:   1,
		windows:  make(map[types.WindowID]*entry),
		prompter: DefaultPrompter{},
		logger:   logging.NewNop(),
	}
}

// WithLogger adds structured logging to the compositor
func (c *Compositor) WithLogger(logger *logging.Logger) *Compositor {
	c.logger = logging.OrNop(logger).Named("compositor")
	return c
}

// WithMetrics adds metrics tracking to the compositor
func (c *Compositor) WithMetrics(metrics *monitoring.Metrics) *Compositor {
	c.metrics = metrics
	return c
}

// WithPrompter replaces the dialog implementation
func (c *Compositor) WithPrompter(p Prompter) *Compositor {
	if p != nil {
		c.prompter = p
	}
	return c
}

// NewLocal creates a scoped compositor for a new application instance
func (c *Compositor) NewLocal() app.Compositor {
	return &Local{c: c}
}

// RegisterApplicationManager sets the manager notified of focus changes
func (c *Compositor) RegisterApplicationManager(m *app.Manager) {
	c.manager = m
}

// Subscribe registers a listener for window events
func (c *Compositor) Subscribe(listener eventbus.Listener[Event]) eventbus.Subscription {
	return c.events.Subscribe(listener)
}

// Unsubscribe removes a window event listener
func (c *Compositor) Unsubscribe(id eventbus.ListenerID) {
	c.events.Unsubscribe(id)
}

// Windows returns copies of every window from bottom to top
func (c *Compositor) Windows() []app.Window {
	out := make([]app.Window, 0, len(c.stack))
	for _, id := range c.stack {
		out = append(out, *c.windows[id].window)
	}
	return out
}

// Get returns a copy of a window
func (c *Compositor) Get(id types.WindowID) (app.Window, bool) {
	e, ok := c.windows[id]
	if !ok {
		return app.Window{}, false
	}
	return *e.window, true
}

// Focused returns the focused window id, NoWindow when none
func (c *Compositor) Focused() types.WindowID {
	return c.focused
}

// Count returns the number of open windows
func (c *Compositor) Count() int {
	return len(c.windows)
}

// Focus raises and focuses a window
func (c *Compositor) Focus(id types.WindowID) error {
	if !c.focus(id) {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	return nil
}

// Close closes a window as if the user clicked its close button
func (c *Compositor) Close(id types.WindowID) error {
	if _, ok := c.windows[id]; !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	c.close(id)
	return nil
}

// Minimize hides a window and focuses the next one
func (c *Compositor) Minimize(id types.WindowID) error {
	e, ok := c.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}

	e.window.Minimized = true
	c.publish(Event{Type: EventMinimize, WindowID: id, Window: snapshot(e.window)})

	if c.focused == id {
		e.window.Focused = false
		c.focused = NoWindow
		c.refocus()
	}
	return nil
}

// Maximize toggles a window's maximized state
func (c *Compositor) Maximize(id types.WindowID) error {
	e, ok := c.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}

	e.window.Maximized = !e.window.Maximized
	c.publish(Event{Type: EventMaximize, WindowID: id, Window: snapshot(e.window)})
	return nil
}

// Move changes a window's position
func (c *Compositor) Move(id types.WindowID, x, y int) error {
	e, ok := c.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	e.window.X, e.window.Y = x, y
	c.update(e)
	return nil
}

// Resize changes a window's size
func (c *Compositor) Resize(id types.WindowID, width, height int) error {
	e, ok := c.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	e.window.Width, e.window.Height = width, height
	c.update(e)
	return nil
}

func (c *Compositor) open(spec app.WindowSpec, owner *Local) *app.Window {
	w := &app.Window{
		ID:          c.nextID,
		X:           spec.X,
		Y:           spec.Y,
		Width:       spec.Width,
		Height:      spec.Height,
		Title:       spec.Title,
		View:        spec.View,
		Args:        spec.Args,
		Application: spec.Application,
	}
	c.nextID++

	c.windows[w.ID] = &entry{window: w, owner: owner, last: geometryOf(w)}
	c.stack = append(c.stack, w.ID)
	owner.owned = append(owner.owned, w.ID)

	c.logger.Debug("Window opened", zap.Int("window_id", int(w.ID)), zap.String("title", w.Title))
	c.publish(Event{Type: EventCreate, WindowID: w.ID, Window: snapshot(w)})

	c.focus(w.ID)

	if w.Application != nil {
		w.Application.On(types.NewWindowOpenEvent(w.ID), &app.WindowContext{WindowID: w.ID})
	}
	return w
}

func (c *Compositor) focus(id types.WindowID) bool {
	e, ok := c.windows[id]
	if !ok {
		return false
	}

	if prev, ok := c.windows[c.focused]; ok && c.focused != id {
		prev.window.Focused = false
	}

	e.window.Focused = true
	e.window.Minimized = false
	c.focused = id
	c.raise(id)

	c.publish(Event{Type: EventFocus, WindowID: id, Window: snapshot(e.window)})

	if c.manager != nil && e.window.Application != nil {
		c.manager.Focus(e.window.Application)
	}
	return true
}

// refocus focuses the topmost visible window when nothing has focus
func (c *Compositor) refocus() {
	if c.focused != NoWindow {
		return
	}
	for i := len(c.stack) - 1; i >= 0; i-- {
		if !c.windows[c.stack[i]].window.Minimized {
			c.focus(c.stack[i])
			return
		}
	}
}

func (c *Compositor) close(id types.WindowID) {
	e, ok := c.windows[id]
	if !ok {
		return
	}
	c.destroy(id)
	c.refocus()

	application := e.window.Application
	if application == nil {
		return
	}

	ctx := &app.WindowContext{WindowID: id}
	application.On(types.NewWindowCloseEvent(id), ctx)
	if len(e.owner.owned) == 0 {
		application.On(types.NewAllWindowsClosedEvent(), nil)
	}
}

// destroy removes a window without notifying its application
func (c *Compositor) destroy(id types.WindowID) {
	e, ok := c.windows[id]
	if !ok {
		return
	}

	delete(c.windows, id)
	c.stack = without(c.stack, id)
	e.owner.owned = without(e.owner.owned, id)
	if c.focused == id {
		c.focused = NoWindow
	}
	e.window.Focused = false

	c.logger.Debug("Window destroyed", zap.Int("window_id", int(id)))
	c.publish(Event{Type: EventDestroy, WindowID: id})
}

func (c *Compositor) update(e *entry) {
	now := geometryOf(e.window)
	moved := now.x != e.last.x || now.y != e.last.y
	resized := now.width != e.last.width || now.height != e.last.height
	e.last = now

	c.publish(Event{
		Type:     EventUpdate,
		WindowID: e.window.ID,
		Moved:    moved,
		Resized:  resized,
		Window:   snapshot(e.window),
	})
}

func (c *Compositor) raise(id types.WindowID) {
	c.stack = append(without(c.stack, id), id)
}

func (c *Compositor) publish(event Event) {
	if c.metrics != nil {
		c.metrics.RecordWindowEvent(string(event.Type), len(c.windows))
	}
	c.events.Publish(event)
}

func (c *Compositor) prompt(ctx context.Context, e *entry, message, defaultValue string) (string, error) {
	return c.prompter.Prompt(ctx, snapshot(e.window), message, defaultValue)
}

func (c *Compositor) alert(ctx context.Context, e *entry, message string) error {
	return c.prompter.Alert(ctx, snapshot(e.window), message)
}

func geometryOf(w *app.Window) geometry {
	return geometry{x: w.X, y: w.Y, width: w.Width, height: w.Height}
}

func snapshot(w *app.Window) *app.Window {
	cp := *w
	return &cp
}

func without(ids []types.WindowID, id types.WindowID) []types.WindowID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

package compositor

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Local is the compositor as seen by one application instance. Calls naming
// windows the instance does not own are ignored.
type Local struct {
	c     *Compositor
	owned []types.WindowID // open order
}

// Open creates, raises and focuses a window, then delivers window-open to
// spec.Application
func (l *Local) Open(spec app.WindowSpec) *app.Window {
	return l.c.open(spec, l)
}

// Close closes one owned window and notifies its application
func (l *Local) Close(id types.WindowID) {
	if l.owns(id) {
		l.c.close(id)
	}
}

// CloseAll destroys every owned window without notifying the application
func (l *Local) CloseAll() {
	if len(l.owned) == 0 {
		return
	}

	ids := append([]types.WindowID(nil), l.owned...)
	for _, id := range ids {
		l.c.destroy(id)
	}
	l.c.publish(Event{Type: EventWindows})
	l.c.refocus()
}

// Focus raises and focuses an owned window
func (l *Local) Focus(id types.WindowID) {
	if l.owns(id) {
		l.c.focus(id)
	}
}

// GetByID returns an owned window
func (l *Local) GetByID(id types.WindowID) (*app.Window, bool) {
	if !l.owns(id) {
		return nil, false
	}
	return l.c.windows[id].window, true
}

// Update publishes changes made to an owned window. Geometry and title are
// copied when w is not the compositor's own record.
func (l *Local) Update(w *app.Window) {
	if w == nil || !l.owns(w.ID) {
		return
	}

	e := l.c.windows[w.ID]
	if e.window != w {
		e.window.X, e.window.Y = w.X, w.Y
		e.window.Width, e.window.Height = w.Width, w.Height
		e.window.Title = w.Title
	}
	l.c.update(e)
}

// Windows returns the owned windows in open order
func (l *Local) Windows() []*app.Window {
	out := make([]*app.Window, 0, len(l.owned))
	for _, id := range l.owned {
		out = append(out, l.c.windows[id].window)
	}
	return out
}

// Prompt asks the user for a value on behalf of an owned window
func (l *Local) Prompt(ctx context.Context, id types.WindowID, message, defaultValue string) (string, error) {
	if !l.owns(id) {
		return "", fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	return l.c.prompt(ctx, l.c.windows[id], message, defaultValue)
}

// Alert shows a message on behalf of an owned window
func (l *Local) Alert(ctx context.Context, id types.WindowID, message string) error {
	if !l.owns(id) {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	return l.c.alert(ctx, l.c.windows[id], message)
}

func (l *Local) owns(id types.WindowID) bool {
	for _, owned := range l.owned {
		if owned == id {
			return true
		}
	}
	return false
}

var (
	_ app.Compositor       = (*Local)(nil)
	_ app.WindowCompositor = (*Compositor)(nil)
)

package compositor

import (
	"context"
	"errors"
	"testing"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// windowed opens one window per open request and records its events
type windowed struct {
	app.Base
	cfg    *app.Config
	events []types.ApplicationEvent
}

func (w *windowed) Config() *app.Config          { return w.cfg }
func (w *windowed) MenuEntries() []app.MenuEntry { return nil }

func (w *windowed) On(event types.ApplicationEvent, window *app.WindowContext) {
	w.events = append(w.events, event)
	if w.HandleBase(event, window) {
		return
	}
	if open, ok := event.(types.ApplicationOpenEvent); ok {
		w.Compositor.Open(app.WindowSpec{Title: w.cfg.DisplayName, Width: 400, Height: 300, Args: open.Args, Application: w})
	}
}

func (w *windowed) kinds() []types.EventKind {
	out := make([]types.EventKind, len(w.events))
	for i, e := range w.events {
		out[i] = e.Kind()
	}
	return out
}

type harness struct {
	compositor *Compositor
	manager    *app.Manager
	apps       map[string]*windowed
	managerEvt []app.Event
	windowEvt  []Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{compositor: New(), apps: make(map[string]*windowed)}
	fs := vfs.New()

	for _, name := range []string{"Notes", "Finder"} {
		name := name
		cfg := &app.Config{DisplayName: name, AppName: name + ".app"}
		cfg.Entrypoint = func(c app.Compositor, l *app.LocalManager, apis *system.APIs) app.Application {
			w := &windowed{Base: app.NewBase(c, l, apis), cfg: cfg}
			h.apps[name] = w
			return w
		}
		_, err := fs.AddApplication(cfg.InstallPath(), cfg)
		require.NoError(t, err)
	}

	h.manager = app.NewManager(h.compositor, fs, system.NewAPIs(fs, nil, nil))
	h.manager.Subscribe(func(e app.Event) { h.managerEvt = append(h.managerEvt, e) })
	h.compositor.Subscribe(func(e Event) { h.windowEvt = append(h.windowEvt, e) })
	return h
}

func (h *harness) open(t *testing.T, argument string) app.ProcessID {
	t.Helper()
	pid, err := h.manager.Open(argument)
	require.NoError(t, err)
	return pid
}

func (h *harness) windowEventTypes() []EventType {
	out := make([]EventType, len(h.windowEvt))
	for i, e := range h.windowEvt {
		out[i] = e.Type
	}
	return out
}

func TestOpenFocusesAndNotifies(t *testing.T) {
	h := newHarness(t)
	h.open(t, "/Applications/Notes.app")

	notes := h.apps["Notes"]
	assert.Equal(t, []types.EventKind{types.KindApplicationOpen, types.KindWindowOpen}, notes.kinds())

	windows := h.compositor.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, types.WindowID(1), windows[0].ID)
	assert.True(t, windows[0].Focused)
	assert.Equal(t, types.WindowID(1), h.compositor.Focused())

	assert.Equal(t, []EventType{EventCreate, EventFocus}, h.windowEventTypes())

	// The manager heard about the focus before the process table update
	require.Len(t, h.managerEvt, 2)
	assert.Equal(t, app.EventFocus, h.managerEvt[0].Kind)
	assert.Same(t, notes, h.managerEvt[0].Application)
	assert.Equal(t, app.EventUpdate, h.managerEvt[1].Kind)
}

func TestFocusRaisesWindow(t *testing.T) {
	h := newHarness(t)
	h.open(t, "/Applications/Notes.app")
	h.open(t, "/Applications/Finder.app")

	require.NoError(t, h.compositor.Focus(1))

	windows := h.compositor.Windows()
	assert.Equal(t, types.WindowID(1), windows[len(windows)-1].ID)
	assert.True(t, windows[1].Focused)
	assert.False(t, windows[0].Focused)

	last := h.managerEvt[len(h.managerEvt)-1]
	assert.Same(t, h.apps["Notes"], last.Application)

	assert.ErrorIs(t, h.compositor.Focus(99), ErrWindowNotFound)
}

func TestCloseLastWindowQuitsApplication(t *testing.T) {
	h := newHarness(t)
	pid := h.open(t, "/Applications/Notes.app")

	require.NoError(t, h.compositor.Close(1))

	notes := h.apps["Notes"]
	assert.Equal(t, []types.EventKind{
		types.KindApplicationOpen,
		types.KindWindowOpen,
		types.KindWindowClose,
		types.KindAllWindowsClosed,
		types.KindApplicationQuit,
	}, notes.kinds())

	_, ok := h.manager.Lookup(pid)
	assert.False(t, ok)
	assert.Zero(t, h.compositor.Count())
}

func TestCloseOneOfSeveralWindows(t *testing.T) {
	h := newHarness(t)
	pid := h.open(t, "/Applications/Notes.app a.txt")
	h.open(t, "/Applications/Notes.app b.txt")

	require.NoError(t, h.compositor.Close(2))

	_, ok := h.manager.Lookup(pid)
	assert.True(t, ok)
	assert.Equal(t, types.WindowID(1), h.compositor.Focused())
	assert.NotContains(t, h.apps["Notes"].kinds(), types.KindAllWindowsClosed)
}

func TestKillClosesWindowsSilently(t *testing.T) {
	h := newHarness(t)
	notes := h.open(t, "/Applications/Notes.app")
	h.open(t, "/Applications/Notes.app second")
	h.open(t, "/Applications/Finder.app")
	require.NoError(t, h.compositor.Focus(1))

	h.manager.Kill(notes)

	assert.Equal(t, 1, h.compositor.Count())
	assert.NotContains(t, h.apps["Notes"].kinds(), types.KindWindowClose)
	assert.Contains(t, h.windowEventTypes(), EventWindows)

	// Focus moves to the surviving window
	assert.Equal(t, types.WindowID(3), h.compositor.Focused())
}

func TestLocalOnlySeesOwnWindows(t *testing.T) {
	h := newHarness(t)
	h.open(t, "/Applications/Notes.app")
	h.open(t, "/Applications/Finder.app")

	notes := h.apps["Notes"].Compositor
	_, ok := notes.GetByID(2)
	assert.False(t, ok)

	notes.Close(2)
	notes.Focus(2)
	assert.Equal(t, 2, h.compositor.Count())
	assert.Equal(t, types.WindowID(2), h.compositor.Focused())

	require.Len(t, notes.Windows(), 1)
	assert.Equal(t, types.WindowID(1), notes.Windows()[0].ID)

	_, err := notes.Prompt(context.Background(), 2, "name?", "x")
	assert.ErrorIs(t, err, ErrWindowNotFound)
	assert.ErrorIs(t, notes.Alert(context.Background(), 2, "hi"), ErrWindowNotFound)
}

func TestUpdateReportsGeometryChanges(t *testing.T) {
	h := newHarness(t)
	h.open(t, "/Applications/Notes.app")
	local := h.apps["Notes"].Compositor

	w, ok := local.GetByID(1)
	require.True(t, ok)
	w.X = 50
	local.Update(w)

	last := h.windowEvt[len(h.windowEvt)-1]
	assert.Equal(t, EventUpdate, last.Type)
	assert.True(t, last.Moved)
	assert.False(t, last.Resized)

	require.NoError(t, h.compositor.Resize(1, 800, 600))
	last = h.windowEvt[len(h.windowEvt)-1]
	assert.False(t, last.Moved)
	assert.True(t, last.Resized)

	require.NoError(t, h.compositor.Move(1, 0, 0))
	got, _ := h.compositor.Get(1)
	assert.Equal(t, 0, got.X)
	assert.Equal(t, 800, got.Width)
}

func TestMinimizeAndMaximize(t *testing.T) {
	h := newHarness(t)
	h.open(t, "/Applications/Notes.app")
	h.open(t, "/Applications/Finder.app")

	require.NoError(t, h.compositor.Minimize(2))
	got, _ := h.compositor.Get(2)
	assert.True(t, got.Minimized)
	assert.Equal(t, types.WindowID(1), h.compositor.Focused())

	// Focusing restores a minimized window
	require.NoError(t, h.compositor.Focus(2))
	got, _ = h.compositor.Get(2)
	assert.False(t, got.Minimized)

	require.NoError(t, h.compositor.Maximize(2))
	got, _ = h.compositor.Get(2)
	assert.True(t, got.Maximized)
	require.NoError(t, h.compositor.Maximize(2))
	got, _ = h.compositor.Get(2)
	assert.False(t, got.Maximized)

	assert.ErrorIs(t, h.compositor.Minimize(9), ErrWindowNotFound)
	assert.ErrorIs(t, h.compositor.Maximize(9), ErrWindowNotFound)
	assert.ErrorIs(t, h.compositor.Close(9), ErrWindowNotFound)
}

type scriptedPrompter struct {
	answer string
	alerts []string
}

func (s *scriptedPrompter) Prompt(context.Context, *app.Window, string, string) (string, error) {
	return s.answer, nil
}

func (s *scriptedPrompter) Alert(_ context.Context, _ *app.Window, message string) error {
	s.alerts = append(s.alerts, message)
	return nil
}

func TestPrompter(t *testing.T) {
	h := newHarness(t)
	h.open(t, "/Applications/Notes.app")
	local := h.apps["Notes"].Compositor

	value, err := local.Prompt(context.Background(), 1, "name?", "joey")
	require.NoError(t, err)
	assert.Equal(t, "joey", value)

	scripted := &scriptedPrompter{answer: "typed"}
	h.compositor.WithPrompter(scripted)

	value, err = local.Prompt(context.Background(), 1, "name?", "joey")
	require.NoError(t, err)
	assert.Equal(t, "typed", value)

	require.NoError(t, local.Alert(context.Background(), 1, "saved"))
	assert.Equal(t, []string{"saved"}, scripted.alerts)
}

func TestDefaultPrompterHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DefaultPrompter{}.Prompt(ctx, nil, "", "")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(DefaultPrompter{}.Alert(ctx, nil, ""), context.Canceled))
}

func TestCompositorMetrics(t *testing.T) {
	h := newHarness(t)
	metrics := monitoring.NewMetrics(nil)
	h.compositor.WithMetrics(metrics)

	h.open(t, "/Applications/Notes.app")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WindowsOpen))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WindowEvents.WithLabelValues(string(EventCreate))))

	require.NoError(t, h.compositor.Close(1))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WindowsOpen))
}

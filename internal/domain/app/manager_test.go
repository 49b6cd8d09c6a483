package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompositor struct {
	closeAllCalls int
}

func (f *fakeCompositor) Open(spec app.WindowSpec) *app.Window       { return &app.Window{Title: spec.Title} }
func (f *fakeCompositor) Close(types.WindowID)                       {}
func (f *fakeCompositor) CloseAll()                                  { f.closeAllCalls++ }
func (f *fakeCompositor) Focus(types.WindowID)                       {}
func (f *fakeCompositor) GetByID(types.WindowID) (*app.Window, bool) { return nil, false }
func (f *fakeCompositor) Update(*app.Window)                         {}
func (f *fakeCompositor) Windows() []*app.Window                     { return nil }
func (f *fakeCompositor) Alert(context.Context, types.WindowID, string) error {
	return nil
}
func (f *fakeCompositor) Prompt(_ context.Context, _ types.WindowID, _, def string) (string, error) {
	return def, nil
}

type fakeWindowCompositor struct {
	manager *app.Manager
	locals  []*fakeCompositor
}

func (f *fakeWindowCompositor) NewLocal() app.Compositor {
	local := &fakeCompositor{}
	f.locals = append(f.locals, local)
	return local
}

func (f *fakeWindowCompositor) RegisterApplicationManager(m *app.Manager) {
	f.manager = m
}

// recorder is an application that records every event it receives
type recorder struct {
	app.Base
	cfg     *app.Config
	events  []types.ApplicationEvent
	onEvent func(r *recorder, event types.ApplicationEvent)
}

func (r *recorder) Config() *app.Config          { return r.cfg }
func (r *recorder) MenuEntries() []app.MenuEntry { return nil }

func (r *recorder) On(event types.ApplicationEvent, window *app.WindowContext) {
	r.events = append(r.events, event)
	if r.onEvent != nil {
		r.onEvent(r, event)
	}
	r.HandleBase(event, window)
}

func (r *recorder) opens() []types.ApplicationOpenEvent {
	var out []types.ApplicationOpenEvent
	for _, e := range r.events {
		if open, ok := e.(types.ApplicationOpenEvent); ok {
			out = append(out, open)
		}
	}
	return out
}

type fixture struct {
	fs         *vfs.FileSystem
	compositor *fakeWindowCompositor
	manager    *app.Manager
	instances  map[string][]*recorder
	hooks      map[string]func(r *recorder, event types.ApplicationEvent)
	events     []app.Event
}

type executable string

func (e executable) ExecutableName() string { return string(e) }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		fs:         vfs.New(),
		compositor: &fakeWindowCompositor{},
		instances:  make(map[string][]*recorder),
		hooks:      make(map[string]func(*recorder, types.ApplicationEvent)),
	}

	for _, bundle := range []string{"Finder.app", "Notes.app", "Preview.app", "A.app", "B.app"} {
		bundle := bundle
		cfg := &app.Config{
			DisplayName: strings.TrimSuffix(bundle, paths.BundleSuffix),
			Path:        paths.Applications,
			AppName:     bundle,
		}
		cfg.Entrypoint = func(c app.Compositor, l *app.LocalManager, apis *system.APIs) app.Application {
			r := &recorder{Base: app.NewBase(c, l, apis), cfg: cfg, onEvent: f.hooks[bundle]}
			f.instances[bundle] = append(f.instances[bundle], r)
			return r
		}
		_, err := f.fs.AddApplication(cfg.InstallPath(), cfg)
		require.NoError(t, err)
	}

	_, err := f.fs.AddTextFile("/Users/joey/doc.txt", "doc")
	require.NoError(t, err)
	_, err = f.fs.AddTextFile("/Users/joey/other.txt", "other")
	require.NoError(t, err)
	_, err = f.fs.AddImage("/Users/joey/cat.png", "/static/cat.png")
	require.NoError(t, err)
	_, err = f.fs.AddDirectory("/Users/joey/My Documents")
	require.NoError(t, err)
	_, err = f.fs.AddHyperlink("/Users/joey/Desktop/Notes", "/Applications/Notes.app")
	require.NoError(t, err)
	_, err = f.fs.AddHyperlink("/Users/joey/Desktop/doc", "/Users/joey/doc.txt")
	require.NoError(t, err)
	_, err = f.fs.AddProgram("/bin/ls", executable("ls"))
	require.NoError(t, err)
	_, err = f.fs.AddNode("/Users/joey/blob.bin", &vfs.Node{Kind: vfs.KindUnknown})
	require.NoError(t, err)

	apis := system.NewAPIs(f.fs, system.NewSoundService(true), system.NewSystemService(false))
	f.manager = app.NewManager(f.compositor, f.fs, apis)
	f.manager.Subscribe(func(e app.Event) { f.events = append(f.events, e) })

	return f
}

func (f *fixture) updates() int {
	n := 0
	for _, e := range f.events {
		if e.Kind == app.EventUpdate {
			n++
		}
	}
	return n
}

func TestNewManagerRegistersWithCompositor(t *testing.T) {
	f := newFixture(t)
	assert.Same(t, f.manager, f.compositor.manager)
}

func TestOpenDistinctPaths(t *testing.T) {
	f := newFixture(t)

	a, err := f.manager.Open("/Applications/A.app")
	require.NoError(t, err)
	b, err := f.manager.Open("/Applications/B.app")
	require.NoError(t, err)

	assert.Equal(t, app.ProcessID(0), a)
	assert.Equal(t, app.ProcessID(1), b)
	assert.Len(t, f.manager.ListApplications(), 2)
	assert.Equal(t, 2, f.updates())

	first := f.instances["A.app"][0]
	assert.Equal(t, []types.ApplicationOpenEvent{{IsFirst: true, Args: ""}}, first.opens())
}

func TestOpenSamePathRoutesToExistingInstance(t *testing.T) {
	f := newFixture(t)

	first, err := f.manager.Open("/Applications/Notes.app doc.txt")
	require.NoError(t, err)
	second, err := f.manager.Open("/Applications/Notes.app other.txt")
	require.NoError(t, err)

	assert.Equal(t, app.ProcessID(0), first)
	assert.Equal(t, app.ProcessID(0), second)
	assert.Len(t, f.manager.ListApplications(), 1)
	require.Len(t, f.instances["Notes.app"], 1)

	assert.Equal(t, []types.ApplicationOpenEvent{
		{IsFirst: true, Args: "doc.txt"},
		{IsFirst: false, Args: "other.txt"},
	}, f.instances["Notes.app"][0].opens())

	// Routing publishes nothing
	assert.Equal(t, 1, f.updates())
}

func TestOpenJoinsArgumentsWithSingleSpaces(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Open(`/Applications/A.app  one   "two three"`)
	require.NoError(t, err)

	assert.Equal(t, "one two three", f.instances["A.app"][0].opens()[0].Args)
}

func TestKillThenReopenAssignsNewID(t *testing.T) {
	f := newFixture(t)

	a, _ := f.manager.Open("/Applications/A.app")
	b, _ := f.manager.Open("/Applications/B.app")
	require.Equal(t, app.ProcessID(0), a)
	require.Equal(t, app.ProcessID(1), b)

	f.manager.Kill(a)

	reopened, err := f.manager.Open("/Applications/A.app")
	require.NoError(t, err)
	assert.Equal(t, app.ProcessID(2), reopened)

	procs := f.manager.ListProcesses()
	require.Len(t, procs, 2)
	assert.Equal(t, app.ProcessID(1), procs[0].ID)
	assert.Equal(t, app.ProcessID(2), procs[1].ID)

	_, ok := f.manager.Lookup(a)
	assert.False(t, ok)
}

func TestKillDeliversQuitAndClosesWindows(t *testing.T) {
	f := newFixture(t)

	pid, _ := f.manager.Open("/Applications/A.app")
	before := f.updates()

	f.manager.Kill(pid)

	instance := f.instances["A.app"][0]
	assert.Equal(t, types.NewApplicationQuitEvent(), instance.events[len(instance.events)-1])
	assert.Equal(t, 1, f.compositor.locals[0].closeAllCalls)
	assert.Equal(t, before+1, f.updates())
	assert.Empty(t, f.manager.ListApplications())
}

func TestKillAbsentIsNoop(t *testing.T) {
	f := newFixture(t)
	pid, _ := f.manager.Open("/Applications/A.app")
	f.manager.Kill(pid)
	before := f.updates()

	assert.NotPanics(t, func() {
		f.manager.Kill(pid)
		f.manager.Kill(42)
		f.manager.Kill(app.NoProcess)
	})
	assert.Equal(t, before, f.updates())
	assert.Equal(t, 1, f.compositor.locals[0].closeAllCalls)
}

func TestKillFromQuitHandlerIsNoop(t *testing.T) {
	f := newFixture(t)
	f.hooks["A.app"] = func(r *recorder, event types.ApplicationEvent) {
		if event.Kind() == types.KindApplicationQuit {
			r.Manager.Quit()
		}
	}

	pid, _ := f.manager.Open("/Applications/A.app")
	before := f.updates()

	f.manager.Kill(pid)

	assert.Equal(t, before+1, f.updates())
	assert.Equal(t, 1, f.compositor.locals[0].closeAllCalls)
}

func TestNestedOpenFromOpenHandler(t *testing.T) {
	f := newFixture(t)

	var nested app.ProcessID = app.NoProcess
	f.hooks["A.app"] = func(r *recorder, event types.ApplicationEvent) {
		if open, ok := event.(types.ApplicationOpenEvent); ok && open.IsFirst {
			nested, _ = r.Manager.Open("/Applications/B.app")
		}
	}

	a, err := f.manager.Open("/Applications/A.app")
	require.NoError(t, err)

	assert.Equal(t, app.ProcessID(0), a)
	assert.Equal(t, app.ProcessID(1), nested)
	assert.Len(t, f.manager.ListApplications(), 2)

	appA, _ := f.manager.Lookup(a)
	assert.Equal(t, "A", appA.Config().DisplayName)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	f.manager.Open("/Applications/A.app")
	f.manager.Open("/Applications/B.app")

	f.manager.Reset()
	assert.Empty(t, f.manager.ListApplications())
	observed := len(f.events)

	// Observers are gone and numbering restarts
	pid, err := f.manager.Open("/Applications/A.app")
	require.NoError(t, err)
	assert.Equal(t, app.ProcessID(0), pid)
	assert.Len(t, f.events, observed)

	for _, local := range f.compositor.locals[:2] {
		assert.Equal(t, 1, local.closeAllCalls)
	}
}

func TestOpenUnknownPath(t *testing.T) {
	f := newFixture(t)

	for _, arg := range []string{"/nowhere", "", "relative.txt", `"/Users/joey/doc.txt`} {
		pid, err := f.manager.Open(arg)
		assert.ErrorIs(t, err, app.ErrFileNotFound, arg)
		assert.Equal(t, app.NoProcess, pid)
	}

	assert.Equal(t, "File not found", app.ErrFileNotFound.Error())
	assert.Empty(t, f.manager.ListApplications())
	assert.Empty(t, f.events)
}

func TestOpenUnsupportedKinds(t *testing.T) {
	f := newFixture(t)

	for _, arg := range []string{"/bin/ls", "/Users/joey/blob.bin"} {
		pid, err := f.manager.Open(arg)
		assert.ErrorIs(t, err, app.ErrNotImplemented, arg)
		assert.Equal(t, app.NoProcess, pid)
	}
	assert.Equal(t, "Not yet implemented", app.ErrNotImplemented.Error())
	assert.Empty(t, f.events)
}

func TestOpenByNodeKind(t *testing.T) {
	tests := []struct {
		name   string
		arg    string
		bundle string
		args   string
	}{
		{"directory", "/Users/joey", "Finder.app", "/Users/joey"},
		{"text file", "/Users/joey/doc.txt", "Notes.app", "/Users/joey/doc.txt"},
		{"image", "/Users/joey/cat.png", "Preview.app", "/Users/joey/cat.png"},
		{"quoted path", `"/Users/joey/My Documents"`, "Finder.app", "/Users/joey/My Documents"},
		{"escaped path", `/Users/joey/My\ Documents`, "Finder.app", "/Users/joey/My Documents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			pid, err := f.manager.Open(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, app.ProcessID(0), pid)

			require.Len(t, f.instances[tt.bundle], 1)
			assert.Equal(t, tt.args, f.instances[tt.bundle][0].opens()[0].Args)

			procs := f.manager.ListProcesses()
			require.Len(t, procs, 1)
			assert.Equal(t, paths.App(tt.bundle), procs[0].Path)
		})
	}
}

func TestOpenHyperlinkBehavesLikeTarget(t *testing.T) {
	f := newFixture(t)

	viaLink, err := f.manager.Open("/Users/joey/Desktop/Notes first")
	require.NoError(t, err)
	direct, err := f.manager.Open("/Applications/Notes.app second")
	require.NoError(t, err)

	assert.Equal(t, viaLink, direct)
	assert.Equal(t, []types.ApplicationOpenEvent{
		{IsFirst: true, Args: "first"},
		{IsFirst: false, Args: "second"},
	}, f.instances["Notes.app"][0].opens())

	// A link to a file opens the file's handler with the file's path
	f.manager.Open("/Users/joey/Desktop/doc")
	assert.Equal(t, "/Users/joey/doc.txt", f.instances["Notes.app"][0].opens()[2].Args)
}

func TestAllWindowsClosedQuits(t *testing.T) {
	f := newFixture(t)
	pid, _ := f.manager.Open("/Applications/A.app")

	instance, ok := f.manager.Lookup(pid)
	require.True(t, ok)
	instance.On(types.NewAllWindowsClosedEvent(), nil)

	_, ok = f.manager.Lookup(pid)
	assert.False(t, ok)
}

func TestTerminate(t *testing.T) {
	f := newFixture(t)
	pid, _ := f.manager.Open("/Applications/A.app")

	assert.True(t, f.manager.Terminate(pid))
	assert.Empty(t, f.manager.ListApplications())
	assert.False(t, f.manager.Terminate(pid))
}

func TestFocusPublishesWithoutStateChange(t *testing.T) {
	f := newFixture(t)
	pid, _ := f.manager.Open("/Applications/A.app")
	instance, _ := f.manager.Lookup(pid)

	f.manager.Focus(instance)

	last := f.events[len(f.events)-1]
	assert.Equal(t, app.EventFocus, last.Kind)
	assert.Same(t, instance, last.Application)
	assert.Len(t, f.manager.ListApplications(), 1)
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	f := newFixture(t)

	var (
		calls []string
		first app.Event
		sub   eventbus.Subscription
	)
	sub = f.manager.Subscribe(func(e app.Event) {
		first = e
		calls = append(calls, "first")
		sub.Unsubscribe()
	})
	f.manager.Subscribe(func(app.Event) { calls = append(calls, "second") })

	f.manager.Open("/Applications/A.app")
	f.manager.Open("/Applications/B.app")

	assert.Equal(t, app.EventUpdate, first.Kind)
	assert.Equal(t, []string{"first", "second", "second"}, calls)
}

func TestListProcesses(t *testing.T) {
	f := newFixture(t)
	f.manager.Open("/Applications/A.app")
	f.manager.Open("/Applications/B.app")

	procs := f.manager.ListProcesses()
	require.Len(t, procs, 2)

	assert.Equal(t, "A", procs[0].Name)
	assert.Equal(t, "/Applications/A.app", procs[0].Path)
	assert.True(t, strings.HasPrefix(procs[0].InstanceID, "proc_"))
	assert.True(t, id.IsValid(strings.TrimPrefix(procs[0].InstanceID, "proc_")))
	assert.NotEqual(t, procs[0].InstanceID, procs[1].InstanceID)
	assert.False(t, procs[1].StartedAt.Before(procs[0].StartedAt))

	instance, _ := f.manager.Lookup(procs[1].ID)
	pid, ok := f.manager.ProcessOf(instance)
	assert.True(t, ok)
	assert.Equal(t, procs[1].ID, pid)
	assert.Equal(t, 2, f.manager.Running())

	summaries := f.manager.Processes()
	require.Len(t, summaries, 2)
	assert.Equal(t, 1, summaries[1].PID)
	assert.Equal(t, "B", summaries[1].Name)
}

func TestManagerMetrics(t *testing.T) {
	f := newFixture(t)
	metrics := monitoring.NewMetrics(nil)
	f.manager.WithMetrics(metrics)

	pid, _ := f.manager.Open("/Applications/A.app")
	f.manager.Open("/Applications/A.app")
	f.manager.Open("/nowhere")
	f.manager.Open("/bin/ls")
	f.manager.Kill(pid)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProcessesSpawned))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProcessesKilled))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ProcessesRunning))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OpenRequests.WithLabelValues(monitoring.OpenSpawned)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OpenRequests.WithLabelValues(monitoring.OpenRouted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OpenRequests.WithLabelValues(monitoring.OpenNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OpenRequests.WithLabelValues(monitoring.OpenNotImplemented)))
}

package desktop

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/about"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/contact"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/finder"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/notes"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/terminal"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/compositor"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

func newDesktop(t *testing.T, mutate ...func(*config.DesktopConfig)) *Desktop {
	t.Helper()
	cfg := config.Default().Desktop
	for _, fn := range mutate {
		fn(&cfg)
	}
	d, err := New(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	return d
}

// silent has no menu of its own
type silent struct {
	app.Base
}

var silentConfig = &app.Config{
	DisplayName: "Silent",
	Path:        paths.Applications,
	AppName:     "Silent.app",
	Entrypoint: func(c app.Compositor, m *app.LocalManager, apis *system.APIs) app.Application {
		return &silent{Base: app.NewBase(c, m, apis)}
	},
}

func (s *silent) Config() *app.Config          { return silentConfig }
func (s *silent) MenuEntries() []app.MenuEntry { return nil }
func (s *silent) On(event types.ApplicationEvent, window *app.WindowContext) {
	if s.HandleBase(event, window) {
		return
	}
	if _, ok := event.(types.ApplicationOpenEvent); ok {
		s.Compositor.Open(app.WindowSpec{Title: "Silent", Application: s})
	}
}

func TestNewSeedsFileSystem(t *testing.T) {
	d := newDesktop(t)

	for _, p := range []string{
		finder.Config.InstallPath(),
		paths.Program("ls"),
		paths.Documents + "/readme.txt",
		paths.Desktop + "/Terminal",
	} {
		assert.True(t, d.FS.Exists(p), p)
	}

	link, err := d.FS.GetNode(paths.Desktop + "/Terminal")
	require.NoError(t, err)
	assert.Equal(t, vfs.KindHyperlink, link.Kind)
	assert.Same(t, d.Manager, d.APIs.Processes)
}

func TestNewLoadsManifestAndMount(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "extra.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
[[files]]
path = "/Users/joey/Documents/extra.txt"
content = "from toml"
`), 0o644))

	host := filepath.Join(dir, "host")
	require.NoError(t, os.MkdirAll(host, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(host, "notes.txt"), []byte("hello from host"), 0o644))

	d := newDesktop(t, func(cfg *config.DesktopConfig) {
		cfg.Manifest = manifest
		cfg.Mount = host
	})

	content, err := d.FS.ReadFile(paths.Documents + "/extra.txt")
	require.NoError(t, err)
	assert.Equal(t, "from toml", content)

	content, err = d.FS.ReadFile("/Volumes/host/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello from host", content)
}

func TestNewFailsOnMissingManifest(t *testing.T) {
	cfg := config.Default().Desktop
	cfg.Manifest = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}

func TestDockListsPinnedBundles(t *testing.T) {
	d := newDesktop(t)

	entries := d.Dock.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Finder", entries[0].Name)
	assert.Equal(t, "Notes", entries[1].Name)
	assert.Equal(t, "Terminal", entries[2].Name)
	for _, e := range entries {
		assert.True(t, e.Pinned)
		assert.False(t, e.Running)
		assert.Equal(t, app.NoProcess, e.PID)
	}
}

func TestDockShowsRunningState(t *testing.T) {
	d := newDesktop(t)

	pid, err := d.Dock.Launch(terminal.Config.InstallPath())
	require.NoError(t, err)
	_, err = d.Manager.Open(about.Config.InstallPath())
	require.NoError(t, err)

	entries := d.Dock.Entries()
	require.Len(t, entries, 4)
	assert.True(t, entries[2].Running)
	assert.Equal(t, pid, entries[2].PID)

	assert.Equal(t, "About", entries[3].Name)
	assert.False(t, entries[3].Pinned)
	assert.True(t, entries[3].Running)
}

func TestDockQuit(t *testing.T) {
	d := newDesktop(t)
	_, err := d.Dock.Launch(terminal.Config.InstallPath())
	require.NoError(t, err)

	assert.True(t, d.Dock.Quit(terminal.Config.InstallPath()))
	assert.Empty(t, d.Manager.ListProcesses())
	assert.False(t, d.Dock.Quit(terminal.Config.InstallPath()))
}

func TestMenuBarFollowsFocus(t *testing.T) {
	d := newDesktop(t)
	assert.Empty(t, d.MenuBar.Entries())

	_, err := d.Manager.Open(about.Config.InstallPath())
	require.NoError(t, err)
	require.NotEmpty(t, d.MenuBar.Entries())
	assert.Equal(t, "About", d.MenuBar.Entries()[0].Name)
	assert.True(t, d.MenuBar.Entries()[0].DisplayOptions.BoldText)

	_, err = d.Manager.Open(terminal.Config.InstallPath())
	require.NoError(t, err)
	assert.Equal(t, "Terminal", d.MenuBar.Entries()[0].Name)

	// Quitting Terminal hands focus back to About
	d.Dock.Quit(terminal.Config.InstallPath())
	focused, ok := d.MenuBar.Focused()
	require.True(t, ok)
	assert.Equal(t, about.Config, focused.Config())
	assert.Equal(t, "About", d.MenuBar.Entries()[0].Name)
}

func TestMenuBarClearsWhenFocusedAppDies(t *testing.T) {
	d := newDesktop(t)
	pid, err := d.Manager.Open(notes.Config.InstallPath())
	require.NoError(t, err)

	var published [][]app.MenuEntry
	d.MenuBar.Subscribe(func(entries []app.MenuEntry) {
		published = append(published, entries)
	})

	d.Manager.Kill(pid)
	assert.Empty(t, d.MenuBar.Entries())
	_, ok := d.MenuBar.Focused()
	assert.False(t, ok)
	require.NotEmpty(t, published)
	assert.Empty(t, published[len(published)-1])
}

func TestMenuBarShowsLoadingPlaceholder(t *testing.T) {
	d := newDesktop(t)
	_, err := d.FS.AddApplication(silentConfig.InstallPath(), silentConfig)
	require.NoError(t, err)

	_, err = d.Manager.Open(silentConfig.InstallPath())
	require.NoError(t, err)
	assert.Equal(t, LoadingMenu, d.MenuBar.Entries())
}

func TestMenuBarInvoke(t *testing.T) {
	d := newDesktop(t)
	_, err := d.Manager.Open(about.Config.InstallPath())
	require.NoError(t, err)

	require.NoError(t, d.MenuBar.Invoke("About", "Contact"))
	assert.Equal(t, "Contact", d.MenuBar.Entries()[0].Name)

	found := false
	for _, p := range d.Manager.ListProcesses() {
		found = found || p.Path == contact.Config.InstallPath()
	}
	assert.True(t, found)

	err = d.MenuBar.Invoke("About", "Missing")
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestResetKeepsDesktopSubscribers(t *testing.T) {
	d := newDesktop(t)

	updates := 0
	d.Subscribe(func(e app.Event) {
		if e.Kind == app.EventUpdate {
			updates++
		}
	})

	_, err := d.Manager.Open(terminal.Config.InstallPath())
	require.NoError(t, err)
	d.Reset()
	assert.Empty(t, d.Manager.ListProcesses())
	assert.Empty(t, d.MenuBar.Entries())

	before := updates
	pid, err := d.Manager.Open(about.Config.InstallPath())
	require.NoError(t, err)
	assert.Equal(t, app.ProcessID(0), pid)
	assert.Greater(t, updates, before)
	assert.Equal(t, "About", d.MenuBar.Entries()[0].Name)
}

func TestShellLaunchesThroughManager(t *testing.T) {
	d := newDesktop(t)
	var out bytes.Buffer
	sh := d.Shell(&out)

	assert.Equal(t, paths.Home, sh.Path())
	sh.Execute("open ~/Documents/readme.txt")
	assert.Empty(t, out.String())

	sh.Execute("ps")
	assert.Contains(t, out.String(), notes.Config.InstallPath())
}

func TestDoRunsOnLoop(t *testing.T) {
	d := newDesktop(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)
	defer d.Stop()

	var pid app.ProcessID
	err := d.Do(ctx, func() error {
		var err error
		pid, err = d.Manager.Open(finder.Config.InstallPath())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, app.ProcessID(0), pid)

	err = d.Do(ctx, func() error {
		_, err := d.Manager.Open("/nowhere")
		return err
	})
	assert.ErrorIs(t, err, app.ErrFileNotFound)
}

func TestDeliverRoutesToWindowOwner(t *testing.T) {
	d := newDesktop(t)
	_, err := d.Manager.Open(about.Config.InstallPath())
	require.NoError(t, err)
	windows := d.Compositor.Windows()
	require.Len(t, windows, 1)

	require.NoError(t, d.Deliver(windows[0].ID, types.NewAboutOpenContactEvent()))
	assert.Equal(t, 2, d.Manager.Running())
	assert.Equal(t, "Contact", d.Manager.ListProcesses()[1].Name)

	err = d.Deliver(999, types.NewAboutOpenContactEvent())
	assert.ErrorIs(t, err, compositor.ErrWindowNotFound)
}

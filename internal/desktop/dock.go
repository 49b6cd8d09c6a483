package desktop

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
)

// DockEntry is one icon in the dock
type DockEntry struct {
	Name    string        `json:"name"`
	Path    string        `json:"path"`
	Icon    app.Icon      `json:"icon"`
	Pinned  bool          `json:"pinned"`
	Running bool          `json:"running"`
	PID     app.ProcessID `json:"pid"`
}

// Dock lists pinned bundles followed by running bundles that are not pinned
type Dock struct {
	manager *app.Manager
	fs      *vfs.FileSystem
}

// NewDock creates a dock over the bundles installed in /Applications
func NewDock(manager *app.Manager, fs *vfs.FileSystem) *Dock {
	return &Dock{manager: manager, fs: fs}
}

// Entries returns the dock icons. PID is app.NoProcess for icons that
// are not running.
func (d *Dock) Entries() []DockEntry {
	running := make(map[string]app.ProcessID)
	for _, p := range d.manager.ListProcesses() {
		running[p.Path] = p.ID
	}

	var entries []DockEntry
	shown := make(map[string]bool)
	for _, cfg := range applications.Pinned(d.installed()) {
		entries = append(entries, d.entry(cfg, true, running))
		shown[cfg.InstallPath()] = true
	}

	for _, application := range d.manager.ListApplications() {
		cfg := application.Config()
		if shown[cfg.InstallPath()] {
			continue
		}
		entries = append(entries, d.entry(cfg, false, running))
		shown[cfg.InstallPath()] = true
	}
	return entries
}

// Launch opens the bundle at path
func (d *Dock) Launch(path string) (app.ProcessID, error) {
	return d.manager.Open(path)
}

// Quit asks the running bundle at path to quit. It reports whether the
// bundle was running.
func (d *Dock) Quit(path string) bool {
	for _, p := range d.manager.ListProcesses() {
		if p.Path == path {
			return d.manager.Terminate(p.ID)
		}
	}
	return false
}

func (d *Dock) entry(cfg *app.Config, pinned bool, running map[string]app.ProcessID) DockEntry {
	pid, ok := running[cfg.InstallPath()]
	if !ok {
		pid = app.NoProcess
	}
	return DockEntry{
		Name:    cfg.DisplayName,
		Path:    cfg.InstallPath(),
		Icon:    cfg.Icon,
		Pinned:  pinned,
		Running: ok,
		PID:     pid,
	}
}

func (d *Dock) installed() []*app.Config {
	nodes, err := d.fs.List(paths.Applications)
	if err != nil {
		return nil
	}

	configs := make([]*app.Config, 0, len(nodes))
	for _, node := range nodes {
		if cfg, ok := node.Executable.(*app.Config); ok && node.Kind == vfs.KindApplication {
			configs = append(configs, cfg)
		}
	}
	return configs
}

// Package finder implements the file browser.
package finder

import (
	"path"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/command"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "finder"

// Config describes the Finder bundle
var Config = &app.Config{
	DisplayName:  "Finder",
	DockPriority: app.Priority(1),
	Path:         paths.Applications,
	AppName:      "Finder.app",
	Icon:         app.Icon{Src: "/icons/finder-app.png", Alt: "Finder"},
	Entrypoint:   New,
}

// Application browses directories, a window per open request. Files
// opened from a window are handed back to the process table; directories
// navigate that window in place.
type Application struct {
	app.Base

	locations map[types.WindowID]string
	pending   string
}

// New is the Finder entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	return &Application{
		Base:      app.NewBase(compositor, manager, apis),
		locations: make(map[types.WindowID]string),
	}
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{DisplayOptions: app.MenuDisplayOptions{BoldText: true}, Name: "Finder"},
		{
			Name: "File",
			Items: []app.MenuItem{
				app.ActionItem("New Finder Window", func() { a.openWindow(paths.Home) }),
			},
		},
		{
			Name: "Go",
			Items: []app.MenuItem{
				app.ActionItem("Home", func() { a.navigateFocused(paths.Home) }),
				app.ActionItem("Desktop", func() { a.navigateFocused(paths.Desktop) }),
				app.ActionItem("Documents", func() { a.navigateFocused(paths.Documents) }),
				app.SpacerItem(),
				app.ActionItem("Applications", func() { a.navigateFocused(paths.Applications) }),
			},
		},
	}
}

// Location returns the directory shown in a window
func (a *Application) Location(id types.WindowID) (string, bool) {
	p, ok := a.locations[id]
	return p, ok
}

func (a *Application) On(event types.ApplicationEvent, window *app.WindowContext) {
	switch e := event.(type) {
	case types.ApplicationOpenEvent:
		dir := e.Args
		if dir == "" {
			dir = paths.Home
		}
		a.openWindow(dir)
	case types.WindowOpenEvent:
		a.locations[e.WindowID] = a.pending
	case types.WindowCloseEvent:
		delete(a.locations, e.WindowID)
	case types.FinderOpenFileEvent:
		a.openFile(e.Path, window)
	default:
		a.HandleBase(event, window)
	}
}

func (a *Application) openWindow(dir string) {
	a.pending = dir
	a.Compositor.Open(app.WindowSpec{
		X:           100,
		Y:           100,
		Width:       800,
		Height:      500,
		Title:       title(dir),
		View:        View,
		Args:        dir,
		Application: a,
	})
	a.pending = ""
}

func (a *Application) openFile(p string, window *app.WindowContext) {
	if window != nil && a.isDirectory(p) {
		a.navigate(window.WindowID, p)
		return
	}
	if _, err := a.Manager.Open(command.Encode(p)); err != nil {
		a.ReportError(window, err)
	}
}

func (a *Application) navigateFocused(dir string) {
	for _, w := range a.Compositor.Windows() {
		if w.Focused {
			a.navigate(w.ID, dir)
			return
		}
	}
	a.openWindow(dir)
}

func (a *Application) navigate(id types.WindowID, dir string) {
	w, ok := a.Compositor.GetByID(id)
	if !ok {
		return
	}

	a.locations[id] = dir
	w.Title = title(dir)
	w.Args = dir
	a.Compositor.Update(w)
	a.SendEventToView(id, types.NewFinderChangePathEvent(dir))
}

func (a *Application) isDirectory(p string) bool {
	if a.APIs == nil || a.APIs.FileSystem == nil {
		return false
	}
	node, err := a.APIs.FileSystem.GetNode(p)
	return err == nil && node.IsDir()
}

func title(dir string) string {
	if dir == paths.Root {
		return dir
	}
	return path.Base(dir)
}

// Package notes implements the text editor.
package notes

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "notes"

// Config describes the Notes bundle
var Config = &app.Config{
	DisplayName:  "Notes",
	DockPriority: app.Priority(2),
	Path:         paths.Applications,
	AppName:      "Notes.app",
	Icon:         app.Icon{Src: "/icons/notes-app.png", Alt: "Notes"},
	Entrypoint:   New,
}

// Application opens a window per request and tells each window when the
// file it shows changes on disk
type Application struct {
	app.Base

	files   map[types.WindowID]string
	pending string
	changes *eventbus.Subscription
}

// New is the Notes entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	a := &Application{
		Base:  app.NewBase(compositor, manager, apis),
		files: make(map[types.WindowID]string),
	}
	if apis != nil && apis.FileSystem != nil {
		sub := apis.FileSystem.Subscribe(a.onChange)
		a.changes = &sub
	}
	return a
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{DisplayOptions: app.MenuDisplayOptions{BoldText: true}, Name: "Notes"},
		{
			Name: "File",
			Items: []app.MenuItem{
				app.ActionItem("New Note", func() { a.openWindow("") }),
			},
		},
	}
}

// File returns the path shown in a window
func (a *Application) File(id types.WindowID) (string, bool) {
	p, ok := a.files[id]
	return p, ok
}

// Save writes content to the file shown in a window
func (a *Application) Save(id types.WindowID, content string) error {
	p, ok := a.files[id]
	if !ok || p == "" {
		return vfs.ErrInvalidPath
	}
	return a.APIs.FileSystem.WriteFile(p, content)
}

func (a *Application) On(event types.ApplicationEvent, window *app.WindowContext) {
	switch e := event.(type) {
	case types.ApplicationOpenEvent:
		a.openWindow(e.Args)
	case types.WindowOpenEvent:
		a.files[e.WindowID] = a.pending
	case types.WindowCloseEvent:
		delete(a.files, e.WindowID)
	case types.ApplicationQuitEvent:
		if a.changes != nil {
			a.changes.Unsubscribe()
			a.changes = nil
		}
	default:
		a.HandleBase(event, window)
	}
}

func (a *Application) openWindow(file string) {
	title := "Notes"
	if file != "" {
		title = file
	}

	a.pending = file
	a.Compositor.Open(app.WindowSpec{
		X:           200,
		Y:           200,
		Width:       400,
		Height:      400,
		Title:       title,
		View:        View,
		Args:        file,
		Application: a,
	})
	a.pending = ""
}

func (a *Application) onChange(change vfs.ChangeEvent) {
	for id, file := range a.files {
		if file != change.Path {
			continue
		}

		switch change.Op {
		case vfs.OpUpdate:
			content, err := a.APIs.FileSystem.ReadFile(file)
			if err != nil {
				continue
			}
			a.SendEventToView(id, types.NewMessageEvent(content))
		case vfs.OpRemove:
			a.SendEventToView(id, types.NewMessageEvent(""))
		}
	}
}

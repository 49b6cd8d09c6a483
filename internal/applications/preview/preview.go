// Package preview implements the image viewer.
package preview

import (
	"path"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "preview"

// Config describes the Preview bundle
var Config = &app.Config{
	DisplayName: "Preview",
	Path:        paths.Applications,
	AppName:     "Preview.app",
	Icon:        app.Icon{Src: "/icons/preview-app.png", Alt: "Preview"},
	Entrypoint:  New,
}

// Application opens one window per image
type Application struct {
	app.Base
}

// New is the Preview entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	return &Application{Base: app.NewBase(compositor, manager, apis)}
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{DisplayOptions: app.MenuDisplayOptions{BoldText: true}, Name: "Preview"},
	}
}

func (a *Application) On(event types.ApplicationEvent, window *app.WindowContext) {
	if a.HandleBase(event, window) {
		return
	}

	e, ok := event.(types.ApplicationOpenEvent)
	if !ok {
		return
	}

	file := e.Args
	title := "Preview"
	if file != "" {
		title = path.Base(file)
	}

	a.Compositor.Open(app.WindowSpec{
		X:           240,
		Y:           120,
		Width:       640,
		Height:      480,
		Title:       title,
		View:        View,
		Args:        file,
		Application: a,
	})
}

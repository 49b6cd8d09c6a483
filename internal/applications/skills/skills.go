// Package skills implements the Skills application.
package skills

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "skills"

// Config describes the Skills bundle. It is not pinned to the dock.
var Config = &app.Config{
	DisplayName: "Skills",
	Path:        paths.Applications,
	AppName:     "Skills.app",
	Icon:        app.Icon{Src: "/icons/skills-icon.png", Alt: "Skills application"},
	Entrypoint:  New,
}

// Application shows a window per open request
type Application struct {
	app.Base
}

// New is the Skills entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	return &Application{Base: app.NewBase(compositor, manager, apis)}
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{DisplayOptions: app.MenuDisplayOptions{BoldText: true}, Name: "Skills"},
	}
}

func (a *Application) On(event types.ApplicationEvent, window *app.WindowContext) {
	if a.HandleBase(event, window) {
		return
	}

	if e, ok := event.(types.ApplicationOpenEvent); ok {
		// 700 wide, centered on a 1280 wide screen
		a.Compositor.Open(app.WindowSpec{
			X:           290,
			Y:           95,
			Width:       700,
			Height:      600,
			Title:       "Skills",
			View:        View,
			Args:        e.Args,
			Application: a,
		})
	}
}

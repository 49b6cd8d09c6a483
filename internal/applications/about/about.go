// Package about implements the About application.
package about

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/contact"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "about"

// Config describes the About bundle
var Config = &app.Config{
	DisplayName: "About",
	Path:        paths.Applications,
	AppName:     "About.app",
	Icon:        app.Icon{Src: "/icons/about-app.png", Alt: "About"},
	Entrypoint:  New,
}

// Application shows a window per open request and launches Contact on demand
type Application struct {
	app.Base
}

// New is the About entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	return &Application{Base: app.NewBase(compositor, manager, apis)}
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{
			DisplayOptions: app.MenuDisplayOptions{BoldText: true},
			Name:           "About",
			Items: []app.MenuItem{
				app.ActionItem("Contact", func() { a.openContact(nil) }),
			},
		},
	}
}

func (a *Application) On(event types.ApplicationEvent, window *app.WindowContext) {
	if a.HandleBase(event, window) {
		return
	}

	switch e := event.(type) {
	case types.AboutOpenContactEvent:
		a.openContact(window)
	case types.ApplicationOpenEvent:
		// Three quarters of a 1280x800 screen, centered horizontally
		a.Compositor.Open(app.WindowSpec{
			X:           160,
			Y:           100,
			Width:       960,
			Height:      500,
			Title:       "About",
			View:        View,
			Args:        e.Args,
			Application: a,
		})
	}
}

func (a *Application) openContact(window *app.WindowContext) {
	if _, err := a.Manager.Open(contact.Config.InstallPath()); err != nil {
		a.ReportError(window, err)
	}
}

// Package contact implements the Contact application.
package contact

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "contact"

// Config describes the Contact bundle
var Config = &app.Config{
	DisplayName: "Contact",
	Path:        paths.Applications,
	AppName:     "Contact.app",
	Icon:        app.Icon{Src: "/icons/contact-app.png", Alt: "Contact"},
	Entrypoint:  New,
}

// Application keeps a single window. Reopening focuses it.
type Application struct {
	app.Base

	current *app.Window
}

// New is the Contact entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	return &Application{Base: app.NewBase(compositor, manager, apis)}
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{DisplayOptions: app.MenuDisplayOptions{BoldText: true}, Name: "Contact"},
	}
}

// Window returns the open window, if any
func (a *Application) Window() (*app.Window, bool) {
	return a.current, a.current != nil
}

func (a *Application) On(event types.ApplicationEvent, window *app.WindowContext) {
	switch e := event.(type) {
	case types.ApplicationOpenEvent:
		if a.current != nil {
			a.Compositor.Focus(a.current.ID)
			return
		}
		a.current = a.Compositor.Open(app.WindowSpec{
			X:           256,
			Y:           90,
			Width:       768,
			Height:      600,
			Title:       "Contact",
			View:        View,
			Args:        e.Args,
			Application: a,
		})
	case types.WindowCloseEvent:
		if a.current != nil && a.current.ID == e.WindowID {
			a.current = nil
		}
	case types.ApplicationQuitEvent:
		a.current = nil
	default:
		a.HandleBase(event, window)
	}
}

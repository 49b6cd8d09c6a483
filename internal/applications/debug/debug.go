// Package debug implements the Debug application, a window of process
// and sound controls for development builds.
package debug

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "debug"

// DisabledMessage is shown when debug tooling is switched off
const DisabledMessage = "Debug tooling is disabled"

// Config describes the Debug bundle
var Config = &app.Config{
	DisplayName: "Debug",
	Path:        paths.Applications,
	AppName:     "Debug.app",
	Icon:        app.Icon{Src: "/icons/debug-app.png", Alt: "Debug"},
	Entrypoint:  New,
}

// Application opens a window per request when debugging is enabled
type Application struct {
	app.Base
}

// New is the Debug entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	return &Application{Base: app.NewBase(compositor, manager, apis)}
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{DisplayOptions: app.MenuDisplayOptions{BoldText: true}, Name: "Debug"},
		{
			Name: "Tools",
			Items: []app.MenuItem{
				app.ActionItem("Kill Other Processes", a.killOthers),
				app.SpacerItem(),
				app.ActionItem("Toggle Sound", a.toggleSound),
			},
		},
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

	w := a.Compositor.Open(app.WindowSpec{
		X:           50,
		Y:           50,
		Width:       500,
		Height:      400,
		Title:       "Debug",
		View:        View,
		Args:        e.Args,
		Application: a,
	})

	if !a.enabled() {
		a.Compositor.Alert(context.Background(), w.ID, DisabledMessage)
		a.Compositor.Close(w.ID)
	}
}

func (a *Application) enabled() bool {
	return a.APIs != nil && a.APIs.System != nil && a.APIs.System.IsDebug()
}

func (a *Application) killOthers() {
	if a.APIs == nil || a.APIs.Processes == nil {
		return
	}

	self := int(a.Manager.ProcessID())
	for _, p := range a.APIs.Processes.Processes() {
		if p.PID != self {
			a.Manager.Kill(app.ProcessID(p.PID))
		}
	}
}

func (a *Application) toggleSound() {
	if a.APIs == nil || a.APIs.Sound == nil {
		return
	}

	if a.APIs.Sound.IsEnabled() {
		a.APIs.Sound.Disable()
	} else {
		a.APIs.Sound.Enable()
	}
}

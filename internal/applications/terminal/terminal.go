// Package terminal implements the Terminal application. Every window runs
// its own shell session; output reaches the window's view as message
// events.
package terminal

import (
	"strings"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// View names the front-end component rendering the window
const View = "terminal"

// Config describes the Terminal bundle
var Config = &app.Config{
	DisplayName:  "Terminal",
	DockPriority: app.Priority(3),
	Path:         paths.Applications,
	AppName:      "Terminal.app",
	Icon:         app.Icon{Src: "/icons/terminal-app.png", Alt: "Terminal"},
	Entrypoint:   New,
}

// Application owns one shell session per window
type Application struct {
	app.Base

	sessions map[types.WindowID]*shell.Shell
}

// New is the Terminal entrypoint
func New(compositor app.Compositor, manager *app.LocalManager, apis *system.APIs) app.Application {
	return &Application{
		Base:     app.NewBase(compositor, manager, apis),
		sessions: make(map[types.WindowID]*shell.Shell),
	}
}

func (a *Application) Config() *app.Config {
	return Config
}

func (a *Application) MenuEntries() []app.MenuEntry {
	return []app.MenuEntry{
		{DisplayOptions: app.MenuDisplayOptions{BoldText: true}, Name: "Terminal"},
		{
			Name: "Shell",
			Items: []app.MenuItem{
				app.ActionItem("New Window", a.openWindow),
			},
		},
	}
}

// Session returns the shell running in a window
func (a *Application) Session(id types.WindowID) (*shell.Shell, bool) {
	s, ok := a.sessions[id]
	return s, ok
}

func (a *Application) On(event types.ApplicationEvent, window *app.WindowContext) {
	switch e := event.(type) {
	case types.ApplicationOpenEvent:
		a.openWindow()
	case types.WindowOpenEvent:
		a.sessions[e.WindowID] = shell.New(a.APIs, a.Manager, &viewWriter{app: a, window: e.WindowID})
	case types.WindowCloseEvent:
		delete(a.sessions, e.WindowID)
	case types.TerminalCommandEvent:
		if window != nil {
			a.execute(window.WindowID, e.Line)
		}
	default:
		a.HandleBase(event, window)
	}
}

func (a *Application) openWindow() {
	a.Compositor.Open(app.WindowSpec{
		X:           150,
		Y:           150,
		Width:       600,
		Height:      450,
		Title:       "Terminal",
		View:        View,
		Application: a,
	})
}

func (a *Application) execute(id types.WindowID, line string) {
	session, ok := a.sessions[id]
	if !ok {
		return
	}

	session.WriteResponse(session.Prompt() + line)
	if strings.TrimSpace(line) == "exit" {
		a.Compositor.Close(id)
		return
	}
	session.Execute(line)
}

// viewWriter forwards shell output to one window, a message per line
type viewWriter struct {
	app    *Application
	window types.WindowID
}

func (w *viewWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		w.app.SendEventToView(w.window, types.NewMessageEvent(line))
	}
	return len(p), nil
}

package desktop

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
)

// ErrMenuItemNotFound is returned when invoking a missing menu action
var ErrMenuItemNotFound = errors.New("menu item not found")

// LoadingMenu stands in for an application that has no menu yet
var LoadingMenu = []app.MenuEntry{{Name: "Loading"}}

// MenuBar tracks the menu of the focused application
type MenuBar struct {
	manager *app.Manager
	focused app.Application
	entries []app.MenuEntry

	changes      eventbus.Bus[[]app.MenuEntry]
	subscription eventbus.Subscription
}

// NewMenuBar creates a menu bar following manager's focus events
func NewMenuBar(manager *app.Manager) *MenuBar {
	mb := &MenuBar{manager: manager}
	mb.attach()
	return mb
}

// attach subscribes to the manager, which forgets its subscribers on reset
func (mb *MenuBar) attach() {
	mb.subscription = mb.manager.Subscribe(mb.onManagerEvent)
}

// Close stops following the manager
func (mb *MenuBar) Close() {
	mb.subscription.Unsubscribe()
}

// Focused returns the application whose menu is shown
func (mb *MenuBar) Focused() (app.Application, bool) {
	return mb.focused, mb.focused != nil
}

// Entries returns the current menu. It is empty when nothing has focus.
func (mb *MenuBar) Entries() []app.MenuEntry {
	return mb.entries
}

// Subscribe registers a listener for menu changes
func (mb *MenuBar) Subscribe(listener eventbus.Listener[[]app.MenuEntry]) eventbus.Subscription {
	return mb.changes.Subscribe(listener)
}

// Listeners returns the number of menu subscribers
func (mb *MenuBar) Listeners() int {
	return mb.changes.Len()
}

// Invoke runs the action named item in the menu named menu
func (mb *MenuBar) Invoke(menu, item string) error {
	for _, entry := range mb.entries {
		if entry.Name != menu {
			continue
		}
		for _, candidate := range entry.Items {
			if candidate.Kind == app.MenuItemAction && candidate.Value == item && candidate.Action != nil {
				candidate.Action()
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s > %s", ErrMenuItemNotFound, menu, item)
}

func (mb *MenuBar) onManagerEvent(event app.Event) {
	switch event.Kind {
	case app.EventFocus:
		mb.focused = event.Application
	case app.EventUpdate:
		if mb.focused == nil {
			return
		}
		if _, running := mb.manager.ProcessOf(mb.focused); !running {
			mb.focused = nil
		}
	}
	mb.rebuild()
}

func (mb *MenuBar) rebuild() {
	switch {
	case mb.focused == nil:
		mb.entries = nil
	default:
		mb.entries = mb.focused.MenuEntries()
		if len(mb.entries) == 0 {
			mb.entries = LoadingMenu
		}
	}
	mb.changes.Publish(mb.entries)
}

package app

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Entrypoint constructs an application instance
type Entrypoint func(compositor Compositor, manager *LocalManager, apis *system.APIs) Application

// Icon describes the dock and finder icon of an application
type Icon struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Config is the static descriptor of an application bundle
type Config struct {
	DisplayName  string
	DockPriority *int // nil when not pinned to the dock
	Path         string
	AppName      string
	Icon         Icon
	Entrypoint   Entrypoint
}

// ExecutableName returns the bundle name
func (c *Config) ExecutableName() string {
	return c.AppName
}

// InstallPath returns the absolute path of the bundle
func (c *Config) InstallPath() string {
	dir := c.Path
	if dir == "" {
		dir = paths.Applications
	}
	return dir + "/" + c.AppName
}

// Priority returns a dock priority
func Priority(p int) *int {
	return &p
}

// MenuItemKind tags a MenuItem
type MenuItemKind string

const (
	MenuItemAction MenuItemKind = "action"
	MenuItemSpacer MenuItemKind = "spacer"
)

// MenuItem is a clickable action or a separator
type MenuItem struct {
	Kind   MenuItemKind `json:"kind"`
	Value  string       `json:"value,omitempty"`
	Action func()       `json:"-"`
}

// ActionItem creates a clickable menu item
func ActionItem(value string, action func()) MenuItem {
	return MenuItem{Kind: MenuItemAction, Value: value, Action: action}
}

// SpacerItem creates a separator
func SpacerItem() MenuItem {
	return MenuItem{Kind: MenuItemSpacer}
}

// MenuDisplayOptions controls how a menu title renders
type MenuDisplayOptions struct {
	BoldText bool `json:"bold_text,omitempty"`
}

// MenuEntry is one top-level menu of the menu bar
type MenuEntry struct {
	DisplayOptions MenuDisplayOptions `json:"display_options"`
	Name           string             `json:"name"`
	Items          []MenuItem         `json:"items"`
}

// Application is implemented by every running program
type Application interface {
	// Config returns the static descriptor of the application
	Config() *Config
	// MenuEntries builds the current menu; called on every focus change
	MenuEntries() []MenuEntry
	// On handles lifecycle and window events. window is nil for events not
	// tied to a window. Unknown kinds are ignored.
	On(event types.ApplicationEvent, window *WindowContext)

	SubscribeToWindowEvents(id types.WindowID, listener eventbus.Listener[types.ViewEvent]) eventbus.Subscription
	UnsubscribeFromWindowEvents(id types.WindowID, listener eventbus.ListenerID)
	SendEventToView(id types.WindowID, event types.ViewEvent)
	SendEventToAllViews(event types.ViewEvent)
}

// Base carries the collaborators every application needs and implements the
// window-event part of the Application contract. Concrete applications embed
// it and implement Config, MenuEntries and On.
type Base struct {
	Compositor Compositor
	Manager    *LocalManager
	APIs       *system.APIs

	views *eventbus.Keyed[types.WindowID, types.ViewEvent]
}

// NewBase creates the shared application state
func NewBase(compositor Compositor, manager *LocalManager, apis *system.APIs) Base {
	return Base{
		Compositor: compositor,
		Manager:    manager,
		APIs:       apis,
		views:      eventbus.NewKeyed[types.WindowID, types.ViewEvent](),
	}
}

// HandleBase applies the behaviour shared by all applications: the instance
// quits when its last window closes or when it is asked to. It reports
// whether the event was consumed.
func (b *Base) HandleBase(event types.ApplicationEvent, _ *WindowContext) bool {
	switch event.Kind() {
	case types.KindAllWindowsClosed, types.KindApplicationKill:
		if b.Manager != nil {
			b.Manager.Quit()
		}
		return true
	default:
		return false
	}
}

// SubscribeToWindowEvents registers a view listener for one window
func (b *Base) SubscribeToWindowEvents(id types.WindowID, listener eventbus.Listener[types.ViewEvent]) eventbus.Subscription {
	return b.viewBus().Subscribe(id, listener)
}

// UnsubscribeFromWindowEvents removes exactly one view listener
func (b *Base) UnsubscribeFromWindowEvents(id types.WindowID, listener eventbus.ListenerID) {
	b.viewBus().Unsubscribe(id, listener)
}

// SendEventToView delivers event to the listeners of one window
func (b *Base) SendEventToView(id types.WindowID, event types.ViewEvent) {
	b.viewBus().PublishTo(id, event)
}

// SendEventToAllViews delivers event to the listeners of every window
func (b *Base) SendEventToAllViews(event types.ViewEvent) {
	b.viewBus().Broadcast(event)
}

// ReportError shows err as a message in window's view, or in every view of
// the application when window is nil. A nil err is ignored.
func (b *Base) ReportError(window *WindowContext, err error) {
	if err == nil {
		return
	}
	event := types.NewMessageEvent(err.Error())
	if window != nil {
		b.SendEventToView(window.WindowID, event)
		return
	}
	b.SendEventToAllViews(event)
}

// ViewListeners returns the number of listeners registered for a window
func (b *Base) ViewListeners(id types.WindowID) int {
	return b.viewBus().Len(id)
}

func (b *Base) viewBus() *eventbus.Keyed[types.WindowID, types.ViewEvent] {
	if b.views == nil {
		b.views = eventbus.NewKeyed[types.WindowID, types.ViewEvent]()
	}
	return b.views
}

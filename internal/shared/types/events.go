package types

// WindowID identifies a compositor window. IDs are unique for the lifetime of
// a compositor.
type WindowID int

// EventKind tags an ApplicationEvent
type EventKind string

const (
	KindApplicationOpen  EventKind = "application-open"
	KindApplicationQuit  EventKind = "application-quit"
	KindApplicationKill  EventKind = "application-kill"
	KindWindowOpen       EventKind = "window-open"
	KindWindowClose      EventKind = "window-close"
	KindAllWindowsClosed EventKind = "all-windows-closed"
	KindFinderOpenFile   EventKind = "finder-open-file-event"
	KindAboutOpenContact EventKind = "about-open-contact-event"
	KindTerminalCommand  EventKind = "terminal-command-event"
)

// ApplicationEvent is delivered to a running application through its On method.
// Values are immutable once constructed.
type ApplicationEvent interface {
	Kind() EventKind
}

// ApplicationOpenEvent is sent on every open request routed to an instance.
// IsFirst is true only for the request that created the instance.
type ApplicationOpenEvent struct {
	IsFirst bool   `json:"is_first"`
	Args    string `json:"args"`
}

// ApplicationQuitEvent is sent once an instance has been removed from the process table
type ApplicationQuitEvent struct{}

// ApplicationKillEvent asks an instance to quit itself
type ApplicationKillEvent struct{}

// WindowOpenEvent reports that one of the instance's windows was created
type WindowOpenEvent struct {
	WindowID WindowID `json:"window_id"`
}

// WindowCloseEvent reports that one of the instance's windows was closed
type WindowCloseEvent struct {
	WindowID WindowID `json:"window_id"`
}

// AllWindowsClosedEvent reports that the instance's last window was closed
type AllWindowsClosedEvent struct{}

// FinderOpenFileEvent asks the file browser to open a path
type FinderOpenFileEvent struct {
	Path string `json:"path"`
}

// AboutOpenContactEvent asks the About application to launch Contact
type AboutOpenContactEvent struct{}

// TerminalCommandEvent carries one line typed into a terminal window
type TerminalCommandEvent struct {
	Line string `json:"line"`
}

func (ApplicationOpenEvent) Kind() EventKind  { return KindApplicationOpen }
func (ApplicationQuitEvent) Kind() EventKind  { return KindApplicationQuit }
func (ApplicationKillEvent) Kind() EventKind  { return KindApplicationKill }
func (WindowOpenEvent) Kind() EventKind       { return KindWindowOpen }
func (WindowCloseEvent) Kind() EventKind      { return KindWindowClose }
func (AllWindowsClosedEvent) Kind() EventKind { return KindAllWindowsClosed }
func (FinderOpenFileEvent) Kind() EventKind   { return KindFinderOpenFile }
func (AboutOpenContactEvent) Kind() EventKind { return KindAboutOpenContact }
func (TerminalCommandEvent) Kind() EventKind  { return KindTerminalCommand }

// NewApplicationOpenEvent creates an application-open event
func NewApplicationOpenEvent(isFirst bool, args string) ApplicationOpenEvent {
	return ApplicationOpenEvent{IsFirst: isFirst, Args: args}
}

// NewApplicationQuitEvent creates an application-quit event
func NewApplicationQuitEvent() ApplicationQuitEvent {
	return ApplicationQuitEvent{}
}

// NewApplicationKillEvent creates an application-kill event
func NewApplicationKillEvent() ApplicationKillEvent {
	return ApplicationKillEvent{}
}

// NewWindowOpenEvent creates a window-open event
func NewWindowOpenEvent(windowID WindowID) WindowOpenEvent {
	return WindowOpenEvent{WindowID: windowID}
}

// NewWindowCloseEvent creates a window-close event
func NewWindowCloseEvent(windowID WindowID) WindowCloseEvent {
	return WindowCloseEvent{WindowID: windowID}
}

// NewAllWindowsClosedEvent creates an all-windows-closed event
func NewAllWindowsClosedEvent() AllWindowsClosedEvent {
	return AllWindowsClosedEvent{}
}

// NewFinderOpenFileEvent creates a finder-open-file event
func NewFinderOpenFileEvent(path string) FinderOpenFileEvent {
	return FinderOpenFileEvent{Path: path}
}

// NewAboutOpenContactEvent creates an about-open-contact event
func NewAboutOpenContactEvent() AboutOpenContactEvent {
	return AboutOpenContactEvent{}
}

// NewTerminalCommandEvent creates a terminal-command event
func NewTerminalCommandEvent(line string) TerminalCommandEvent {
	return TerminalCommandEvent{Line: line}
}

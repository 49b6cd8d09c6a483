package app

// EventKind tags a manager Event
type EventKind string

const (
	EventUpdate EventKind = "update"
	EventFocus  EventKind = "focus"
)

// Event is published to manager subscribers. Application is set for focus
// events only.
type Event struct {
	Kind        EventKind
	Application Application
}

// UpdateEvent reports a change to the process table
func UpdateEvent() Event {
	return Event{Kind: EventUpdate}
}

// FocusEvent reports that an application's window received focus
func FocusEvent(application Application) Event {
	return Event{Kind: EventFocus, Application: application}
}

package types

// ViewEventKind tags a ViewEvent
type ViewEventKind string

const (
	KindMessage          ViewEventKind = "message"
	KindFinderChangePath ViewEventKind = "finder-change-path"
)

// ViewEvent is pushed from an application to one or all of its window views
type ViewEvent interface {
	ViewKind() ViewEventKind
}

// MessageEvent carries free-form text to a view (terminal output, file reload notices)
type MessageEvent struct {
	Message string `json:"message"`
}

// FinderChangePathEvent tells a file browser view to show another directory
type FinderChangePathEvent struct {
	Path string `json:"path"`
}

func (MessageEvent) ViewKind() ViewEventKind          { return KindMessage }
func (FinderChangePathEvent) ViewKind() ViewEventKind { return KindFinderChangePath }

// NewMessageEvent creates a message view event
func NewMessageEvent(message string) MessageEvent {
	return MessageEvent{Message: message}
}

// NewFinderChangePathEvent creates a finder-change-path view event
func NewFinderChangePathEvent(path string) FinderChangePathEvent {
	return FinderChangePathEvent{Path: path}
}

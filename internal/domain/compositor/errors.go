package compositor

import "errors"

// ErrWindowNotFound is returned when a window id is unknown to the caller
var ErrWindowNotFound = errors.New("window not found")

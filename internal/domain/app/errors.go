package app

import "errors"

var (
	// ErrFileNotFound is returned when the launch path does not resolve
	ErrFileNotFound = errors.New("File not found")
	// ErrNotImplemented is returned for node kinds that cannot be opened
	ErrNotImplemented = errors.New("Not yet implemented")
)

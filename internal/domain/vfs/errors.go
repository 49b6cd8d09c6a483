package vfs

import "errors"

var (
	// ErrNotFound is returned when no node exists at a path
	ErrNotFound = errors.New("no such file or directory")
	// ErrNotDirectory is returned when a directory was required
	ErrNotDirectory = errors.New("not a directory")
	// ErrExists is returned when a node already occupies a path
	ErrExists = errors.New("file exists")
	// ErrNotTextFile is returned when reading or writing a non-text node
	ErrNotTextFile = errors.New("not a text file")
	// ErrInvalidPath is returned for paths that cannot name a node
	ErrInvalidPath = errors.New("invalid path")
	// ErrUnsupportedManifest is returned for manifest formats other than YAML and TOML
	ErrUnsupportedManifest = errors.New("unsupported manifest format")
)

// Package vfs provides the in-memory virtual file system of the desktop.
//
// The tree holds directories, text files, images, hyperlinks, installed
// application bundles and terminal programs. The application manager
// resolves launch arguments against it and dispatches on the node kind.
//
// Key Components:
//   - FileSystem: Node tree with lookup, mutation and glob search
//   - Node: Tagged node, see Kind
//   - Manifest: Declarative YAML/TOML seed for the tree
//   - Mount: Imports a host directory, classifying files by content
//
// Example Usage:
//
//	fs := vfs.New()
//	if _, err := fs.AddTextFile("/Users/joey/readme.txt", "hello"); err != nil {
//	    return err
//	}
//	node, err := fs.GetNode("/Users/joey/readme.txt")
//	if errors.Is(err, vfs.ErrNotFound) {
//	    // ...
//	}
//
// FileSystem is safe for concurrent use. Change events are delivered
// synchronously after the mutation, outside of the tree lock.
package vfs

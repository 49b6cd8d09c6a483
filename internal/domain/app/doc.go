// Package app provides the process table of the desktop and the contract
// every application implements.
//
// The Manager resolves launch arguments against the virtual file system,
// keeps at most one instance per bundle path, assigns process ids and
// publishes lifecycle changes. Each instance receives a scoped compositor and
// a LocalManager through which it can open other programs or quit itself.
//
// Key Components:
//   - Manager: Process table (Open, Kill, Reset, Focus, listings)
//   - LocalManager: Per-process capability handed to entrypoints
//   - Application: Contract implemented by concrete applications
//   - Base: Shared window-event plumbing and default event handling
//   - Compositor/WindowCompositor: Narrow window surface used by the kernel
//
// Example Usage:
//
//	manager := app.NewManager(compositor, fs, apis).WithLogger(logger)
//	pid, err := manager.Open("/Applications/Notes.app /Users/joey/readme.txt")
//	if err != nil {
//	    return err
//	}
//	manager.Kill(pid)
//
// The kernel is single-threaded: the Manager, application instances and the
// compositor must be driven from one goroutine. Event delivery is
// synchronous and re-entrant, so handlers may call back into the Manager.
// Concurrent front-ends serialize access through desktop.Loop.
package app

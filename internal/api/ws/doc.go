// Package ws streams desktop state to window views over WebSocket.
//
// On connect a client receives a system frame with its id, followed by a
// snapshot of the process table, the window stack and the menu bar. After
// that every change is pushed as it happens:
//   - processes: the process table after each update
//   - window: a compositor event (create_window, focus_window, ...)
//   - menu: the menu of the focused application
//   - view: an application message for one window
//
// Message Types (Client → Server):
//   - ping: keep-alive, answered with pong
//   - open: launch {"path": "/Applications/Terminal.app"}
//   - window_event: {"window_id": 3, "kind": "terminal-command-event", "line": "ls"}
//
// Frames for one connection are queued and written by a single goroutine.
// A client that falls behind loses frames rather than stalling the kernel.
//
// Example Usage:
//
//	handler := ws.NewHandler(desktop, logger)
//	router.GET("/ws", handler.HandleConnection)
package ws

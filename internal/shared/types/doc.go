// Package types provides the event values shared across the desktop kernel.
//
// Everything here is plain data: events are constructed through the New*
// factory functions and never mutated afterwards.
//
// Core Types:
//   - ApplicationEvent: lifecycle and application-specific events delivered
//     to a running application (application-open, application-quit,
//     application-kill, window-open, window-close, all-windows-closed, ...)
//   - ViewEvent: messages pushed from an application to its window views
//   - WindowID: compositor window identifier
//   - WindowEventRequest: front-end request for a view-raised event, decoded
//     by Event into an ApplicationEvent
//   - WSMessage: client frame on the websocket event stream
//
// Example Usage:
//
//	application.On(types.NewApplicationOpenEvent(true, "notes.txt"), nil)
//	application.SendEventToView(windowID, types.NewMessageEvent("saved"))
package types

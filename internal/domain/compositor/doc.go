// Package compositor provides the in-memory window compositor.
//
// The compositor owns every window of the desktop, their stacking order and
// focus. Each application instance receives a Local handle that only sees
// the windows it opened.
//
// Key Components:
//   - Compositor: Global window table, z-order, focus and event bus
//   - Local: Scoped compositor handed to one application instance
//   - Prompter: Pluggable prompt and alert dialogs
//   - Event: Window events published to front-ends
//
// Lifecycle:
//   - Local.Open focuses the new window and delivers window-open
//   - Close delivers window-close, then all-windows-closed when the
//     instance has no windows left
//   - CloseAll destroys windows without notifying the instance
//   - Focus reports the owning application to the registered manager
//
// Example Usage:
//
//	c := compositor.New().WithLogger(logger)
//	manager := app.NewManager(c, fs, apis)
//	c.Subscribe(func(e compositor.Event) { ... })
package compositor

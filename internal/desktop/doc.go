// Package desktop assembles a running desktop from its parts.
//
// A Desktop owns the virtual file system, the window compositor, the
// system services and the process table, plus the two shell models built
// on top of the process table:
//   - MenuBar: the menu of the application whose window has focus
//   - Dock: pinned bundles ordered by dock priority, with running state
//
// The kernel is single threaded. Front-ends that run on other goroutines
// (HTTP handlers, websocket streams, the interactive shell) submit work
// through the Loop, which executes tasks one at a time:
//
//	d, err := desktop.New(ctx, cfg.Desktop, logger, metrics)
//	go d.Run(ctx)
//	err = d.Do(ctx, func() error {
//	    _, err := d.Manager.Open("/Applications/Terminal.app")
//	    return err
//	})
package desktop

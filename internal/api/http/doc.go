/*
Package http exposes the desktop over a JSON control surface.

Handlers never touch the kernel directly. Every read and mutation is
submitted to the desktop's control loop, so requests are serialized with
the websocket stream and the interactive shell.

# Routes

	GET    /health                  process and window counts
	GET    /processes               process table
	POST   /processes               open {"argument": "/Applications/Notes.app /Users/joey/todo.txt"}
	DELETE /processes/:pid          kill
	POST   /processes/:pid/terminate
	POST   /reset
	GET    /menu                    menu of the focused application
	POST   /menu/invoke             {"menu": "File", "item": "New Note"}
	GET    /dock
	GET    /windows
	POST   /windows/:id/focus|minimize|maximize
	POST   /windows/:id/events      {"kind": "terminal-command-event", "line": "ls"}
	DELETE /windows/:id
	GET    /files?path=/Users/joey
	POST   /logs                    view log batches
*/
package http

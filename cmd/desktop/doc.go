// Package main is the entry point for the J-OS desktop service.
//
// The desktop kernel owns a virtual file system, a window compositor and a
// process table. This binary exposes it three ways:
//
//	# Serve the REST API and websocket stream
//	./desktop serve --port 8000
//
//	# Interactive terminal session against a fresh desktop
//	./desktop shell
//
//	# Open paths and print the resulting process table
//	./desktop open ~/Documents/readme.txt /Applications/Terminal.app
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main

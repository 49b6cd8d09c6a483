// Package server is the composition root of the desktop service.
//
// NewServer builds the logger, metrics, tracer and desktop, then mounts
// the REST handlers, the websocket stream and the Prometheus endpoint on
// a gin router with recovery, tracing, metrics, CORS and rate limiting.
//
// Run drives the desktop's control loop and the HTTP listener together
// and returns once its context is cancelled.
package server

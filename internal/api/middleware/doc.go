// Package middleware provides the gin middleware stack of the HTTP control
// surface: CORS for browser front-ends and per-IP rate limiting.
package middleware

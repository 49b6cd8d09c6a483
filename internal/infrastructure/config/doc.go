// Package config provides 12-factor configuration management for the desktop.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP control surface settings (port, host)
//   - Desktop: filesystem manifest, host mount, home directory, debug and sound flags
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Metrics: Prometheus exposition
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Serving desktop on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - DESKTOP_MANIFEST, DESKTOP_HOME, DESKTOP_MOUNT, DESKTOP_MOUNT_TARGET,
//     DESKTOP_DEBUG, DESKTOP_SOUND, DESKTOP_LOOP_BUFFER
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - METRICS_ENABLED
package config

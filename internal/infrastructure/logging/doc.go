// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs go to stderr by default so the interactive shell can own stdout.
// Kernel components take an optional *Logger and fall back to NewNop, which
// keeps tests quiet.
//
// Example Usage:
//
//	base, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	logger := base.Named("manager")
//	logger.Info("Process started", zap.Int("pid", 0))
//	logger.ForProcess(0, "proc_01H...", "/Applications/Notes.app").Debug("Open routed")
package logging

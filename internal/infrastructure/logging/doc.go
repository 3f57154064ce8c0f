// Package logging provides structured logging using uber/zap.
//
// Two console modes are available:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// When a file is configured every entry is also written to it as JSON, and
// the file is rotated by size and age.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	defer logger.Close()
//	logger.Info("Server starting", zap.String("port", "8000"))
package logging

// Package config provides 12-factor configuration for the desktop backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP listener, allowed origins, compression
//   - Logging: level, format and optional rotated log file
//   - RateLimit: per-IP rate limiting
//   - Storage: record store driver behind the virtual file system
//   - KV: key/value driver for the spreadsheet and notepad slots
//   - Desktop: desktop size and window transition delays
//   - Apps: directory of extra app manifests
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
package config

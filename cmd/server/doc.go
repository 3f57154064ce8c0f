// Package main is the entry point for the LuminOS desktop backend.
//
// The server hosts one desktop session: windows, a virtual file system,
// a spreadsheet and the dock apps, behind a JSON API and an event stream.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# In-memory desktop
//	./server -port 8000
//
//	# Files in SQLite, spreadsheet in Consul
//	./server -storage sqlite -storage-dsn lumin.db -kv consul
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main

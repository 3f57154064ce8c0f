// Package middleware provides the HTTP middleware of the desktop API:
// CORS, per-client and global rate limiting, and gzip compression.
package middleware

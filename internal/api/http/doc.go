// Package http exposes the desktop over a JSON API built on gin.
//
// Every route lives under /api except the service banner (/) and the
// health check (/health). Errors are returned as {"error": "..."}:
// unavailable storage maps to 503, invalid paths, writes and cells to 400,
// and absent files or apps to 404. Window operations on unknown ids are
// no-ops answered with 200 and "success": false.
package http

// Package ws streams desktop events over a WebSocket.
//
// On connect the server sends a "system" message carrying the desktop id,
// then every window, file and spreadsheet change as it happens:
//
//	{"type": "window.created", "data": {...}, "timestamp": 1700000000000}
//
// Clients may send {"type": "ping"} and receive {"type": "pong"}. The
// stream closes with "going away" when the desktop shuts down. A client
// too slow to keep up misses events rather than stalling the desktop.
//
// Example Usage:
//
//	handler := ws.NewHandler(desktop, cfg.Server.AllowedOrigins, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws

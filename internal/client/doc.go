// Package client is a Go client for the desktop JSON API.
//
// Requests go through resty over a retrying transport (go-retryablehttp),
// so connection errors and 5xx responses are retried with backoff.
// Consecutive server failures open a circuit breaker. Error responses are
// returned as *APIError.
//
// Example Usage:
//
//	c := client.New(client.DefaultConfig())
//	windowID, err := c.Launch(ctx, "notepad")
package client

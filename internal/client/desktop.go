package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/sheet"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// Health is the body of /health.
type Health struct {
	Status  string                 `json:"status"`
	Desktop map[string]interface{} `json:"desktop"`
}

// App is a dock app as listed by the desktop.
type App struct {
	types.Manifest
	Builtin bool `json:"builtin"`
}

// WindowResult is the outcome of a window operation.
type WindowResult struct {
	Success bool           `json:"success"`
	ID      string         `json:"id"`
	Window  *window.Window `json:"window,omitempty"`
}

// Health fetches the desktop health report
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, call{method: http.MethodGet, path: "/health", out: &out})
	return out, err
}

// Apps lists the dock apps
func (c *Client) Apps(ctx context.Context) ([]App, error) {
	var out struct {
		Apps []App `json:"apps"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/apps", out: &out})
	return out.Apps, err
}

// Launch opens an app and returns the new window id
func (c *Client) Launch(ctx context.Context, appID string) (string, error) {
	var out struct {
		WindowID string `json:"window_id"`
	}
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/apps/" + appID + "/launch", out: &out})
	return out.WindowID, err
}

// Windows lists live windows bottom-most first
func (c *Client) Windows(ctx context.Context) ([]window.Window, error) {
	var out struct {
		Windows []window.Window `json:"windows"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/windows", out: &out})
	return out.Windows, err
}

// WindowAction runs a window operation: close, focus, minimize, restore
// or maximize.
func (c *Client) WindowAction(ctx context.Context, id, action string) (WindowResult, error) {
	var out WindowResult
	cl := call{method: http.MethodPost, path: "/api/windows/" + id + "/" + action, out: &out}
	if action == "close" {
		cl = call{method: http.MethodDelete, path: "/api/windows/" + id, out: &out}
	}
	err := c.do(ctx, cl)
	return out, err
}

// ListFiles lists the children of a directory
func (c *Client) ListFiles(ctx context.Context, parent string) ([]*types.Entry, error) {
	var out struct {
		Entries []*types.Entry `json:"entries"`
	}
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/fs/list",
		query:  map[string]string{"parent": parent},
		out:    &out,
	})
	return out.Entries, err
}

// ReadFile returns one entry with its content
func (c *Client) ReadFile(ctx context.Context, path string) (*types.Entry, error) {
	var out types.Entry
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/fs/file",
		query:  map[string]string{"path": path},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveFile creates or replaces a file
func (c *Client) SaveFile(ctx context.Context, path, content, mimeType string) (*types.Entry, error) {
	var out types.Entry
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/api/fs/file",
		body:   types.SaveFileRequest{Path: path, Content: content, Type: mimeType},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Mkdir creates a directory
func (c *Client) Mkdir(ctx context.Context, path string) (*types.Entry, error) {
	var out types.Entry
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/fs/dir",
		body:   types.DirRequest{Path: path},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a path and returns how many entries went with it
func (c *Client) Delete(ctx context.Context, path string, recursive bool) (int, error) {
	var out struct {
		Removed int `json:"removed"`
	}
	err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/api/fs/file",
		query:  map[string]string{"path": path, "recursive": strconv.FormatBool(recursive)},
		out:    &out,
	})
	return out.Removed, err
}

// Search matches a glob pattern against every path
func (c *Client) Search(ctx context.Context, pattern string) ([]*types.Entry, error) {
	var out struct {
		Entries []*types.Entry `json:"entries"`
	}
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/fs/search",
		query:  map[string]string{"pattern": pattern},
		out:    &out,
	})
	return out.Entries, err
}

// Sheet returns the spreadsheet
func (c *Client) Sheet(ctx context.Context) (sheet.Snapshot, error) {
	var out sheet.Snapshot
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/sheet", out: &out})
	return out, err
}

// SetCell writes raw content into a cell
func (c *Client) SetCell(ctx context.Context, id, raw string) (sheet.Snapshot, error) {
	var out sheet.Snapshot
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/api/sheet/cells/" + id,
		body:   map[string]string{"raw": raw},
		out:    &out,
	})
	return out, err
}

// ColumnSummary returns statistics over a column
func (c *Client) ColumnSummary(ctx context.Context, col string) (sheet.Summary, error) {
	var out sheet.Summary
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/sheet/columns/" + col + "/summary", out: &out})
	return out, err
}

package types

// CreateWindowRequest creates a window for an app.
type CreateWindowRequest struct {
	AppID   string  `json:"app_id" binding:"required"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// DragRequest carries one pointer event of a title-bar drag.
type DragRequest struct {
	Phase    string  `json:"phase" binding:"required,oneof=start move end"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	OnButton bool    `json:"on_action_button"`
}

// ResizeRequest sets new window dimensions.
type ResizeRequest struct {
	Width  float64 `json:"width" binding:"required"`
	Height float64 `json:"height" binding:"required"`
}

// SaveFileRequest writes a file.
type SaveFileRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// DirRequest creates a directory.
type DirRequest struct {
	Path string `json:"path" binding:"required"`
}

// CellRequest writes raw content into a spreadsheet cell.
type CellRequest struct {
	Cell string `json:"cell"`
	Raw  string `json:"raw"`
}

// NoteRequest saves or previews a notepad document.
type NoteRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// WSMessage is a message exchanged over the event stream.
type WSMessage struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp,omitempty"`
}

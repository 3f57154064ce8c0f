package window

import "time"

// State is the display mode of a window. A window is in exactly one mode.
type State string

const (
	StateNormal    State = "normal"
	StateMinimized State = "minimized"
	StateMaximized State = "maximized"
)

// Geometry is a window rectangle in desktop pixels.
type Geometry struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Window is the record of one open window.
type Window struct {
	ID            string    `json:"id"`
	AppID         string    `json:"app_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Geometry      Geometry  `json:"geometry"`
	Z             int       `json:"z"`
	State         State     `json:"state"`
	SavedGeometry *Geometry `json:"saved_geometry,omitempty"`
	Visible       bool      `json:"visible"`
	Closing       bool      `json:"closing"`
	Dragging      bool      `json:"dragging"`
	CreatedAt     time.Time `json:"created_at"`
}

func (w *Window) clone() Window {
	c := *w
	if w.SavedGeometry != nil {
		saved := *w.SavedGeometry
		c.SavedGeometry = &saved
	}
	return c
}

// Options customizes a new window.
type Options struct {
	Width  float64
	Height float64
}

// Stats provides window manager statistics
type Stats struct {
	Total     int    `json:"total"`
	Visible   int    `json:"visible"`
	Minimized int    `json:"minimized"`
	Maximized int    `json:"maximized"`
	TopID     string `json:"top_id,omitempty"`
}

// EventType names a window change.
type EventType string

const (
	EventCreated EventType = "window.created"
	EventUpdated EventType = "window.updated"
	EventClosed  EventType = "window.closed"
)

// Event reports a change to a window. Window is a snapshot taken when the
// change happened.
type Event struct {
	Type   EventType `json:"type"`
	Window Window    `json:"window"`
}

// Config holds the desktop dimensions and transition timings.
type Config struct {
	DesktopWidth  float64
	DesktopHeight float64
	DefaultWidth  float64
	DefaultHeight float64
	MinWidth      float64
	MinHeight     float64
	BaseZ         int
	OpenDelay     time.Duration
	CloseDelay    time.Duration
}

// DefaultConfig returns a 1280x800 desktop with 600x400 windows that fade
// in on the next frame and are removed 300ms after closing.
func DefaultConfig() Config {
	return Config{
		DesktopWidth:  1280,
		DesktopHeight: 800,
		DefaultWidth:  600,
		DefaultHeight: 400,
		MinWidth:      200,
		MinHeight:     120,
		BaseZ:         100,
		OpenDelay:     16 * time.Millisecond,
		CloseDelay:    300 * time.Millisecond,
	}
}

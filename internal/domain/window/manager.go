package window

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
)

// Manager owns every window of one desktop: lifecycle, stacking order,
// display mode and pointer interactions. Unknown ids are silent no-ops.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	windows  map[string]*Window // Protected by mu
	drags    map[string]*drag   // Protected by mu
	timers   map[string]*time.Timer
	counter  int
	topZ     int
	listener func(Event)
	metrics  *monitoring.Metrics
}

// drag remembers where a title-bar drag started.
type drag struct {
	startX, startY   float64
	originX, originY float64
}

// NewManager creates a window manager. Zero config fields take defaults.
func NewManager(cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.DesktopWidth <= 0 {
		cfg.DesktopWidth = def.DesktopWidth
	}
	if cfg.DesktopHeight <= 0 {
		cfg.DesktopHeight = def.DesktopHeight
	}
	if cfg.DefaultWidth <= 0 {
		cfg.DefaultWidth = def.DefaultWidth
	}
	if cfg.DefaultHeight <= 0 {
		cfg.DefaultHeight = def.DefaultHeight
	}
	if cfg.MinWidth <= 0 {
		cfg.MinWidth = def.MinWidth
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = def.MinHeight
	}
	if cfg.BaseZ <= 0 {
		cfg.BaseZ = def.BaseZ
	}

	return &Manager{
		cfg:     cfg,
		windows: make(map[string]*Window),
		drags:   make(map[string]*drag),
		timers:  make(map[string]*time.Timer),
		topZ:    cfg.BaseZ,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// OnChange registers the function that receives every window event. It is
// called without the manager lock held.
func (m *Manager) OnChange(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = fn
}

// Create opens a window for appID and returns its id. The window is placed
// centered with a cascading offset, stacked on top of every other window,
// and becomes visible after the open delay.
func (m *Manager) Create(appID, title, content string, opts Options) string {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = m.cfg.DefaultWidth
	}
	if height <= 0 {
		height = m.cfg.DefaultHeight
	}

	m.mu.Lock()
	m.counter++
	offset := float64((m.counter * 30) % 100)
	w := &Window{
		ID:      fmt.Sprintf("window-%s-%d", appID, m.counter),
		AppID:   appID,
		Title:   title,
		Content: content,
		Geometry: Geometry{
			Left:   math.Max(0, (m.cfg.DesktopWidth-width)/2+offset),
			Top:    math.Max(0, (m.cfg.DesktopHeight-height)/2+offset),
			Width:  width,
			Height: height,
		},
		Z:         m.raise(),
		State:     StateNormal,
		CreatedAt: time.Now(),
	}
	m.windows[w.ID] = w

	id := w.ID
	m.schedule("open:"+id, m.cfg.OpenDelay, func() { m.reveal(id) })
	snapshot := w.clone()
	count := len(m.windows)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncWindowsCreated()
		m.metrics.SetWindowsOpen(count)
	}
	m.emit(EventCreated, snapshot)
	return id
}

func (m *Manager) reveal(id string) {
	m.mu.Lock()
	delete(m.timers, "open:"+id)
	w, ok := m.windows[id]
	if !ok || w.Closing {
		m.mu.Unlock()
		return
	}
	w.Visible = true
	snapshot := w.clone()
	m.mu.Unlock()

	m.emit(EventUpdated, snapshot)
}

// Close starts the closing transition and removes the window after the
// close delay. Closing an unknown or already closing window does nothing.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok || w.Closing {
		m.mu.Unlock()
		return false
	}
	w.Visible = false
	w.Closing = true
	m.stopDrag(w)
	m.cancel("open:" + id)
	m.schedule("close:"+id, m.cfg.CloseDelay, func() { m.remove(id) })
	snapshot := w.clone()
	m.mu.Unlock()

	m.emit(EventUpdated, snapshot)
	return true
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.timers, "close:"+id)
	w, ok := m.windows[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.windows, id)
	snapshot := w.clone()
	count := len(m.windows)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetWindowsOpen(count)
	}
	m.emit(EventClosed, snapshot)
}

// Minimize hides a window. A maximized window first gets its saved
// geometry back so that restoring it yields a normal window.
func (m *Manager) Minimize(id string) bool {
	return m.update(id, func(w *Window) bool {
		if w.State == StateMinimized {
			return false
		}
		if w.State == StateMaximized {
			m.unmaximize(w)
		}
		w.State = StateMinimized
		m.stopDrag(w)
		return true
	})
}

// Restore returns a minimized window to normal and brings it to front.
// Restoring any other window only brings it to front.
func (m *Manager) Restore(id string) bool {
	return m.update(id, func(w *Window) bool {
		if w.State == StateMinimized {
			w.State = StateNormal
		}
		w.Z = m.raise()
		return true
	})
}

// ToggleMaximize switches between normal and full-desktop geometry. A
// minimized window is un-minimized and maximized.
func (m *Manager) ToggleMaximize(id string) bool {
	return m.update(id, func(w *Window) bool {
		if w.State == StateMaximized {
			m.unmaximize(w)
			return true
		}

		saved := w.Geometry
		w.SavedGeometry = &saved
		w.Geometry = Geometry{Width: m.cfg.DesktopWidth, Height: m.cfg.DesktopHeight}
		w.State = StateMaximized
		m.stopDrag(w)
		return true
	})
}

func (m *Manager) unmaximize(w *Window) {
	if w.SavedGeometry != nil {
		w.Geometry = *w.SavedGeometry
	}
	w.State = StateNormal
}

// Focus brings a window to front. Any pointer-down on a window focuses it.
func (m *Manager) Focus(id string) bool {
	return m.update(id, func(w *Window) bool {
		w.Z = m.raise()
		return true
	})
}

// BeginDrag starts a title-bar drag at pointer position (x, y). Presses on
// the action buttons and drags of maximized or minimized windows are
// ignored. The window is focused either way.
func (m *Manager) BeginDrag(id string, x, y float64, onActionButton bool) bool {
	return m.update(id, func(w *Window) bool {
		w.Z = m.raise()
		if onActionButton || w.State != StateNormal {
			return true
		}
		m.drags[id] = &drag{startX: x, startY: y, originX: w.Geometry.Left, originY: w.Geometry.Top}
		w.Dragging = true
		return true
	})
}

// DragTo moves a dragged window by the pointer delta since BeginDrag.
func (m *Manager) DragTo(id string, x, y float64) bool {
	return m.update(id, func(w *Window) bool {
		d, ok := m.drags[id]
		if !ok {
			return false
		}
		w.Geometry.Left = d.originX + (x - d.startX)
		w.Geometry.Top = d.originY + (y - d.startY)
		return true
	})
}

// EndDrag finishes a drag.
func (m *Manager) EndDrag(id string) bool {
	return m.update(id, func(w *Window) bool {
		if _, ok := m.drags[id]; !ok {
			return false
		}
		m.stopDrag(w)
		return true
	})
}

// Resize sets the size of a normal window, clamped to the minimum size.
func (m *Manager) Resize(id string, width, height float64) bool {
	return m.update(id, func(w *Window) bool {
		if w.State != StateNormal {
			return false
		}
		w.Geometry.Width = math.Max(width, m.cfg.MinWidth)
		w.Geometry.Height = math.Max(height, m.cfg.MinHeight)
		return true
	})
}

// Get retrieves a snapshot of a window by ID
func (m *Manager) Get(id string) (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return w.clone(), true
}

// List returns snapshots of all live windows, bottom-most first.
func (m *Manager) List() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]Window, 0, len(m.windows))
	for _, w := range m.windows {
		list = append(list, w.clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Z < list[j].Z })
	return list
}

// Stats returns window manager statistics
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Total: len(m.windows)}
	topZ := math.MinInt
	for _, w := range m.windows {
		if w.Visible {
			stats.Visible++
		}
		switch w.State {
		case StateMinimized:
			stats.Minimized++
		case StateMaximized:
			stats.Maximized++
		}
		if w.Z > topZ {
			topZ = w.Z
			stats.TopID = w.ID
		}
	}
	return stats
}

// Shutdown stops pending transitions. Windows stay as they are.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, timer := range m.timers {
		timer.Stop()
		delete(m.timers, key)
	}
}

// update applies fn to a window under the lock and emits an update event
// when fn reports a change.
func (m *Manager) update(id string, fn func(w *Window) bool) bool {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok || w.Closing {
		m.mu.Unlock()
		return false
	}
	changed := fn(w)
	snapshot := w.clone()
	m.mu.Unlock()

	if changed {
		m.emit(EventUpdated, snapshot)
	}
	return changed
}

// stopDrag ends any drag in progress. Caller holds mu.
func (m *Manager) stopDrag(w *Window) {
	delete(m.drags, w.ID)
	w.Dragging = false
}

// raise returns the next stacking value. Caller holds mu.
func (m *Manager) raise() int {
	m.topZ++
	return m.topZ
}

// schedule runs fn after delay. Caller holds mu.
func (m *Manager) schedule(key string, delay time.Duration, fn func()) {
	m.cancel(key)
	m.timers[key] = time.AfterFunc(delay, fn)
}

// cancel stops a pending timer. Caller holds mu.
func (m *Manager) cancel(key string) {
	if timer, ok := m.timers[key]; ok {
		timer.Stop()
		delete(m.timers, key)
	}
}

func (m *Manager) emit(typ EventType, w Window) {
	m.mu.RLock()
	listener := m.listener
	m.mu.RUnlock()

	if listener != nil {
		listener(Event{Type: typ, Window: w})
	}
}

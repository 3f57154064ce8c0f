package window

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.OpenDelay = time.Millisecond
	cfg.CloseDelay = 20 * time.Millisecond
	return cfg
}

func mustGet(t *testing.T, m *Manager, id string) Window {
	t.Helper()
	w, ok := m.Get(id)
	require.True(t, ok, "window %s should exist", id)
	return w
}

func TestCreateAssignsIDsAndZOrder(t *testing.T) {
	m := NewManager(testConfig())

	first := m.Create("notepad", "Notepad", "", Options{})
	second := m.Create("clock", "Clock", "", Options{})

	assert.Equal(t, "window-notepad-1", first)
	assert.Equal(t, "window-clock-2", second)

	w1 := mustGet(t, m, first)
	w2 := mustGet(t, m, second)
	assert.Equal(t, 101, w1.Z)
	assert.Greater(t, w2.Z, w1.Z)
	assert.Equal(t, StateNormal, w1.State)
}

func TestCreateDefaultSizeAndCascade(t *testing.T) {
	m := NewManager(testConfig())

	tests := []struct {
		wantLeft float64
		wantTop  float64
	}{
		{wantLeft: 340 + 30, wantTop: 200 + 30},
		{wantLeft: 340 + 60, wantTop: 200 + 60},
		{wantLeft: 340 + 90, wantTop: 200 + 90},
		{wantLeft: 340 + 20, wantTop: 200 + 20},
	}

	for i, tt := range tests {
		id := m.Create("app", "App", "", Options{})
		w := mustGet(t, m, id)
		assert.Equal(t, 600.0, w.Geometry.Width, "window %d", i)
		assert.Equal(t, 400.0, w.Geometry.Height, "window %d", i)
		assert.Equal(t, tt.wantLeft, w.Geometry.Left, "window %d", i)
		assert.Equal(t, tt.wantTop, w.Geometry.Top, "window %d", i)
	}
}

func TestCreateClampsToDesktopOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.DesktopWidth = 400
	cfg.DesktopHeight = 300
	m := NewManager(cfg)

	id := m.Create("draw", "Draw", "", Options{Width: 800, Height: 640})
	w := mustGet(t, m, id)

	assert.Equal(t, 0.0, w.Geometry.Left)
	assert.Equal(t, 0.0, w.Geometry.Top)
	assert.Equal(t, 800.0, w.Geometry.Width)
}

func TestWindowBecomesVisibleAfterOpenDelay(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("clock", "Clock", "", Options{})

	assert.Eventually(t, func() bool {
		w, ok := m.Get(id)
		return ok && w.Visible
	}, time.Second, 5*time.Millisecond)
}

func TestCloseRemovesAfterDelay(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("clock", "Clock", "", Options{})

	require.True(t, m.Close(id))

	w := mustGet(t, m, id)
	assert.False(t, w.Visible)
	assert.True(t, w.Closing)

	assert.False(t, m.Close(id), "second close is a no-op")

	assert.Eventually(t, func() bool {
		_, ok := m.Get(id)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	m := NewManager(testConfig())

	assert.False(t, m.Close("window-x-9"))
	assert.False(t, m.Minimize("window-x-9"))
	assert.False(t, m.Restore("window-x-9"))
	assert.False(t, m.ToggleMaximize("window-x-9"))
	assert.False(t, m.Focus("window-x-9"))
	assert.False(t, m.BeginDrag("window-x-9", 0, 0, false))
	assert.False(t, m.Resize("window-x-9", 300, 300))
	assert.Empty(t, m.List())
}

func TestFocusRaisesStrictly(t *testing.T) {
	m := NewManager(testConfig())
	a := m.Create("a", "A", "", Options{})
	b := m.Create("b", "B", "", Options{})

	require.True(t, m.Focus(a))

	wa := mustGet(t, m, a)
	wb := mustGet(t, m, b)
	assert.Greater(t, wa.Z, wb.Z)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, b, list[0].ID)
	assert.Equal(t, a, list[1].ID)
	assert.Equal(t, a, m.Stats().TopID)
}

func TestMinimizeRestore(t *testing.T) {
	m := NewManager(testConfig())
	a := m.Create("a", "A", "", Options{})
	b := m.Create("b", "B", "", Options{})

	require.True(t, m.Minimize(a))
	assert.Equal(t, StateMinimized, mustGet(t, m, a).State)

	require.True(t, m.Restore(a))
	wa := mustGet(t, m, a)
	assert.Equal(t, StateNormal, wa.State)
	assert.Greater(t, wa.Z, mustGet(t, m, b).Z)
}

func TestToggleMaximizeRoundTrip(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("a", "A", "", Options{Width: 500, Height: 300})
	before := mustGet(t, m, id).Geometry

	require.True(t, m.ToggleMaximize(id))
	maxed := mustGet(t, m, id)
	assert.Equal(t, StateMaximized, maxed.State)
	assert.Equal(t, Geometry{Width: 1280, Height: 800}, maxed.Geometry)
	require.NotNil(t, maxed.SavedGeometry)
	assert.Equal(t, before, *maxed.SavedGeometry)

	require.True(t, m.ToggleMaximize(id))
	restored := mustGet(t, m, id)
	assert.Equal(t, StateNormal, restored.State)
	assert.Equal(t, before, restored.Geometry)
}

func TestMinimizeAndMaximizeAreExclusive(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("a", "A", "", Options{})
	before := mustGet(t, m, id).Geometry

	require.True(t, m.ToggleMaximize(id))
	require.True(t, m.Minimize(id))
	w := mustGet(t, m, id)
	assert.Equal(t, StateMinimized, w.State)
	assert.Equal(t, before, w.Geometry)

	require.True(t, m.Restore(id))
	assert.Equal(t, StateNormal, mustGet(t, m, id).State)

	require.True(t, m.Minimize(id))
	require.True(t, m.ToggleMaximize(id))
	assert.Equal(t, StateMaximized, mustGet(t, m, id).State)
}

func TestDragMovesByDelta(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("a", "A", "", Options{})
	start := mustGet(t, m, id).Geometry

	require.True(t, m.BeginDrag(id, 100, 100, false))
	require.True(t, m.DragTo(id, 150, 80))
	require.True(t, m.EndDrag(id))

	w := mustGet(t, m, id)
	assert.Equal(t, start.Left+50, w.Geometry.Left)
	assert.Equal(t, start.Top-20, w.Geometry.Top)
	assert.False(t, w.Dragging)

	assert.False(t, m.DragTo(id, 500, 500), "moves after release are ignored")
}

func TestDragIgnoredWhenMaximizedOrOnButtons(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("a", "A", "", Options{})

	require.True(t, m.ToggleMaximize(id))
	z := mustGet(t, m, id).Z
	m.BeginDrag(id, 10, 10, false)
	assert.False(t, m.DragTo(id, 200, 200))
	w := mustGet(t, m, id)
	assert.Equal(t, 0.0, w.Geometry.Left)
	assert.Greater(t, w.Z, z, "pointer-down still focuses")

	require.True(t, m.ToggleMaximize(id))
	m.BeginDrag(id, 10, 10, true)
	assert.False(t, m.DragTo(id, 200, 200))
}

func TestResize(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("a", "A", "", Options{})

	require.True(t, m.Resize(id, 700, 50))
	w := mustGet(t, m, id)
	assert.Equal(t, 700.0, w.Geometry.Width)
	assert.Equal(t, 120.0, w.Geometry.Height)

	require.True(t, m.ToggleMaximize(id))
	assert.False(t, m.Resize(id, 300, 300))
}

func TestGetReturnsCopy(t *testing.T) {
	m := NewManager(testConfig())
	id := m.Create("a", "A", "", Options{})
	require.True(t, m.ToggleMaximize(id))

	w := mustGet(t, m, id)
	w.Title = "changed"
	w.SavedGeometry.Width = 1

	again := mustGet(t, m, id)
	assert.Equal(t, "A", again.Title)
	assert.NotEqual(t, 1.0, again.SavedGeometry.Width)
}

func TestStats(t *testing.T) {
	m := NewManager(testConfig())
	a := m.Create("a", "A", "", Options{})
	b := m.Create("b", "B", "", Options{})
	m.Create("c", "C", "", Options{})

	m.Minimize(a)
	m.ToggleMaximize(b)

	stats := m.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Minimized)
	assert.Equal(t, 1, stats.Maximized)
}

func TestEventsAreEmitted(t *testing.T) {
	m := NewManager(testConfig())

	var (
		mu     sync.Mutex
		events []EventType
	)
	m.OnChange(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e.Type)
	})

	id := m.Create("a", "A", "", Options{})
	m.Close(id)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) > 0 && events[len(events)-1] == EventClosed
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, EventCreated, events[0])
}

func TestShutdownStopsPendingClose(t *testing.T) {
	cfg := testConfig()
	cfg.CloseDelay = 50 * time.Millisecond
	m := NewManager(cfg)
	id := m.Create("a", "A", "", Options{})

	m.Close(id)
	m.Shutdown()

	time.Sleep(80 * time.Millisecond)
	_, ok := m.Get(id)
	assert.True(t, ok)
}

package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

var (
	// ErrInvalidApp is returned when an app has no id or no launch function.
	ErrInvalidApp = errors.New("invalid app")
	// ErrDuplicateApp is returned when an id is registered twice.
	ErrDuplicateApp = errors.New("app already registered")
	// ErrAppNotFound is returned when launching an unknown id.
	ErrAppNotFound = errors.New("app not found")
)

// LaunchFunc opens the app and returns the id of the window it created.
type LaunchFunc func(ctx context.Context) (string, error)

// App is a registered dock app.
type App struct {
	types.Manifest
	Builtin bool       `json:"builtin"`
	Launch  LaunchFunc `json:"-"`
}

// Manager holds the apps of the dock in registration order.
type Manager struct {
	mu      sync.RWMutex
	apps    map[string]*App
	order   []string
	metrics *monitoring.Metrics
}

// NewManager creates an empty registry
func NewManager() *Manager {
	return &Manager{apps: make(map[string]*App)}
}

// WithMetrics adds metrics tracking to the registry
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Register adds an app. Ids are unique and registration order is kept.
func (m *Manager) Register(app App) error {
	if app.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidApp)
	}
	if app.Launch == nil {
		return fmt.Errorf("%w: %s has no launch function", ErrInvalidApp, app.ID)
	}

	m.mu.Lock()
	if _, exists := m.apps[app.ID]; exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateApp, app.ID)
	}
	stored := app
	m.apps[app.ID] = &stored
	m.order = append(m.order, app.ID)
	count := len(m.order)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetRegistryApps(count)
	}
	return nil
}

// Get retrieves an app by id
func (m *Manager) Get(id string) (App, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.apps[id]
	if !ok {
		return App{}, false
	}
	return *app, true
}

// List returns every app in registration order
func (m *Manager) List() []App {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := make([]App, 0, len(m.order))
	for _, id := range m.order {
		apps = append(apps, *m.apps[id])
	}
	return apps
}

// Count returns the number of registered apps
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Launch runs the launch function of app id.
func (m *Manager) Launch(ctx context.Context, id string) (string, error) {
	app, ok := m.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAppNotFound, id)
	}

	windowID, err := app.Launch(ctx)
	if err != nil {
		return "", fmt.Errorf("launch %s: %w", id, err)
	}
	if m.metrics != nil {
		m.metrics.IncAppLaunches(id)
	}
	return windowID, nil
}

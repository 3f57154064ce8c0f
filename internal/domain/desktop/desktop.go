package desktop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/events"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/registry"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/sheet"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/providers/clock"
	"github.com/GriffinCanCode/LuminOS/backend/internal/providers/filemanager"
	"github.com/GriffinCanCode/LuminOS/backend/internal/providers/notepad"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage"
)

// Config configures a desktop.
type Config struct {
	Window  window.Config
	AppsDir string
}

// Status summarizes a running desktop.
type Status struct {
	ID          string       `json:"id"`
	StartedAt   time.Time    `json:"started_at"`
	Windows     window.Stats `json:"windows"`
	FS          vfs.Stats    `json:"fs"`
	Apps        int          `json:"apps"`
	Subscribers int          `json:"subscribers"`
}

// Desktop owns every component of one desktop session and forwards their
// changes to the event stream.
type Desktop struct {
	id        id.DesktopID
	startedAt time.Time
	cfg       Config

	records storage.RecordStore
	kv      storage.KV

	fs        *vfs.FS
	windows   *window.Manager
	sheet     *sheet.Sheet
	apps      *registry.Manager
	events    *events.Broadcaster
	notepad   *notepad.Provider
	files     *filemanager.Browser
	stopwatch *clock.Stopwatch

	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// New assembles a desktop over the given stores. The desktop takes
// ownership of both stores and closes them on Shutdown. Boot must be
// called before serving requests.
func New(cfg Config, records storage.RecordStore, kv storage.KV, metrics *monitoring.Metrics, logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Desktop{
		id:        id.NewDesktopID(),
		startedAt: time.Now(),
		cfg:       cfg,
		records:   records,
		kv:        kv,
		fs:        vfs.New(records, logger.Named("vfs")).WithMetrics(metrics),
		windows:   window.NewManager(cfg.Window).WithMetrics(metrics),
		sheet:     sheet.New(kv, logger.Named("sheet")).WithMetrics(metrics),
		apps:      registry.NewManager().WithMetrics(metrics),
		events:    events.NewBroadcaster(events.DefaultBuffer).WithMetrics(metrics),
		stopwatch: clock.NewStopwatch(),
		metrics:   metrics,
		logger:    logger,
	}
	d.notepad = notepad.NewProvider(d.fs, kv, logger.Named("notepad"))
	d.files = filemanager.NewBrowser(d.fs, logger.Named("files"))

	d.windows.OnChange(func(ev window.Event) {
		d.events.Emit(string(ev.Type), ev.Window)
	})
	d.fs.OnChange(func(c vfs.Change) {
		typ := events.TypeFSSaved
		if c.Op == vfs.ChangeDeleted {
			typ = events.TypeFSDeleted
		}
		d.events.Emit(typ, c.Entry)
	})
	d.sheet.OnChange(func(snap sheet.Snapshot) {
		d.events.Emit(events.TypeSheetUpdated, snap)
	})

	return d
}

// Boot opens the file system, creates the standard directories, restores
// the spreadsheet and registers the dock apps. Storage failures are
// logged and leave the affected component unavailable; only a broken app
// registry is fatal.
func (d *Desktop) Boot(ctx context.Context) error {
	if err := d.fs.Init(ctx); err != nil {
		d.logger.Error("File system initialization failed", zap.Error(err))
	} else {
		for _, dir := range BootDirectories {
			if _, err := d.fs.CreateDirectory(ctx, dir); err != nil {
				d.logger.Error("Failed to create boot directory", zap.String("path", dir), zap.Error(err))
			}
		}
	}

	if err := d.sheet.Load(ctx); err != nil {
		d.logger.Error("Failed to restore spreadsheet", zap.Error(err))
	}

	if err := d.registerBuiltins(); err != nil {
		return fmt.Errorf("register built-in apps: %w", err)
	}

	seeder := registry.NewSeeder(d.apps, d.cfg.AppsDir, d.windowLauncher, d.logger.Named("seeder"))
	if _, err := seeder.SeedApps(ctx); err != nil {
		d.logger.Warn("App seeding failed", zap.Error(err))
	}

	d.logger.Info("Desktop booted",
		zap.String("desktop_id", d.id.String()),
		zap.Int("apps", d.apps.Count()),
		zap.Bool("fs_ready", d.fs.Ready()),
	)
	return nil
}

// OpenWindow creates a window for an app manifest and returns its id.
func (d *Desktop) OpenWindow(manifest types.Manifest) string {
	return d.windows.Create(manifest.ID, manifest.WindowTitle(), manifest.Content, window.Options{
		Width:  manifest.Window.Width,
		Height: manifest.Window.Height,
	})
}

// Status reports the state of every component.
func (d *Desktop) Status(ctx context.Context) Status {
	fsStats, err := d.fs.Stats(ctx)
	if err != nil && !errors.Is(err, vfs.ErrStorageUnavailable) {
		d.logger.Warn("Failed to collect file system stats", zap.Error(err))
	}

	return Status{
		ID:          d.id.String(),
		StartedAt:   d.startedAt,
		Windows:     d.windows.Stats(),
		FS:          fsStats,
		Apps:        d.apps.Count(),
		Subscribers: d.events.Count(),
	}
}

// Shutdown stops window transitions, disconnects stream subscribers and
// closes both stores.
func (d *Desktop) Shutdown(ctx context.Context) error {
	d.windows.Shutdown()
	d.events.Close()

	var errs []error
	if err := d.fs.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close file system: %w", err))
	}
	if err := d.kv.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close kv: %w", err))
	}

	d.logger.Info("Desktop shut down", zap.String("desktop_id", d.id.String()))
	return errors.Join(errs...)
}

// ID returns the desktop instance id.
func (d *Desktop) ID() string { return d.id.String() }

// FS returns the virtual file system.
func (d *Desktop) FS() *vfs.FS { return d.fs }

// Windows returns the window manager.
func (d *Desktop) Windows() *window.Manager { return d.windows }

// Sheet returns the spreadsheet.
func (d *Desktop) Sheet() *sheet.Sheet { return d.sheet }

// Apps returns the app registry.
func (d *Desktop) Apps() *registry.Manager { return d.apps }

// Events returns the event stream.
func (d *Desktop) Events() *events.Broadcaster { return d.events }

// Notepad returns the notepad back end.
func (d *Desktop) Notepad() *notepad.Provider { return d.notepad }

// Files returns the file manager back end.
func (d *Desktop) Files() *filemanager.Browser { return d.files }

// Stopwatch returns the clock app's stopwatch.
func (d *Desktop) Stopwatch() *clock.Stopwatch { return d.stopwatch }

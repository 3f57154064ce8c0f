// Package desktop ties the components of one desktop session together.
//
// A Desktop owns the virtual file system, the window manager, the
// spreadsheet, the app registry, the mini-app back ends and the event
// stream. Boot prepares the file system and registers the dock apps;
// Shutdown releases everything. The HTTP layer reaches every component
// through the Desktop.
//
// Example Usage:
//
//	d := desktop.New(desktop.Config{Window: window.DefaultConfig()},
//	    memory.NewRecordStore(), memory.NewKV(), metrics, logger)
//	if err := d.Boot(ctx); err != nil {
//	    return err
//	}
//	defer d.Shutdown(ctx)
//	windowID, err := d.Apps().Launch(ctx, desktop.AppNotepad)
package desktop

package desktop

import (
	"context"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/registry"
	"github.com/GriffinCanCode/LuminOS/backend/internal/providers/notepad"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/paths"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// Built-in app ids.
const (
	AppNotepad     = "notepad"
	AppClock       = "clock"
	AppBreakout    = "breakout"
	AppImageViewer = "image-viewer"
	AppMusicPlayer = "music-player"
	AppDraw        = "draw"
	AppSpreadsheet = "spreadsheet"
	AppFileManager = "file-manager"
)

// BootDirectories are created when the desktop starts.
var BootDirectories = paths.StandardDirectories()

// Builtins returns the manifests of the dock apps in dock order.
func Builtins() []types.Manifest {
	return []types.Manifest{
		{ID: AppNotepad, Name: "Notepad", Icon: "📝", Category: "productivity",
			Description: "Text editor with markdown preview", Window: types.WindowSize{Width: 820, Height: 560}},
		{ID: AppClock, Name: "Clock & Timer", Icon: "⏰", Category: "utilities",
			Description: "Digital clock, timer and stopwatch", Window: types.WindowSize{Width: 520, Height: 480}},
		{ID: AppBreakout, Name: "Breakout", Icon: "🎮", Category: "games",
			Description: "Classic brick breaking game", Window: types.WindowSize{Width: 640, Height: 560}},
		{ID: AppImageViewer, Name: "Image Viewer", Icon: "🖼️", Category: "media",
			Description: "Views images", Window: types.WindowSize{Width: 700, Height: 560}},
		{ID: AppMusicPlayer, Name: "Music Player", Icon: "🎵", Category: "media",
			Description: "Plays local music files", Window: types.WindowSize{Width: 640, Height: 520}},
		{ID: AppDraw, Name: "Draw", Icon: "🎨", Category: "creative",
			Description: "Simple drawing app", Window: types.WindowSize{Width: 800, Height: 640}},
		{ID: AppSpreadsheet, Name: "Spreadsheet", Icon: "📊", Category: "productivity",
			Description: "Light spreadsheet with cell references", Window: types.WindowSize{Width: 900, Height: 640}},
		{ID: AppFileManager, Name: "File Manager", Icon: "📁", Category: "system",
			Description: "Manages the file system", Window: types.WindowSize{Width: 720, Height: 560}},
	}
}

// registerBuiltins adds the dock apps. Notepad makes sure its documents
// directory exists before opening.
func (d *Desktop) registerBuiltins() error {
	for _, manifest := range Builtins() {
		launch := d.windowLauncher(manifest)
		if manifest.ID == AppNotepad {
			open := launch
			launch = func(ctx context.Context) (string, error) {
				if _, err := d.fs.CreateDirectory(ctx, notepad.DocumentsDir); err != nil {
					return "", err
				}
				return open(ctx)
			}
		}

		if err := d.apps.Register(registry.App{Manifest: manifest, Builtin: true, Launch: launch}); err != nil {
			return err
		}
	}
	return nil
}

// windowLauncher opens a window sized and titled from the manifest.
func (d *Desktop) windowLauncher(manifest types.Manifest) registry.LaunchFunc {
	return func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return d.OpenWindow(manifest), nil
	}
}

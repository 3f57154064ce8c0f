package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/registry"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/sheet"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/LuminOS/backend/internal/providers/filemanager"
	"github.com/GriffinCanCode/LuminOS/backend/internal/providers/notepad"
)

// Version is reported by the root endpoint.
const Version = "0.3.0"

// errNotFound marks an absent file at the HTTP boundary. The file system
// itself reports absence as a nil entry.
var errNotFound = errors.New("file not found")

// errorKinds names the sentinel errors counted by the service metrics.
var errorKinds = map[string]error{
	"unavailable":      vfs.ErrStorageUnavailable,
	"invalid_write":    vfs.ErrInvalidWrite,
	"invalid_path":     vfs.ErrInvalidPath,
	"parent_not_found": vfs.ErrParentNotFound,
	"invalid_cell":     sheet.ErrInvalidCell,
	"not_found":        errNotFound,
}

// Handlers contains all HTTP handlers
type Handlers struct {
	desktop *desktop.Desktop
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(d *desktop.Desktop, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{desktop: d, metrics: metrics, logger: logger}
}

// Register mounts every route on router.
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	api := router.Group("/api")

	api.GET("/apps", h.ListApps)
	api.GET("/apps/:id", h.GetApp)
	api.POST("/apps/:id/launch", h.LaunchApp)

	api.GET("/windows", h.ListWindows)
	api.POST("/windows", h.CreateWindow)
	api.GET("/windows/:id", h.GetWindow)
	api.DELETE("/windows/:id", h.CloseWindow)
	api.POST("/windows/:id/focus", h.FocusWindow)
	api.POST("/windows/:id/minimize", h.MinimizeWindow)
	api.POST("/windows/:id/restore", h.RestoreWindow)
	api.POST("/windows/:id/maximize", h.MaximizeWindow)
	api.POST("/windows/:id/drag", h.DragWindow)
	api.POST("/windows/:id/resize", h.ResizeWindow)

	api.GET("/fs/list", h.ListFiles)
	api.GET("/fs/file", h.ReadFile)
	api.HEAD("/fs/file", h.FileExists)
	api.PUT("/fs/file", h.SaveFile)
	api.DELETE("/fs/file", h.DeleteFile)
	api.POST("/fs/dir", h.CreateDirectory)
	api.GET("/fs/search", h.SearchFiles)

	api.GET("/files", h.BrowseFiles)
	api.POST("/files/cd", h.ChangeDir)
	api.POST("/files/up", h.GoUp)
	api.POST("/files/file", h.CreateBrowserFile)
	api.POST("/files/folder", h.CreateBrowserFolder)

	api.GET("/sheet", h.GetSheet)
	api.GET("/sheet/cells/:id", h.GetCell)
	api.PUT("/sheet/cells/:id", h.SetCell)
	api.POST("/sheet/select", h.SelectCell)
	api.POST("/sheet/commit", h.CommitCell)
	api.GET("/sheet/columns/:col/summary", h.ColumnSummary)

	api.POST("/notepad/save", h.SaveNote)
	api.GET("/notepad/load", h.LoadNote)
	api.POST("/notepad/preview", h.PreviewNote)
	api.GET("/notepad/autosave", h.GetAutosave)
	api.PUT("/notepad/autosave", h.PutAutosave)
	api.DELETE("/notepad/autosave", h.ClearAutosave)

	api.GET("/clock/stopwatch", h.ReadStopwatch)
	api.POST("/clock/stopwatch/start", h.StartStopwatch)
	api.POST("/clock/stopwatch/stop", h.StopStopwatch)
	api.POST("/clock/stopwatch/reset", h.ResetStopwatch)
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "online",
		"service":    "LuminOS desktop",
		"version":    Version,
		"desktop_id": h.desktop.ID(),
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	status := h.desktop.Status(c.Request.Context())

	health := "healthy"
	if !status.FS.Ready {
		health = "degraded"
	}

	body := gin.H{
		"status":  health,
		"desktop": status,
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, vfs.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errNotFound),
		errors.Is(err, notepad.ErrNotFound),
		errors.Is(err, registry.ErrAppNotFound):
		return http.StatusNotFound
	case errors.Is(err, vfs.ErrInvalidWrite),
		errors.Is(err, vfs.ErrInvalidPath),
		errors.Is(err, vfs.ErrParentNotFound),
		errors.Is(err, sheet.ErrInvalidCell),
		errors.Is(err, sheet.ErrNoSelection),
		errors.Is(err, notepad.ErrNameRequired),
		errors.Is(err, notepad.ErrInvalidName),
		errors.Is(err, filemanager.ErrNameRequired),
		errors.Is(err, filemanager.ErrNotDirectory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": ...} with its mapped status. Server-side
// failures are logged.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	if status >= http.StatusInternalServerError {
		fields := append(tracing.Fields(c.Request.Context()),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
		h.logger.Error("Request failed", fields...)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest reports a malformed request body or query.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// timer starts a service call measurement.
func (h *Handlers) timer(service, method string) func(error) {
	t := monitoring.NewTimer(h.metrics, service, method)
	return func(err error) {
		t.Done(err, func(err error) string { return monitoring.ErrorKind(err, errorKinds) })
	}
}

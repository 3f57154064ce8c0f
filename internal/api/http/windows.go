package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// ListWindows lists live windows bottom-most first
func (h *Handlers) ListWindows(c *gin.Context) {
	windows := h.desktop.Windows()
	c.JSON(http.StatusOK, gin.H{
		"windows": windows.List(),
		"stats":   windows.Stats(),
	})
}

// CreateWindow opens a window for an app id
func (h *Handlers) CreateWindow(c *gin.Context) {
	var req types.CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := h.desktop.Windows().Create(req.AppID, req.Title, req.Content, window.Options{
		Width:  req.Width,
		Height: req.Height,
	})
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// GetWindow returns one window
func (h *Handlers) GetWindow(c *gin.Context) {
	id := c.Param("id")
	w, ok := h.desktop.Windows().Get(id)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "id": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "window": w})
}

// CloseWindow starts the closing transition of a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowOp(c, h.desktop.Windows().Close)
}

// FocusWindow brings a window to the front
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowOp(c, h.desktop.Windows().Focus)
}

// MinimizeWindow minimizes a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowOp(c, h.desktop.Windows().Minimize)
}

// RestoreWindow returns a window to normal and brings it to the front
func (h *Handlers) RestoreWindow(c *gin.Context) {
	h.windowOp(c, h.desktop.Windows().Restore)
}

// MaximizeWindow toggles the maximized state
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.windowOp(c, h.desktop.Windows().ToggleMaximize)
}

// DragWindow applies one pointer event of a title-bar drag
func (h *Handlers) DragWindow(c *gin.Context) {
	var req types.DragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	windows := h.desktop.Windows()
	id := c.Param("id")

	var ok bool
	switch req.Phase {
	case "start":
		ok = windows.BeginDrag(id, req.X, req.Y, req.OnButton)
	case "move":
		ok = windows.DragTo(id, req.X, req.Y)
	case "end":
		ok = windows.EndDrag(id)
	}
	h.windowResult(c, id, ok)
}

// ResizeWindow sets new window dimensions
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var req types.ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	h.windowResult(c, id, h.desktop.Windows().Resize(id, req.Width, req.Height))
}

func (h *Handlers) windowOp(c *gin.Context, op func(id string) bool) {
	id := c.Param("id")
	h.windowResult(c, id, op(id))
}

// windowResult reports a window operation. Unknown windows are not an
// error: the operation is a no-op and success is false.
func (h *Handlers) windowResult(c *gin.Context, id string, ok bool) {
	body := gin.H{"success": ok, "id": id}
	if w, found := h.desktop.Windows().Get(id); found {
		body["window"] = w
	}
	c.JSON(http.StatusOK, body)
}

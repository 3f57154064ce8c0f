package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListApps lists the dock apps in registration order
func (h *Handlers) ListApps(c *gin.Context) {
	apps := h.desktop.Apps().List()
	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"count": len(apps),
	})
}

// GetApp returns one registered app
func (h *Handlers) GetApp(c *gin.Context) {
	app, ok := h.desktop.Apps().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// LaunchApp opens a window for an app
func (h *Handlers) LaunchApp(c *gin.Context) {
	appID := c.Param("id")

	done := h.timer("registry", "launch")
	windowID, err := h.desktop.Apps().Launch(c.Request.Context(), appID)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"app_id":    appID,
		"window_id": windowID,
	})
}

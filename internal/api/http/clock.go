package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadStopwatch returns the stopwatch state
func (h *Handlers) ReadStopwatch(c *gin.Context) {
	c.JSON(http.StatusOK, h.desktop.Stopwatch().Read())
}

// StartStopwatch starts or resumes the stopwatch
func (h *Handlers) StartStopwatch(c *gin.Context) {
	c.JSON(http.StatusOK, h.desktop.Stopwatch().Start())
}

// StopStopwatch freezes the stopwatch
func (h *Handlers) StopStopwatch(c *gin.Context) {
	c.JSON(http.StatusOK, h.desktop.Stopwatch().Stop())
}

// ResetStopwatch stops the stopwatch and clears it
func (h *Handlers) ResetStopwatch(c *gin.Context) {
	c.JSON(http.StatusOK, h.desktop.Stopwatch().Reset())
}

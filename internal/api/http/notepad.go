package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

type contentRequest struct {
	Content string `json:"content"`
}

// SaveNote saves a note under /documents
func (h *Handlers) SaveNote(c *gin.Context) {
	var req types.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	done := h.timer("notepad", "save")
	note, err := h.desktop.Notepad().Save(c.Request.Context(), req.Name, req.Content)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// LoadNote reads a note from /documents
func (h *Handlers) LoadNote(c *gin.Context) {
	done := h.timer("notepad", "load")
	note, err := h.desktop.Notepad().Load(c.Request.Context(), c.Query("name"))
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// PreviewNote renders markdown to sanitized HTML
func (h *Handlers) PreviewNote(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": h.desktop.Notepad().Preview(req.Content)})
}

// GetAutosave returns the unsaved editor text
func (h *Handlers) GetAutosave(c *gin.Context) {
	content, ok, err := h.desktop.Notepad().Autosaved(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content, "exists": ok})
}

// PutAutosave stores the editor text
func (h *Handlers) PutAutosave(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.desktop.Notepad().Autosave(c.Request.Context(), req.Content); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearAutosave empties the autosave slot
func (h *Handlers) ClearAutosave(c *gin.Context) {
	if err := h.desktop.Notepad().ClearAutosave(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

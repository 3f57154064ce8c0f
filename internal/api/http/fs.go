package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/LuminOS/backend/internal/providers/filemanager"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// ListFiles lists the children of a directory, directories first
func (h *Handlers) ListFiles(c *gin.Context) {
	parent := c.Query("parent")

	done := h.timer("vfs", "list")
	entries, err := h.desktop.FS().ListFiles(c.Request.Context(), parent)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	filemanager.SortEntries(entries)
	c.JSON(http.StatusOK, gin.H{
		"parent":  parent,
		"entries": entries,
	})
}

// ReadFile returns one entry with its content
func (h *Handlers) ReadFile(c *gin.Context) {
	path := c.Query("path")

	done := h.timer("vfs", "read")
	entry, err := h.desktop.FS().ReadFile(c.Request.Context(), path)
	if err == nil && entry == nil {
		err = fmt.Errorf("%w: %s", errNotFound, path)
	}
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// FileExists answers a HEAD request with 200 or 404 and no body
func (h *Handlers) FileExists(c *gin.Context) {
	exists, err := h.desktop.FS().FileExists(c.Request.Context(), c.Query("path"))
	if err != nil {
		c.Status(statusFor(err))
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// SaveFile creates or replaces a file
func (h *Handlers) SaveFile(c *gin.Context) {
	var req types.SaveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	done := h.timer("vfs", "save")
	entry, err := h.desktop.FS().SaveFile(c.Request.Context(), req.Path, req.Content, req.Type)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreateDirectory makes a directory, returning an existing one unchanged
func (h *Handlers) CreateDirectory(c *gin.Context) {
	var req types.DirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	done := h.timer("vfs", "mkdir")
	entry, err := h.desktop.FS().CreateDirectory(c.Request.Context(), req.Path)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteFile removes one entry, or a whole subtree with recursive=true
func (h *Handlers) DeleteFile(c *gin.Context) {
	path := c.Query("path")
	recursive, _ := strconv.ParseBool(c.DefaultQuery("recursive", "false"))

	ctx := c.Request.Context()
	done := h.timer("vfs", "delete")

	var (
		removed int
		err     error
	)
	if recursive {
		removed, err = h.desktop.Files().Delete(ctx, path)
	} else {
		var exists bool
		if exists, err = h.desktop.FS().FileExists(ctx, path); err == nil && exists {
			if err = h.desktop.FS().DeleteFile(ctx, path); err == nil {
				removed = 1
			}
		}
	}
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    path,
		"removed": removed,
	})
}

// SearchFiles matches a glob pattern against every path
func (h *Handlers) SearchFiles(c *gin.Context) {
	done := h.timer("vfs", "search")
	entries, err := h.desktop.Files().Search(c.Request.Context(), c.Query("pattern"))
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

type nameRequest struct {
	Name string `json:"name"`
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

// BrowseFiles lists the file manager's current directory
func (h *Handlers) BrowseFiles(c *gin.Context) {
	listing, err := h.desktop.Files().List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ChangeDir moves the file manager into a directory
func (h *Handlers) ChangeDir(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.desktop.Files().ChangeDir(c.Request.Context(), req.Path)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GoUp moves the file manager to the parent directory
func (h *Handlers) GoUp(c *gin.Context) {
	listing, err := h.desktop.Files().Up(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// CreateBrowserFile makes an empty file in the current directory
func (h *Handlers) CreateBrowserFile(c *gin.Context) {
	h.createInBrowser(c, h.desktop.Files().CreateFile)
}

// CreateBrowserFolder makes a folder in the current directory
func (h *Handlers) CreateBrowserFolder(c *gin.Context) {
	h.createInBrowser(c, h.desktop.Files().CreateFolder)
}

func (h *Handlers) createInBrowser(c *gin.Context, create func(ctx context.Context, name string) (*types.Entry, error)) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := create(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

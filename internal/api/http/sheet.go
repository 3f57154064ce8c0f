package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/sheet"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

type rawRequest struct {
	Raw string `json:"raw"`
}

// GetSheet returns the cells, display values and selection
func (h *Handlers) GetSheet(c *gin.Context) {
	c.JSON(http.StatusOK, h.desktop.Sheet().Snapshot())
}

// GetCell returns the raw content and display value of one cell
func (h *Handlers) GetCell(c *gin.Context) {
	id := c.Param("id")
	if !sheet.ValidCellID(id) {
		h.fail(c, sheet.ErrInvalidCell)
		return
	}

	s := h.desktop.Sheet()
	c.JSON(http.StatusOK, gin.H{
		"cell":  id,
		"raw":   s.Raw(id),
		"value": s.Value(id),
	})
}

// SetCell writes raw content into a named cell
func (h *Handlers) SetCell(c *gin.Context) {
	var req rawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	done := h.timer("sheet", "set")
	snap, err := h.desktop.Sheet().Set(c.Request.Context(), c.Param("id"), req.Raw)
	done(err)
	h.sheetResult(c, snap, err)
}

// SelectCell selects a cell and returns its raw content for editing
func (h *Handlers) SelectCell(c *gin.Context) {
	var req types.CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	raw, err := h.desktop.Sheet().Select(req.Cell)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cell": req.Cell, "raw": raw})
}

// CommitCell writes the edit surface into the selected cell
func (h *Handlers) CommitCell(c *gin.Context) {
	var req rawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	done := h.timer("sheet", "commit")
	snap, err := h.desktop.Sheet().Commit(c.Request.Context(), req.Raw)
	done(err)
	h.sheetResult(c, snap, err)
}

// ColumnSummary returns statistics over the numeric cells of a column
func (h *Handlers) ColumnSummary(c *gin.Context) {
	summary, err := h.desktop.Sheet().ColumnSummary(c.Param("col"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// sheetResult reports a write. A failed save still changed the sheet in
// memory, so the snapshot is sent along with the error.
func (h *Handlers) sheetResult(c *gin.Context, snap sheet.Snapshot, err error) {
	if err == nil {
		c.JSON(http.StatusOK, snap)
		return
	}
	if snap.Values == nil {
		h.fail(c, err)
		return
	}

	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"sheet": snap,
	})
}

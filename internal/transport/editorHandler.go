package transport

import (
	"net/http"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/fonts"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetEditor(c *gin.Context) {
	c.JSON(http.StatusOK, h.editor.View())
}

func (h *Handler) Undo(c *gin.Context) {
	c.JSON(http.StatusOK, h.editor.Undo(c.Request.Context()))
}

func (h *Handler) Redo(c *gin.Context) {
	c.JSON(http.StatusOK, h.editor.Redo(c.Request.Context()))
}

func (h *Handler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, h.editor.Reset(c.Request.Context()))
}

func (h *Handler) UploadBackground(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	view, err := h.uploads.UploadBackground(c.Request.Context(), file.Header.Get("Content-Type"), src)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) SetCanvasSize(c *gin.Context) {
	var size entity.CanvasSize
	if err := c.ShouldBindJSON(&size); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.editor.SetCanvasSize(c.Request.Context(), size))
}

func (h *Handler) Select(c *gin.Context) {
	var req entity.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.SelectLayer(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ToggleSelection(c *gin.Context) {
	var req entity.MultiSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.MultiSelectLayer(req.ID, req.Additive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) Nudge(c *gin.Context) {
	var req entity.NudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.NudgeSelection(c.Request.Context(), req.Direction, req.Coarse)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ListFonts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fonts": fonts.Catalog()})
}

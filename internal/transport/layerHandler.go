package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/gin-gonic/gin"
)

func (h *Handler) AddLayer(c *gin.Context) {
	var patch entity.LayerPatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	view, err := h.editor.AddTextLayer(c.Request.Context(), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) UpdateLayer(c *gin.Context) {
	var patch entity.LayerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.UpdateTextLayer(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) UpdateSelectedLayers(c *gin.Context) {
	var patch entity.LayerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.UpdateMultipleLayers(c.Request.Context(), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeleteLayer(c *gin.Context) {
	view, err := h.editor.DeleteTextLayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DuplicateLayer(c *gin.Context) {
	view, err := h.editor.DuplicateLayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) ToggleLock(c *gin.Context) {
	view, err := h.editor.ToggleLayerLock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) MoveLayer(c *gin.Context) {
	var req entity.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.MoveLayer(c.Request.Context(), c.Param("id"), *req.X, *req.Y)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) TransformLayer(c *gin.Context) {
	var req entity.TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.TransformLayer(c.Request.Context(), c.Param("id"), req.Width, req.Height, req.Rotation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ReorderLayers(c *gin.Context) {
	var req entity.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.editor.ReorderLayers(c.Request.Context(), *req.From, *req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

package transport

import (
	"fmt"
	"net/http"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/processor"
	"github.com/gin-gonic/gin"
)

func contentType(format string) string {
	if format == entity.FormatPDF {
		return "application/pdf"
	}
	return "image/png"
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}

// exportFormat treats a missing or empty format as png.
func exportFormat(c *gin.Context) string {
	if format := c.Query("format"); format != "" {
		return format
	}
	return entity.FormatPNG
}

func (h *Handler) Export(c *gin.Context) {
	format := exportFormat(c)

	data, err := h.exports.Render(c.Request.Context(), format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", attachment(processor.FileName(format)))
	c.Data(http.StatusOK, contentType(format), data)
}

func (h *Handler) EnqueueExport(c *gin.Context) {
	job, err := h.exports.Enqueue(c.Request.Context(), exportFormat(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, entity.ExportResponse{
		ID:     job.ID,
		Status: job.Status,
	})
}

func (h *Handler) GetExport(c *gin.Context) {
	job, err := h.exports.GetJob(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) DownloadExport(c *gin.Context) {
	job, file, err := h.exports.GetFile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	c.DataFromReader(http.StatusOK, -1, contentType(job.Format), file, map[string]string{
		"Content-Disposition": attachment(job.File),
	})
}

package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	editor   service.EditorService
	uploads  service.UploadService
	exports  service.ExportService
	upgrader websocket.Upgrader
}

func NewHandler(editor service.EditorService, uploads service.UploadService, exports service.ExportService) *Handler {
	return &Handler{
		editor:  editor,
		uploads: uploads,
		exports: exports,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrLayerNotFound),
		errors.Is(err, entity.ErrExportNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrLayerLocked),
		errors.Is(err, entity.ErrExportNotReady):
		return http.StatusConflict
	case errors.Is(err, entity.ErrIndexOutOfBounds),
		errors.Is(err, entity.ErrNoSelection),
		errors.Is(err, entity.ErrInvalidDirection),
		errors.Is(err, entity.ErrUnsupportedImage),
		errors.Is(err, entity.ErrImageDecode),
		errors.Is(err, entity.ErrNoBackground),
		errors.Is(err, entity.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unexpected error")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

package transport

import (
	"net/http"
	"time"

	"github.com/ds124wfegd/image-text-composer/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(h *Handler, requestTimeout time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "image-text-composer",
		})
	})

	api := router.Group("/api/v1")

	// The feed outlives any request timeout.
	api.GET("/ws", h.Feed)

	timed := api.Group("", middleware.Timeout(requestTimeout))
	{
		timed.GET("/editor", h.GetEditor)
		timed.POST("/editor/undo", h.Undo)
		timed.POST("/editor/redo", h.Redo)
		timed.POST("/editor/reset", h.Reset)

		layers := timed.Group("/layers")
		layers.POST("", h.AddLayer)
		layers.PATCH("", h.UpdateSelectedLayers)
		layers.POST("/reorder", h.ReorderLayers)
		layers.PATCH("/:id", h.UpdateLayer)
		layers.DELETE("/:id", h.DeleteLayer)
		layers.POST("/:id/duplicate", h.DuplicateLayer)
		layers.POST("/:id/lock", h.ToggleLock)
		layers.POST("/:id/move", h.MoveLayer)
		layers.POST("/:id/transform", h.TransformLayer)

		selection := timed.Group("/selection")
		selection.POST("", h.Select)
		selection.POST("/toggle", h.ToggleSelection)
		selection.POST("/nudge", h.Nudge)

		timed.POST("/background", h.UploadBackground)
		timed.PUT("/canvas", h.SetCanvasSize)
		timed.GET("/fonts", h.ListFonts)

		timed.GET("/export", h.Export)
		timed.POST("/exports", h.EnqueueExport)
		timed.GET("/exports/:id", h.GetExport)
		timed.GET("/exports/:id/file", h.DownloadExport)
	}

	return router
}

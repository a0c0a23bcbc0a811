// launching the server, persistence backend and export queue
package appServer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/image-text-composer/config"
	"github.com/ds124wfegd/image-text-composer/internal/database"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/fonts"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/kafka"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/postgres"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/processor"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/redis"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/storage"
	"github.com/ds124wfegd/image-text-composer/internal/service"
	"github.com/ds124wfegd/image-text-composer/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewSlot opens the persistence backend named by cfg.Persistence.Backend.
// The returned closer releases its connections.
func NewSlot(ctx context.Context, cfg *config.Config, fs storage.FileStorage) (database.Slot, io.Closer, error) {
	switch cfg.Persistence.Backend {
	case "", "file":
		return database.NewFileSlot(fs), nopCloser{}, nil
	case "redis":
		client, err := redis.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return database.NewRedisSlot(client), client, nil
	case "postgres":
		db, err := postgres.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return database.NewPostgresSlot(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}

func NewServer(cfg *config.Config) {
	ctx := context.Background()

	fileStorage := storage.NewFileStorage(cfg.Storage.BasePath)

	slot, slotCloser, err := NewSlot(ctx, cfg, fileStorage)
	if err != nil {
		logrus.Fatalf("failed to open %s persistence: %s", cfg.Persistence.Backend, err.Error())
	}
	defer slotCloser.Close()

	defaultCanvas := entity.CanvasSize{Width: cfg.Editor.CanvasWidth, Height: cfg.Editor.CanvasHeight}
	editorRepo, err := database.NewEditorRepository(slot, cfg.Persistence.Key, defaultCanvas)
	if err != nil {
		logrus.Fatalf("failed to create editor repository: %s", err.Error())
	}
	exportRepo := database.NewExportRepository(fileStorage)

	compositor := processor.NewCompositor(fonts.NewFaceCache())
	producer := kafka.NewProducer(cfg.Kafka, processor.NewExportProcessor(exportRepo, compositor))
	defer producer.Close()

	editorService := service.NewEditorService(ctx, editorRepo, cfg.Editor.HistoryCapacity, service.WithDefaultCanvas(defaultCanvas))
	uploadService := service.NewUploadService(editorService)
	exportService := service.NewExportService(editorService, compositor, exportRepo, producer)
	handler := transport.NewHandler(editorService, uploadService, exportService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handler, cfg.Server.Timeout)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"backend": cfg.Persistence.Backend,
	}).Info("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// export worker: renders queued exports from Kafka
package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ds124wfegd/image-text-composer/config"
	"github.com/ds124wfegd/image-text-composer/internal/database"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/fonts"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/processor"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kafkaCfg := config.KafkaConfig{
		Brokers: strings.Split(config.GetEnv("KAFKA_BROKERS", "localhost:9094"), ","),
		Topic:   config.GetEnv("KAFKA_TOPIC", "image-exports"),
		GroupID: config.GetEnv("KAFKA_GROUP_ID", "image-export-processor"),
	}

	repo := database.NewExportRepository(storage.NewFileStorage(config.GetEnv("STORAGE_PATH", "./storage")))
	exportProcessor := processor.NewExportProcessor(repo, processor.NewCompositor(fonts.NewFaceCache()))

	processor.StartExportConsumer(ctx, kafkaCfg, exportProcessor)
}

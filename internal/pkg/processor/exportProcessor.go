package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ds124wfegd/image-text-composer/config"
	"github.com/ds124wfegd/image-text-composer/internal/database"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const readBackoff = time.Second

// ExportProcessor renders a queued export job and records its outcome.
type ExportProcessor interface {
	Process(ctx context.Context, task entity.ExportTask) error
}

type exportProcessor struct {
	repo       database.ExportRepository
	compositor Compositor
}

func NewExportProcessor(repo database.ExportRepository, compositor Compositor) ExportProcessor {
	return &exportProcessor{repo: repo, compositor: compositor}
}

func (p *exportProcessor) Process(ctx context.Context, task entity.ExportTask) error {
	log := logrus.WithField("export_id", task.ExportID)
	log.Info("Processing export")

	job, err := p.repo.FindByID(task.ExportID)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	state, err := p.repo.LoadState(task.ExportID)
	if err == nil {
		var data []byte
		data, err = p.compositor.Render(state, job.Format)
		if err == nil {
			name := FileName(job.Format)
			err = p.repo.SaveFile(job.ID, name, bytes.NewReader(data))
			job.File = name
		}
	}

	job.UpdatedAt = time.Now()
	if err != nil {
		job.Status = entity.ExportStatusFailed
		job.Error = err.Error()
		job.File = ""
		log.WithError(err).Error("Export failed")
	} else {
		job.Status = entity.ExportStatusCompleted
		log.Info("Export completed")
	}

	if saveErr := p.repo.Save(job); saveErr != nil {
		return errors.Join(err, saveErr)
	}
	return err
}

// StartExportConsumer reads export tasks from Kafka until ctx is cancelled.
func StartExportConsumer(ctx context.Context, cfg config.KafkaConfig, processor ExportProcessor) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
	defer reader.Close()

	logrus.WithFields(logrus.Fields{
		"brokers": cfg.Brokers,
		"topic":   cfg.Topic,
	}).Info("Export consumer started")

	consumeExports(ctx, reader, processor, readBackoff)
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// consumeExports processes each task in its own goroutine and waits backoff
// after a failed read.
func consumeExports(ctx context.Context, reader messageReader, processor ExportProcessor, backoff time.Duration) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logrus.Info("Export consumer stopped")
				return
			}
			logrus.WithError(err).Error("Error reading message from Kafka")

			select {
			case <-ctx.Done():
				logrus.Info("Export consumer stopped")
				return
			case <-time.After(backoff):
			}
			continue
		}

		logrus.WithFields(logrus.Fields{
			"partition": msg.Partition,
			"offset":    msg.Offset,
		}).Debug("Received export task")

		var task entity.ExportTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			logrus.WithError(err).Warn("Failed to parse export task")
			continue
		}

		go func(t entity.ExportTask) {
			if err := processor.Process(ctx, t); err != nil {
				logrus.WithError(err).WithField("export_id", t.ExportID).Error("Processing failed")
			}
		}(task)
	}
}

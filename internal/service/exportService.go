package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ds124wfegd/image-text-composer/internal/database"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/kafka"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/processor"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type exportService struct {
	editor     EditorService
	compositor processor.Compositor
	repo       database.ExportRepository
	producer   kafka.Producer
}

func NewExportService(editor EditorService, compositor processor.Compositor, repo database.ExportRepository, producer kafka.Producer) ExportService {
	return &exportService{
		editor:     editor,
		compositor: compositor,
		repo:       repo,
		producer:   producer,
	}
}

func normalizeFormat(format string) (string, error) {
	switch format {
	case "", entity.FormatPNG:
		return entity.FormatPNG, nil
	case entity.FormatPDF:
		return entity.FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

func (s *exportService) Render(ctx context.Context, format string) ([]byte, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	state := s.editor.State()
	if state.BackgroundImage == nil {
		return nil, entity.ErrNoBackground
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.compositor.Render(state, format)
}

func (s *exportService) Enqueue(ctx context.Context, format string) (*entity.ExportJob, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	state := s.editor.State()
	if state.BackgroundImage == nil {
		return nil, entity.ErrNoBackground
	}

	now := time.Now()
	job := &entity.ExportJob{
		ID:        uuid.NewString(),
		Status:    entity.ExportStatusProcessing,
		Format:    format,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.SaveState(job.ID, state); err != nil {
		s.discard(job.ID)
		return nil, err
	}
	if err := s.repo.Save(job); err != nil {
		s.discard(job.ID)
		return nil, err
	}

	if err := s.producer.Publish(ctx, entity.ExportTask{ExportID: job.ID}); err != nil {
		s.discard(job.ID)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"export_id": job.ID,
		"format":    format,
	}).Info("Export queued")
	return job, nil
}

func (s *exportService) discard(id string) {
	if err := s.repo.Delete(id); err != nil {
		logrus.WithError(err).WithField("export_id", id).Error("Failed to remove export job")
	}
}

func (s *exportService) GetJob(id string) (*entity.ExportJob, error) {
	return s.repo.FindByID(id)
}

// GetFile returns the artifact of a completed export.
func (s *exportService) GetFile(id string) (*entity.ExportJob, io.ReadCloser, error) {
	job, err := s.repo.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != entity.ExportStatusCompleted || job.File == "" {
		return job, nil, fmt.Errorf("%w: %s is %s", entity.ErrExportNotReady, id, job.Status)
	}

	file, err := s.repo.GetFile(id, job.File)
	if err != nil {
		return nil, nil, err
	}
	return job, file, nil
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/processor"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

const pngMIME = "image/png"

type uploadService struct {
	editor EditorService
}

func NewUploadService(editor EditorService) UploadService {
	return &uploadService{editor: editor}
}

// UploadBackground checks and decodes a PNG before committing it as the
// background. Decoding happens outside the editor lock, so of two
// concurrent uploads the one that finishes last wins.
func (s *uploadService) UploadBackground(ctx context.Context, contentType string, file io.Reader) (entity.EditorView, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return entity.EditorView{}, fmt.Errorf("%w: %v", entity.ErrImageDecode, err)
	}

	declared := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if declared != "" && declared != pngMIME && declared != "application/octet-stream" {
		return entity.EditorView{}, entity.ErrUnsupportedImage
	}

	if detected := mimetype.Detect(data); !detected.Is(pngMIME) {
		logrus.WithField("detected", detected.String()).Warn("Rejected non-PNG upload")
		return entity.EditorView{}, entity.ErrUnsupportedImage
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return entity.EditorView{}, fmt.Errorf("%w: %v", entity.ErrImageDecode, err)
	}

	size := entity.CanvasSize{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	logrus.WithFields(logrus.Fields{
		"size":   len(data),
		"width":  size.Width,
		"height": size.Height,
	}).Info("Background image uploaded")

	return s.editor.SetBackground(ctx, processor.EncodeDataURL(data), size), nil
}

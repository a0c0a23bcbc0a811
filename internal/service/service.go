package service

import (
	"context"
	"io"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
)

// EditorService is the only entry point for operations that change the editor.
type EditorService interface {
	View() entity.EditorView
	State() entity.EditorState

	AddTextLayer(ctx context.Context, patch *entity.LayerPatch) (entity.EditorView, error)
	UpdateTextLayer(ctx context.Context, id string, patch entity.LayerPatch) (entity.EditorView, error)
	DeleteTextLayer(ctx context.Context, id string) (entity.EditorView, error)
	ReorderLayers(ctx context.Context, from, to int) (entity.EditorView, error)
	DuplicateLayer(ctx context.Context, id string) (entity.EditorView, error)
	ToggleLayerLock(ctx context.Context, id string) (entity.EditorView, error)
	UpdateMultipleLayers(ctx context.Context, patch entity.LayerPatch) (entity.EditorView, error)

	MoveLayer(ctx context.Context, id string, x, y float64) (entity.EditorView, error)
	TransformLayer(ctx context.Context, id string, width, height, rotation float64) (entity.EditorView, error)
	NudgeSelection(ctx context.Context, direction string, coarse bool) (entity.EditorView, error)

	SelectLayer(id string) (entity.EditorView, error)
	MultiSelectLayer(id string, additive bool) (entity.EditorView, error)

	Undo(ctx context.Context) entity.EditorView
	Redo(ctx context.Context) entity.EditorView
	Reset(ctx context.Context) entity.EditorView

	SetBackground(ctx context.Context, ref string, size entity.CanvasSize) entity.EditorView
	SetCanvasSize(ctx context.Context, size entity.CanvasSize) entity.EditorView

	// Subscribe returns a feed of views published after every change and a
	// function that ends the subscription.
	Subscribe() (<-chan entity.EditorView, func())
}

type UploadService interface {
	UploadBackground(ctx context.Context, contentType string, file io.Reader) (entity.EditorView, error)
}

type ExportService interface {
	Render(ctx context.Context, format string) ([]byte, error)
	Enqueue(ctx context.Context, format string) (*entity.ExportJob, error)
	GetJob(id string) (*entity.ExportJob, error)
	GetFile(id string) (*entity.ExportJob, io.ReadCloser, error)
}

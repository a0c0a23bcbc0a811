package database

import (
	"context"
	"errors"
	"io"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
)

// ErrSlotEmpty is returned by Slot.Get when nothing is stored under the key.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a durable key-value cell holding one serialized document.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// EditorRepository persists the editor state under a single key.
type EditorRepository interface {
	Save(ctx context.Context, state entity.EditorState) error
	Load(ctx context.Context) entity.EditorState
	Clear(ctx context.Context) error
}

type ExportRepository interface {
	Save(job *entity.ExportJob) error
	FindByID(id string) (*entity.ExportJob, error)
	Delete(id string) error
	SaveState(id string, state entity.EditorState) error
	LoadState(id string) (entity.EditorState, error)
	SaveFile(id string, name string, file io.Reader) error
	GetFile(id string, name string) (io.ReadCloser, error)
}

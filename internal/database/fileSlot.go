package database

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ds124wfegd/image-text-composer/internal/pkg/storage"
)

type fileSlot struct {
	storage storage.FileStorage
}

func NewFileSlot(storage storage.FileStorage) Slot {
	return &fileSlot{storage: storage}
}

func (s *fileSlot) Get(_ context.Context, key string) ([]byte, error) {
	reader, err := s.storage.Get(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (s *fileSlot) Set(_ context.Context, key string, value []byte) error {
	return s.storage.Save(s.path(key), bytes.NewReader(value))
}

func (s *fileSlot) Delete(_ context.Context, key string) error {
	return s.storage.Delete(s.path(key))
}

func (s *fileSlot) path(key string) string {
	return filepath.Join("slots", filepath.Base(key)+".json")
}

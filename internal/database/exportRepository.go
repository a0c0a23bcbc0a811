package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/storage"
)

// Export jobs live under exports/<id>/: job.json (metadata), state.json
// (the editor state captured at enqueue time) and the rendered artifact.
type fileExportRepository struct {
	storage storage.FileStorage
}

func NewExportRepository(storage storage.FileStorage) ExportRepository {
	return &fileExportRepository{storage: storage}
}

func (r *fileExportRepository) Save(job *entity.ExportJob) error {
	path, err := r.path(job.ID, "job.json")
	if err != nil {
		return err
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return r.storage.Save(path, bytes.NewReader(data))
}

func (r *fileExportRepository) FindByID(id string) (*entity.ExportJob, error) {
	path, err := r.path(id, "job.json")
	if err != nil {
		return nil, err
	}

	reader, err := r.storage.Get(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrExportNotFound, id)
		}
		return nil, err
	}
	defer reader.Close()

	var job entity.ExportJob
	if err := json.NewDecoder(reader).Decode(&job); err != nil {
		return nil, err
	}

	return &job, nil
}

// Delete removes the job with its captured state and artifact.
func (r *fileExportRepository) Delete(id string) error {
	dir, err := r.dir(id)
	if err != nil {
		return err
	}
	return r.storage.Delete(dir)
}

func (r *fileExportRepository) SaveState(id string, state entity.EditorState) error {
	path, err := r.path(id, "state.json")
	if err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return r.storage.Save(path, bytes.NewReader(data))
}

func (r *fileExportRepository) LoadState(id string) (entity.EditorState, error) {
	path, err := r.path(id, "state.json")
	if err != nil {
		return entity.EditorState{}, err
	}

	reader, err := r.storage.Get(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entity.EditorState{}, fmt.Errorf("%w: %s", entity.ErrExportNotFound, id)
		}
		return entity.EditorState{}, err
	}
	defer reader.Close()

	var state entity.EditorState
	if err := json.NewDecoder(reader).Decode(&state); err != nil {
		return entity.EditorState{}, err
	}
	return state, nil
}

func (r *fileExportRepository) SaveFile(id string, name string, file io.Reader) error {
	path, err := r.path(id, name)
	if err != nil {
		return err
	}
	return r.storage.Save(path, file)
}

func (r *fileExportRepository) GetFile(id string, name string) (io.ReadCloser, error) {
	path, err := r.path(id, name)
	if err != nil {
		return nil, err
	}

	reader, err := r.storage.Get(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s/%s", entity.ErrExportNotFound, id, name)
	}
	return reader, err
}

// dir maps an id to its job directory. Ids must be a single path element.
func (r *fileExportRepository) dir(id string) (string, error) {
	if !isPathElement(id) {
		return "", fmt.Errorf("%w: invalid id %q", entity.ErrExportNotFound, id)
	}
	return filepath.Join("exports", id), nil
}

func (r *fileExportRepository) path(id, name string) (string, error) {
	dir, err := r.dir(id)
	if err != nil {
		return "", err
	}
	if !isPathElement(name) {
		return "", fmt.Errorf("invalid export file name %q", name)
	}
	return filepath.Join(dir, name), nil
}

func isPathElement(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

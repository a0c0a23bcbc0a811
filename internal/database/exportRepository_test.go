package database

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRepository(t *testing.T) {
	repo := NewExportRepository(storage.NewFileStorage(t.TempDir()))

	_, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, entity.ErrExportNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	job := &entity.ExportJob{ID: "job-1", Status: entity.ExportStatusProcessing, Format: entity.FormatPNG, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Save(job))

	found, err := repo.FindByID("job-1")
	require.NoError(t, err)
	assert.Equal(t, job, found)

	state := sampleState(nil)
	require.NoError(t, repo.SaveState("job-1", state))
	loaded, err := repo.LoadState("job-1")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	require.NoError(t, repo.SaveFile("job-1", "export.png", strings.NewReader("png-bytes")))
	r, err := repo.GetFile("job-1", "export.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(r)
	r.Close()
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, repo.Delete("job-1"))
	_, err = repo.GetFile("job-1", "export.png")
	assert.ErrorIs(t, err, entity.ErrExportNotFound)
	_, err = repo.LoadState("job-1")
	assert.ErrorIs(t, err, entity.ErrExportNotFound)
}

func TestExportRepositoryRejectsPathIDs(t *testing.T) {
	dir := t.TempDir()
	fs := storage.NewFileStorage(dir)
	require.NoError(t, fs.Save("exports/job-1/job.json", strings.NewReader(`{"id":"job-1"}`)))
	repo := NewExportRepository(fs)

	for _, id := range []string{"", ".", "..", "../exports", "exports/job-1", `..\job-1`} {
		t.Run(id, func(t *testing.T) {
			_, err := repo.FindByID(id)
			assert.ErrorIs(t, err, entity.ErrExportNotFound)

			err = repo.Delete(id)
			assert.ErrorIs(t, err, entity.ErrExportNotFound)

			err = repo.Save(&entity.ExportJob{ID: id})
			assert.ErrorIs(t, err, entity.ErrExportNotFound)
		})
	}

	_, err := repo.GetFile("job-1", "../job.json")
	assert.Error(t, err)

	found, err := repo.FindByID("job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", found.ID)
}

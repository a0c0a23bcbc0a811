package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"
)

const DefaultEditorKey = "imageTextComposer"

type editorRepository struct {
	slot          Slot
	key           string
	defaultCanvas entity.CanvasSize
	schema        *jsonschema.Schema
}

func NewEditorRepository(slot Slot, key string, defaultCanvas entity.CanvasSize) (EditorRepository, error) {
	if key == "" {
		key = DefaultEditorKey
	}
	if defaultCanvas.Width <= 0 || defaultCanvas.Height <= 0 {
		defaultCanvas = entity.DefaultCanvasSize()
	}

	schema, err := compileEditorStateSchema()
	if err != nil {
		return nil, fmt.Errorf("compile editor state schema: %w", err)
	}

	return &editorRepository{
		slot:          slot,
		key:           key,
		defaultCanvas: defaultCanvas,
		schema:        schema,
	}, nil
}

// Save overwrites the slot with the full state.
func (r *editorRepository) Save(ctx context.Context, state entity.EditorState) error {
	if state.TextLayers == nil {
		state.TextLayers = []entity.TextLayer{}
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal editor state: %w", err)
	}

	if err := r.slot.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("write slot %q: %w", r.key, err)
	}
	return nil
}

// Load never fails: a missing, unreadable or malformed slot yields the default state.
func (r *editorRepository) Load(ctx context.Context) entity.EditorState {
	data, err := r.slot.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			logrus.WithError(err).WithField("key", r.key).Warn("failed to read saved editor state")
		}
		return r.defaults()
	}

	state, err := r.decode(data)
	if err != nil {
		logrus.WithError(err).WithField("key", r.key).Warn("error loading saved state, using defaults")
		return r.defaults()
	}
	return state
}

func (r *editorRepository) Clear(ctx context.Context) error {
	if err := r.slot.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("delete slot %q: %w", r.key, err)
	}
	return nil
}

func (r *editorRepository) decode(data []byte) (entity.EditorState, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return entity.EditorState{}, err
	}
	if err := r.schema.Validate(doc); err != nil {
		return entity.EditorState{}, err
	}

	var state entity.EditorState
	if err := json.Unmarshal(data, &state); err != nil {
		return entity.EditorState{}, err
	}

	if state.TextLayers == nil {
		state.TextLayers = []entity.TextLayer{}
	}
	if state.CanvasSize.Width <= 0 || state.CanvasSize.Height <= 0 {
		state.CanvasSize = r.defaultCanvas
	}
	return state, nil
}

func (r *editorRepository) defaults() entity.EditorState {
	state := entity.DefaultEditorState()
	state.CanvasSize = r.defaultCanvas
	return state
}

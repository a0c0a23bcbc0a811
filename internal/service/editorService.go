package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/ds124wfegd/image-text-composer/internal/database"
	"github.com/ds124wfegd/image-text-composer/internal/editor"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 8

type editorService struct {
	mu sync.Mutex

	store   *editor.LayerStore
	history *editor.HistoryLog
	repo    database.EditorRepository
	newID   func() string

	background    *string
	canvas        entity.CanvasSize
	defaultCanvas entity.CanvasSize

	subscribers map[int]chan entity.EditorView
	nextSubID   int
}

type EditorOption func(*editorService)

// WithIDGenerator replaces the uuid-based layer id generator.
func WithIDGenerator(newID func() string) EditorOption {
	return func(s *editorService) {
		s.newID = newID
	}
}

func WithDefaultCanvas(size entity.CanvasSize) EditorOption {
	return func(s *editorService) {
		if size.Width > 0 && size.Height > 0 {
			s.defaultCanvas = size
		}
	}
}

// NewEditorService restores the last saved state from repo. History starts empty.
func NewEditorService(ctx context.Context, repo database.EditorRepository, historyCapacity int, opts ...EditorOption) EditorService {
	s := &editorService{
		store:         editor.NewLayerStore(),
		history:       editor.NewHistoryLog(historyCapacity),
		repo:          repo,
		newID:         uuid.NewString,
		defaultCanvas: entity.DefaultCanvasSize(),
		subscribers:   make(map[int]chan entity.EditorView),
	}
	for _, opt := range opts {
		opt(s)
	}

	state := repo.Load(ctx)
	s.store.Restore(state.TextLayers, "")
	s.background = state.BackgroundImage
	s.canvas = state.CanvasSize

	logrus.WithFields(logrus.Fields{
		"layers":         len(state.TextLayers),
		"has_background": state.BackgroundImage != nil,
	}).Info("Editor state restored")

	return s
}

func (s *editorService) View() entity.EditorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *editorService) State() entity.EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *editorService) AddTextLayer(ctx context.Context, patch *entity.LayerPatch) (entity.EditorView, error) {
	return s.record(ctx, "add", func() error {
		layer := entity.NewTextLayer(s.newID())
		if patch != nil {
			layer = patch.Apply(layer)
		}
		s.store.Add(layer)
		return nil
	})
}

func (s *editorService) UpdateTextLayer(ctx context.Context, id string, patch entity.LayerPatch) (entity.EditorView, error) {
	return s.record(ctx, "update", func() error {
		return s.store.Update(id, patch)
	})
}

func (s *editorService) DeleteTextLayer(ctx context.Context, id string) (entity.EditorView, error) {
	return s.record(ctx, "delete", func() error {
		return s.store.Remove(id)
	})
}

func (s *editorService) ReorderLayers(ctx context.Context, from, to int) (entity.EditorView, error) {
	return s.record(ctx, "reorder", func() error {
		return s.store.Reorder(from, to)
	})
}

func (s *editorService) DuplicateLayer(ctx context.Context, id string) (entity.EditorView, error) {
	return s.record(ctx, "duplicate", func() error {
		_, err := s.store.Duplicate(id, s.newID())
		return err
	})
}

func (s *editorService) ToggleLayerLock(ctx context.Context, id string) (entity.EditorView, error) {
	return s.record(ctx, "toggle_lock", func() error {
		return s.store.ToggleLock(id)
	})
}

func (s *editorService) UpdateMultipleLayers(ctx context.Context, patch entity.LayerPatch) (entity.EditorView, error) {
	return s.record(ctx, "update_many", func() error {
		s.store.UpdateMany(s.store.SelectedIDs(), patch)
		return nil
	})
}

// MoveLayer commits the end of a drag, snapping each axis to the canvas center.
func (s *editorService) MoveLayer(ctx context.Context, id string, x, y float64) (entity.EditorView, error) {
	return s.record(ctx, "move", func() error {
		if err := s.checkUnlocked(id); err != nil {
			return err
		}
		x, y = editor.SnapToCenter(x, y, s.canvas)
		return s.store.Update(id, entity.LayerPatch{X: &x, Y: &y})
	})
}

// TransformLayer commits the end of a resize or rotation.
func (s *editorService) TransformLayer(ctx context.Context, id string, width, height, rotation float64) (entity.EditorView, error) {
	return s.record(ctx, "transform", func() error {
		if err := s.checkUnlocked(id); err != nil {
			return err
		}
		width, height = editor.ClampDimensions(width, height)
		return s.store.Update(id, entity.LayerPatch{Width: &width, Height: &height, Rotation: &rotation})
	})
}

func (s *editorService) NudgeSelection(ctx context.Context, direction string, coarse bool) (entity.EditorView, error) {
	return s.record(ctx, "nudge", func() error {
		dx, dy, ok := editor.NudgeDelta(direction, coarse)
		if !ok {
			return fmt.Errorf("%w: %q", entity.ErrInvalidDirection, direction)
		}

		id := s.store.Selected()
		if id == "" {
			return entity.ErrNoSelection
		}
		layer, err := s.store.Get(id)
		if err != nil {
			return err
		}
		if layer.IsLocked {
			return fmt.Errorf("%w: %s", entity.ErrLayerLocked, id)
		}

		x, y := layer.X+dx, layer.Y+dy
		return s.store.Update(id, entity.LayerPatch{X: &x, Y: &y})
	})
}

func (s *editorService) SelectLayer(id string) (entity.EditorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Select(id); err != nil {
		return s.viewLocked(), err
	}
	s.notifyLocked()
	return s.viewLocked(), nil
}

func (s *editorService) MultiSelectLayer(id string, additive bool) (entity.EditorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.MultiSelect(id, additive); err != nil {
		return s.viewLocked(), err
	}
	s.notifyLocked()
	return s.viewLocked(), nil
}

func (s *editorService) Undo(ctx context.Context) entity.EditorView {
	return s.travel(ctx, "undo", s.history.Undo)
}

func (s *editorService) Redo(ctx context.Context) entity.EditorView {
	return s.travel(ctx, "redo", s.history.Redo)
}

func (s *editorService) Reset(ctx context.Context) entity.EditorView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear()
	s.history.Clear()
	s.background = nil
	s.canvas = s.defaultCanvas

	if err := s.repo.Clear(context.WithoutCancel(ctx)); err != nil {
		logrus.WithError(err).Warn("Failed to clear saved editor state")
	}

	logrus.Info("Editor reset")
	s.notifyLocked()
	return s.viewLocked()
}

// SetBackground replaces the background image and canvas size. Neither is
// part of the undo history.
func (s *editorService) SetBackground(ctx context.Context, ref string, size entity.CanvasSize) entity.EditorView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.background = &ref
	s.canvas = size
	s.saveLocked(ctx)
	s.notifyLocked()
	return s.viewLocked()
}

func (s *editorService) SetCanvasSize(ctx context.Context, size entity.CanvasSize) entity.EditorView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.canvas = size
	s.saveLocked(ctx)
	s.notifyLocked()
	return s.viewLocked()
}

func (s *editorService) Subscribe() (<-chan entity.EditorView, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan entity.EditorView, subscriberBuffer)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
	return ch, cancel
}

// record runs one history-tracked mutation. A failed mutation leaves
// history and the saved state untouched.
func (s *editorService) record(ctx context.Context, op string, mutate func() error) (entity.EditorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.store.Snapshot()
	if err := mutate(); err != nil {
		logrus.WithError(err).WithField("op", op).Debug("Editor operation rejected")
		return s.viewLocked(), err
	}

	// The first entry of an empty log is the state before the first edit,
	// so that edit can be undone too.
	if s.history.IsEmpty() {
		s.history.Push(before)
	}
	s.history.Push(s.store.Snapshot())

	s.saveLocked(ctx)
	s.notifyLocked()
	return s.viewLocked(), nil
}

func (s *editorService) travel(ctx context.Context, op string, move func() (entity.HistorySnapshot, bool)) entity.EditorView {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := move()
	if !ok {
		return s.viewLocked()
	}

	s.store.Restore(snapshot.Layers, snapshot.SelectedLayerID)
	logrus.WithFields(logrus.Fields{
		"op":     op,
		"cursor": s.history.Cursor(),
	}).Debug("History moved")

	s.saveLocked(ctx)
	s.notifyLocked()
	return s.viewLocked()
}

func (s *editorService) checkUnlocked(id string) error {
	layer, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if layer.IsLocked {
		return fmt.Errorf("%w: %s", entity.ErrLayerLocked, id)
	}
	return nil
}

// saveLocked writes the full state. Failures are logged and otherwise ignored.
func (s *editorService) saveLocked(ctx context.Context) {
	if err := s.repo.Save(context.WithoutCancel(ctx), s.stateLocked()); err != nil {
		logrus.WithError(err).Warn("Failed to save editor state")
	}
}

func (s *editorService) notifyLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	view := s.viewLocked()
	for id, ch := range s.subscribers {
		select {
		case ch <- view:
		default:
			logrus.WithField("subscriber", id).Debug("Subscriber is behind, dropping view")
		}
	}
}

func (s *editorService) stateLocked() entity.EditorState {
	state := entity.EditorState{
		TextLayers: s.store.Layers(),
		CanvasSize: s.canvas,
	}
	if s.background != nil {
		bg := *s.background
		state.BackgroundImage = &bg
	}
	return state
}

func (s *editorService) viewLocked() entity.EditorView {
	state := s.stateLocked()
	selectedIDs := s.store.SelectedIDs()

	for i := range state.TextLayers {
		id := state.TextLayers[i].ID
		state.TextLayers[i].IsSelected = id == s.store.Selected() || containsID(selectedIDs, id)
	}

	view := entity.EditorView{
		BackgroundImage:  state.BackgroundImage,
		TextLayers:       state.TextLayers,
		SelectedLayerIDs: selectedIDs,
		CanvasSize:       state.CanvasSize,
		CanUndo:          s.history.CanUndo(),
		CanRedo:          s.history.CanRedo(),
		HistoryIndex:     s.history.Cursor(),
		HistoryLength:    s.history.Len(),
	}
	if selected := s.store.Selected(); selected != "" {
		view.SelectedLayerID = &selected
	}
	return view
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

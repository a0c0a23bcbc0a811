// Package editor holds the canonical text layer list, the selection and the undo log.
package editor

import (
	"fmt"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
)

const DuplicateOffset = 20

// LayerStore owns the ordered layer sequence (paint order) and the selection.
// It is not safe for concurrent use.
type LayerStore struct {
	layers   []entity.TextLayer
	selected string
	multi    []string
}

func NewLayerStore() *LayerStore {
	return &LayerStore{layers: []entity.TextLayer{}}
}

func (s *LayerStore) Layers() []entity.TextLayer {
	return entity.CloneLayers(s.layers)
}

func (s *LayerStore) Len() int {
	return len(s.layers)
}

// Selected returns the primary selection, "" when nothing is selected.
func (s *LayerStore) Selected() string {
	return s.selected
}

func (s *LayerStore) SelectedIDs() []string {
	return append([]string{}, s.multi...)
}

func (s *LayerStore) Get(id string) (entity.TextLayer, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.TextLayer{}, fmt.Errorf("%w: %s", entity.ErrLayerNotFound, id)
	}
	return s.layers[i].Clone(), nil
}

// Add appends the layer on top of the z-order and makes it the sole selection.
func (s *LayerStore) Add(layer entity.TextLayer) {
	s.layers = append(s.layers, layer.Clone())
	s.selectOnly(layer.ID)
}

func (s *LayerStore) Update(id string, patch entity.LayerPatch) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", entity.ErrLayerNotFound, id)
	}
	s.layers[i] = patch.Apply(s.layers[i])
	return nil
}

// UpdateMany applies the same patch to every layer whose id is in ids.
// Ids without a matching layer are ignored.
func (s *LayerStore) UpdateMany(ids []string, patch entity.LayerPatch) int {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	updated := 0
	for i := range s.layers {
		if _, ok := wanted[s.layers[i].ID]; ok {
			s.layers[i] = patch.Apply(s.layers[i])
			updated++
		}
	}
	return updated
}

func (s *LayerStore) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", entity.ErrLayerNotFound, id)
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)

	if s.selected == id {
		s.selected = ""
	}
	s.multi = without(s.multi, id)
	return nil
}

// Reorder moves the layer at from to position to, shifting the layers in between.
func (s *LayerStore) Reorder(from, to int) error {
	n := len(s.layers)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: from=%d to=%d len=%d", entity.ErrIndexOutOfBounds, from, to, n)
	}
	if from == to {
		return nil
	}

	moved := s.layers[from]
	if from < to {
		copy(s.layers[from:to], s.layers[from+1:to+1])
	} else {
		copy(s.layers[to+1:from+1], s.layers[to:from])
	}
	s.layers[to] = moved
	return nil
}

// Duplicate clones the layer under newID, offset by DuplicateOffset on both axes,
// and puts the copy on top with sole selection.
func (s *LayerStore) Duplicate(id, newID string) (entity.TextLayer, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.TextLayer{}, fmt.Errorf("%w: %s", entity.ErrLayerNotFound, id)
	}

	clone := s.layers[i].Clone()
	clone.ID = newID
	clone.X += DuplicateOffset
	clone.Y += DuplicateOffset

	s.Add(clone)
	return clone.Clone(), nil
}

func (s *LayerStore) ToggleLock(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", entity.ErrLayerNotFound, id)
	}
	s.layers[i].IsLocked = !s.layers[i].IsLocked
	return nil
}

// Select sets the primary selection. An empty id clears the selection.
func (s *LayerStore) Select(id string) error {
	if id == "" {
		s.selected = ""
		s.multi = nil
		return nil
	}
	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", entity.ErrLayerNotFound, id)
	}
	s.selectOnly(id)
	return nil
}

// MultiSelect toggles id in the multi-selection when additive is set,
// otherwise collapses the selection to exactly id.
func (s *LayerStore) MultiSelect(id string, additive bool) error {
	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", entity.ErrLayerNotFound, id)
	}
	if !additive {
		s.selectOnly(id)
		return nil
	}

	if contains(s.multi, id) {
		s.multi = without(s.multi, id)
	} else {
		s.multi = append(s.multi, id)
	}
	return nil
}

// Restore replaces layers and primary selection, e.g. from a history snapshot.
// The multi-selection collapses to the primary selection.
func (s *LayerStore) Restore(layers []entity.TextLayer, selected string) {
	s.layers = entity.CloneLayers(layers)
	s.multi = nil
	s.selected = ""
	if selected != "" && s.indexOf(selected) >= 0 {
		s.selectOnly(selected)
	}
}

func (s *LayerStore) Snapshot() entity.HistorySnapshot {
	return entity.HistorySnapshot{
		Layers:          s.Layers(),
		SelectedLayerID: s.selected,
	}
}

func (s *LayerStore) Clear() {
	s.layers = []entity.TextLayer{}
	s.selected = ""
	s.multi = nil
}

func (s *LayerStore) selectOnly(id string) {
	s.selected = id
	s.multi = []string{id}
}

func (s *LayerStore) indexOf(id string) int {
	for i := range s.layers {
		if s.layers[i].ID == id {
			return i
		}
	}
	return -1
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

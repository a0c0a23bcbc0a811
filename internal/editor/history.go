package editor

import "github.com/ds124wfegd/image-text-composer/internal/entity"

const DefaultHistoryCapacity = 20

// HistoryLog is a bounded linear undo/redo log of full snapshots.
// The cursor always points at the snapshot of the visible state.
type HistoryLog struct {
	snapshots []entity.HistorySnapshot
	cursor    int
	capacity  int
}

func NewHistoryLog(capacity int) *HistoryLog {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &HistoryLog{cursor: -1, capacity: capacity}
}

// Push drops the redo branch, appends the snapshot and moves the cursor onto it.
// The oldest snapshot is evicted once the log exceeds its capacity.
func (h *HistoryLog) Push(snapshot entity.HistorySnapshot) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snapshot.Clone())
	if len(h.snapshots) > h.capacity {
		h.snapshots[0] = entity.HistorySnapshot{}
		h.snapshots = h.snapshots[1:]
	}
	h.cursor = len(h.snapshots) - 1
}

func (h *HistoryLog) Undo() (entity.HistorySnapshot, bool) {
	if !h.CanUndo() {
		return entity.HistorySnapshot{}, false
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), true
}

func (h *HistoryLog) Redo() (entity.HistorySnapshot, bool) {
	if !h.CanRedo() {
		return entity.HistorySnapshot{}, false
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), true
}

func (h *HistoryLog) CanUndo() bool {
	return h.cursor > 0
}

func (h *HistoryLog) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Cursor is -1 for an empty log.
func (h *HistoryLog) Cursor() int {
	return h.cursor
}

func (h *HistoryLog) Len() int {
	return len(h.snapshots)
}

func (h *HistoryLog) Capacity() int {
	return h.capacity
}

func (h *HistoryLog) IsEmpty() bool {
	return len(h.snapshots) == 0
}

func (h *HistoryLog) Clear() {
	h.snapshots = nil
	h.cursor = -1
}

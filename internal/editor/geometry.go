package editor

import (
	"math"

	"github.com/ds124wfegd/image-text-composer/internal/entity"
)

const (
	SnapThreshold   = 20
	MinDimension    = 5
	NudgeStep       = 1
	NudgeCoarseStep = 10
)

// SnapToCenter snaps each axis to the canvas center when it lands
// closer than SnapThreshold to it.
func SnapToCenter(x, y float64, canvas entity.CanvasSize) (float64, float64) {
	centerX := float64(canvas.Width) / 2
	centerY := float64(canvas.Height) / 2

	if math.Abs(x-centerX) < SnapThreshold {
		x = centerX
	}
	if math.Abs(y-centerY) < SnapThreshold {
		y = centerY
	}
	return x, y
}

// ClampDimensions applies the minimum size a resize may produce.
func ClampDimensions(width, height float64) (float64, float64) {
	if width < MinDimension {
		width = MinDimension
	}
	if height < MinDimension {
		height = MinDimension
	}
	return width, height
}

// NudgeDelta returns the offset for an arrow-key nudge. Unknown directions yield ok=false.
func NudgeDelta(direction string, coarse bool) (dx, dy float64, ok bool) {
	step := float64(NudgeStep)
	if coarse {
		step = NudgeCoarseStep
	}

	switch direction {
	case "left":
		return -step, 0, true
	case "right":
		return step, 0, true
	case "up":
		return 0, -step, true
	case "down":
		return 0, step, true
	default:
		return 0, 0, false
	}
}

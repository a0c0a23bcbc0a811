package entity

import "errors"

var (
	// Layer errors
	ErrLayerNotFound    = errors.New("layer not found")
	ErrIndexOutOfBounds = errors.New("layer index out of bounds")
	ErrLayerLocked      = errors.New("layer is locked")
	ErrNoSelection      = errors.New("no layer selected")
	ErrInvalidDirection = errors.New("invalid nudge direction")

	// Image errors
	ErrUnsupportedImage = errors.New("please upload a PNG image only")
	ErrImageDecode      = errors.New("failed to load the image")
	ErrNoBackground     = errors.New("no background image to export")

	// Export errors
	ErrExportNotFound    = errors.New("export not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrExportNotReady    = errors.New("export is not ready")
)

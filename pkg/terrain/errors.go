package terrain

import "errors"

// Precondition errors. Every one of these means the caller passed inputs
// outside the documented contract; generation is never attempted.
var (
	ErrInvalidDimensions = errors.New("invalid tile dimensions")
	ErrInvalidParameters = errors.New("invalid generation parameters")
	ErrInvalidLakeRadius = errors.New("invalid lake radius")
	ErrUnknownPreset     = errors.New("unknown terrain preset")
	ErrInvalidLayers     = errors.New("invalid layer binding")
)

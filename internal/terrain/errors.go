package terrain

import "errors"

var (
	// ErrInvalidParameter reports a configuration value outside its accepted range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDimensionMismatch reports a grid whose size does not fit the requested LOD stride.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

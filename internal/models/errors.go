package models

import "errors"

var (
	// ErrInvalidFrameShape reports a zero-size frame, a buffer whose length
	// does not match the dimensions, or a frame too small for an operator.
	ErrInvalidFrameShape = errors.New("invalid frame shape")

	// ErrInvalidParameter reports a negative or non-finite gaussian width or
	// a non-positive scan range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedMode reports a background mode that is not recognized.
	// Projection modes fall back to "re" instead.
	ErrUnsupportedMode = errors.New("unsupported mode")
)

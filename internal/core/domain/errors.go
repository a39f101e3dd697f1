package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSection indicates a section outside the fixed section set
	ErrUnknownSection = errors.New("unknown section")

	// ErrInvalidPath indicates a nested sub-path that is empty or deeper than two levels
	ErrInvalidPath = errors.New("invalid path")

	// ErrIndexOutOfRange indicates an array index outside the current array bounds
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotArray indicates an array operation on a field that holds a non-array value
	ErrNotArray = errors.New("field is not an array")

	// ErrShapeMismatch indicates a write that would change a field between scalar, object and array
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrMalformedDocument indicates content that failed to parse or validate
	ErrMalformedDocument = errors.New("malformed document")

	// ErrSourceUnavailable indicates a content tier could not be reached
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrQuotaExceeded indicates the cache refused a payload for its size
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrPublisherDisabled indicates the automation hook has no credential configured
	ErrPublisherDisabled = errors.New("publisher disabled")
)

package mmapio

import "errors"

var (
	// ErrEmptyPath is returned when an empty path is passed to a map call.
	ErrEmptyPath = errors.New("mmapio: empty path")
	// ErrInvalidHandle is returned when a nil *os.File is passed to a map call.
	ErrInvalidHandle = errors.New("mmapio: invalid file handle")
	// ErrInvalidOffset is returned for a negative offset.
	ErrInvalidOffset = errors.New("mmapio: invalid offset")
	// ErrInvalidLength is returned for a negative length.
	ErrInvalidLength = errors.New("mmapio: invalid length")
	// ErrOutOfRange is returned when offset+length exceeds the file size, or
	// when a requested sub-view falls outside the mapped range.
	ErrOutOfRange = errors.New("mmapio: out of range")
	// ErrNotMapped is returned when an operation requires an established
	// mapping and there is none.
	ErrNotMapped = errors.New("mmapio: not mapped")
	// ErrReleased is returned when mapping through a shared wrapper whose
	// reference has already been released.
	ErrReleased = errors.New("mmapio: shared mapping released")
)

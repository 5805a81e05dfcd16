package pathdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPath is returned for paths that don't follow the dialect.
	ErrMalformedPath = errors.New("malformed path")
	// ErrSegmentNotFound means an object field named by the path does not exist.
	ErrSegmentNotFound = errors.New("path segment not found")
	// ErrTypeMismatch means a field was applied to a non-object or an index to a non-array.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrIndexOutOfRange means an array index is past the end of the array.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnsupportedValue is returned when a Go value has no JSON form.
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrInvalidJSON      = errors.New("invalid JSON")
)

// PathError records a failed document operation and where in the path it
// failed.
type PathError struct {
	Op   string
	Path string
	// Pos is the index of the failing segment, or -1 when the failure is not
	// tied to a segment.
	Pos     int
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %q: segment %d (%q): %v", e.Op, e.Path, e.Pos, e.Segment, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// IsAbsent reports whether err means the addressed value simply isn't
// there, as opposed to a malformed path or a type mismatch.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrSegmentNotFound) || errors.Is(err, ErrIndexOutOfRange)
}

package contour

import (
	"errors"
	"fmt"
)

// Sentinel errors for the contour package.
var (
	// ErrInvalidInput is returned when a grid or threshold set is malformed.
	// It aborts the whole run; no partial output is produced.
	ErrInvalidInput = errors.New("contour: invalid input")

	// ErrDegenerateGeometry is returned when a single polygon, outline or
	// solid cannot be built. Callers usually skip the affected band.
	ErrDegenerateGeometry = errors.New("contour: degenerate geometry")
)

// GridError reports a non-finite sample in a grid.
type GridError struct {
	X, Y  int
	Value float64
}

func (e *GridError) Error() string {
	return fmt.Sprintf("contour: sample (%d,%d) is not finite: %v", e.X, e.Y, e.Value)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold for a GridError.
func (e *GridError) Unwrap() error { return ErrInvalidInput }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

func degeneratef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDegenerateGeometry}, args...)...)
}

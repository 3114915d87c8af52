package dynamo

import "errors"

// Construction errors. All of them are integration mistakes by the host and
// are reported before any body exists.
var (
	// ErrInvalidViewport indicates a non-positive or non-finite viewport side.
	ErrInvalidViewport = errors.New("dynamo: viewport dimensions must be positive")

	// ErrInvalidBodyCount indicates a negative body count.
	ErrInvalidBodyCount = errors.New("dynamo: body count must not be negative")

	// ErrInvalidRadius indicates an empty or non-positive radius range.
	ErrInvalidRadius = errors.New("dynamo: radius range must be positive and ordered")

	// ErrBodyTooLarge indicates a body that cannot fit inside the viewport.
	ErrBodyTooLarge = errors.New("dynamo: body diameter exceeds viewport")

	// ErrInvalidSpeed indicates an empty or non-positive initial speed range.
	ErrInvalidSpeed = errors.New("dynamo: speed range must be positive and ordered")

	// ErrInvalidVisuals indicates fewer than one visual id to pick from.
	ErrInvalidVisuals = errors.New("dynamo: at least one visual id is required")

	// ErrInvalidState indicates a body with NaN or Inf coordinates.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// SimulationError wraps an error with the tick it happened on.
type SimulationError struct {
	Tick    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

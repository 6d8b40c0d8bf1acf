package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidArgument indicates a rejected precondition: a bad body count,
	// a non-positive mass or an out of range configuration value.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrNotLoaded indicates a step was requested before any bodies were loaded.
	ErrNotLoaded = errors.New("dynamo: no bodies loaded")

	// ErrDone indicates a step was requested after the final step.
	ErrDone = errors.New("dynamo: simulation already done")
)

// SimulationError wraps an error with the step it occurred on.
type SimulationError struct {
	Step    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

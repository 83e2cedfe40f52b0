package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBody is returned when a body can't be integrated
	ErrInvalidBody = errors.New("physics: invalid body")

	// ErrEmptySystem is returned for operations that need at least one body
	ErrEmptySystem = errors.New("physics: empty system")

	// ErrInvalidStep is returned for a non-positive or non-finite time step
	ErrInvalidStep = errors.New("physics: invalid time step")

	// ErrDiverged is returned when a step produces a non-finite state
	ErrDiverged = errors.New("physics: state diverged")
)

// InvalidBodyError details which body failed validation.
type InvalidBodyError struct {
	Index  int
	Mass   float64
	Reason string
}

func (e *InvalidBodyError) Error() string {
	return fmt.Sprintf("physics: invalid body %v (mass %v): %v", e.Index, e.Mass, e.Reason)
}

func (e *InvalidBodyError) Unwrap() error {
	return ErrInvalidBody
}

// StepError wraps a failure in a single integration step.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("physics: step %v failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

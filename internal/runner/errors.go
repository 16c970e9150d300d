package runner

import "fmt"

// Phase names the loop stage a fatal failure came from, so callers can
// tell a broken model exchange from a broken tool implementation.
type Phase string

const (
	PhaseModel    Phase = "model"
	PhaseDispatch Phase = "dispatch"
)

// FatalError aborts a loop run. It wraps transport failures from the
// model client and internal faults from tool handlers; recoverable
// conditions never take this shape.
type FatalError struct {
	Phase Phase
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("loop aborted in %s phase: %v", e.Phase, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

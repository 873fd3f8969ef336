package deploy

import (
	"errors"
	"fmt"
)

// ErrRollbackUnavailable reports that a rollback was needed or requested
// but no previous release exists to roll back to.
var ErrRollbackUnavailable = errors.New("no previous release to roll back to")

// StepError reports a failed provisioning step, tagged with the step's
// name for diagnostics.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

package release

import "fmt"

// AllocationError reports that the directory for a freshly computed
// version already exists. The registry never hands out the same version
// twice, so hitting this means something outside the orchestrator
// tampered with the releases directory.
type AllocationError struct {
	Version int
	Path    string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("release v%d already exists at %s", e.Version, e.Path)
}

// ActivationError reports that the current-pointer switch failed.
type ActivationError struct {
	Version int
	Err     error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("activating release v%d: %v", e.Version, e.Err)
}

func (e *ActivationError) Unwrap() error { return e.Err }

// Package lock serializes deploy, rollback, and prune runs against one
// project root with an advisory file lock. Two concurrent operators must
// not interleave directory creation, pointer switches, and pruning.
package lock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Acquire takes the exclusive lock guarding a project's release store.
// It fails immediately rather than blocking when another operation holds
// the lock. The returned function releases it.
func Acquire(path string) (func(), error) {
	fl := flock.New(path)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring deploy lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another deployment is in progress (lock held on %s)", path)
	}

	return func() { _ = fl.Unlock() }, nil
}

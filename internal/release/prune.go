package release

import (
	"fmt"
	"os"
)

// Prune removes releases that are neither among the keep most recent (by
// version, descending) nor currently active, and returns how many were
// removed. The active release survives even at keep=0. Deletion is
// recursive and irreversible.
func (g *Registry) Prune(keep int) (int, error) {
	releases, err := g.List()
	if err != nil {
		return 0, err
	}

	current, hasCurrent := g.CurrentVersion()

	removed := 0
	for rank, rel := range releases {
		if rank < keep {
			continue
		}
		if hasCurrent && rel.Version == current {
			continue
		}
		if err := os.RemoveAll(rel.Path); err != nil {
			return removed, fmt.Errorf("removing release %s: %w", rel.Name(), err)
		}
		removed++
	}
	return removed, nil
}

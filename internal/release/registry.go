package release

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// currentName is the symlink designating the active release.
const currentName = "current"

// Registry is the versioned release store rooted at a releases directory.
type Registry struct {
	dir string
}

// NewRegistry returns a registry for the given releases directory. The
// directory does not need to exist yet; an empty registry is valid.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Dir returns the releases directory.
func (g *Registry) Dir() string { return g.dir }

func (g *Registry) currentLink() string { return filepath.Join(g.dir, currentName) }

// List returns all materialized releases, sorted by version descending.
// Directory entries that do not match the v<N> naming pattern are ignored.
func (g *Registry) List() ([]Release, error) {
	entries, err := os.ReadDir(g.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	var releases []Release
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version, ok := parseVersion(entry.Name())
		if !ok {
			continue
		}
		releases = append(releases, Release{
			Version: version,
			Path:    filepath.Join(g.dir, entry.Name()),
		})
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Version > releases[j].Version
	})
	return releases, nil
}

// NextVersion computes the next release version: one past the highest
// existing version, or 1 when no releases exist. An unreadable or empty
// registry yields 1; the collision check in Allocate backstops that.
func (g *Registry) NextVersion() int {
	releases, err := g.List()
	if err != nil || len(releases) == 0 {
		return 1
	}
	return releases[0].Version + 1
}

// Allocate creates the directory for a new release. It fails with an
// *AllocationError if the directory already exists.
func (g *Registry) Allocate(version int) (Release, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return Release{}, fmt.Errorf("creating releases directory: %w", err)
	}

	path := filepath.Join(g.dir, fmt.Sprintf("v%d", version))
	if err := os.Mkdir(path, 0o755); err != nil {
		if os.IsExist(err) {
			return Release{}, &AllocationError{Version: version, Path: path}
		}
		return Release{}, fmt.Errorf("creating release directory: %w", err)
	}

	return Release{Version: version, Path: path}, nil
}

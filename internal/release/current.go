package release

import (
	"fmt"
	"os"
	"path/filepath"
)

// Current resolves the current symlink to the active release. A missing
// or dangling link means no release is active; neither is an error.
func (g *Registry) Current() (Release, bool) {
	target, err := os.Readlink(g.currentLink())
	if err != nil {
		return Release{}, false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(g.dir, target)
	}
	if _, err := os.Stat(target); err != nil {
		return Release{}, false
	}

	version, ok := parseVersion(filepath.Base(target))
	if !ok {
		return Release{}, false
	}
	return Release{Version: version, Path: target}, true
}

// CurrentVersion returns the active release's version, if any.
func (g *Registry) CurrentVersion() (int, bool) {
	rel, ok := g.Current()
	if !ok {
		return 0, false
	}
	return rel.Version, true
}

// Activate atomically repoints the current symlink to rel and returns the
// previously active release, or nil when this is the first activation.
//
// The new link is created under a temporary name and renamed over the
// current link, so a concurrent reader of the pointer never observes a
// state where it does not exist. Re-activating the already-current
// release is a no-op state-wise and returns that release as previous.
func (g *Registry) Activate(rel Release) (*Release, error) {
	previous, hasPrevious := g.Current()

	tmp := filepath.Join(g.dir, fmt.Sprintf(".%s.%d.tmp", currentName, os.Getpid()))
	_ = os.Remove(tmp)

	if err := os.Symlink(rel.Path, tmp); err != nil {
		return nil, &ActivationError{Version: rel.Version, Err: err}
	}
	if err := os.Rename(tmp, g.currentLink()); err != nil {
		_ = os.Remove(tmp)
		return nil, &ActivationError{Version: rel.Version, Err: err}
	}

	if !hasPrevious {
		return nil, nil
	}
	return &previous, nil
}

// Revert repoints the current symlink back to an earlier release. It is
// the same atomic primitive as Activate, named for intent at call sites.
func (g *Registry) Revert(to Release) error {
	_, err := g.Activate(to)
	return err
}

package release

import (
	"fmt"
	"strconv"
	"strings"
)

// Release is one immutable, versioned, deployable artifact.
type Release struct {
	// Version is the strictly increasing positive release number.
	Version int

	// Path is the release's directory on disk.
	Path string
}

// Name returns the release's directory name, e.g. "v42".
func (r Release) Name() string {
	return fmt.Sprintf("v%d", r.Version)
}

// parseVersion extracts the version from a release directory name.
// Anything that is not "v" followed by a positive integer is rejected.
func parseVersion(name string) (int, bool) {
	if !strings.HasPrefix(name, "v") {
		return 0, false
	}
	v, err := strconv.Atoi(name[1:])
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

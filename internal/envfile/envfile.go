// Package envfile manages the per-environment dotenv files shared across
// releases: locating them, repointing the project's .env symlink, and
// reading individual values.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve locates an environment file, preferring the shared directory
// over the project root.
func Resolve(root, shared, name string) (string, bool) {
	for _, dir := range []string{shared, root} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Setup ensures the shared directory tree exists and repoints the
// project's .env symlink at the named environment file. It returns the
// file the symlink now targets.
func Setup(root, shared, name string) (string, error) {
	for _, dir := range []string{shared, filepath.Join(shared, "backups"), filepath.Join(shared, "media")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	target, ok := Resolve(root, shared, name)
	if !ok {
		return "", fmt.Errorf("environment file not found: %s (create %s)", name, filepath.Join(shared, name))
	}

	dotenv := filepath.Join(root, ".env")
	if _, err := os.Lstat(dotenv); err == nil {
		if err := os.Remove(dotenv); err != nil {
			return "", fmt.Errorf("removing existing .env: %w", err)
		}
	}
	if err := os.Symlink(target, dotenv); err != nil {
		return "", fmt.Errorf("linking .env: %w", err)
	}
	return target, nil
}

// Lookup reads a single KEY=VALUE entry from a dotenv file. Surrounding
// single or double quotes on the value are stripped; comment lines and
// malformed lines are skipped.
func Lookup(path, key string) (string, bool) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(k) != key {
			continue
		}
		v = strings.TrimSpace(v)
		v = strings.Trim(v, `"'`)
		return v, true
	}
	return "", false
}

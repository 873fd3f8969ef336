// Package cmdrun executes shell commands on the deployment host.
package cmdrun

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes a shell command in an optional working directory with
// extra environment variables appended to the current process environment.
type Runner interface {
	// Run executes the command and returns an error that includes the
	// combined output when the command fails.
	Run(ctx context.Context, dir, command string, env []string) error

	// Output executes the command and returns its trimmed stdout.
	Output(ctx context.Context, dir, command string, env []string) (string, error)
}

// Shell runs commands through "sh -c".
type Shell struct{}

// NewShell creates a shell-based runner.
func NewShell() *Shell {
	return &Shell{}
}

func (s *Shell) Run(ctx context.Context, dir, command string, env []string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("command %q failed: %w\nOutput: %s", command, err, string(out))
	}
	return nil
}

func (s *Shell) Output(ctx context.Context, dir, command string, env []string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("command %q failed: %w", command, err)
	}
	return strings.TrimSpace(string(out)), nil
}

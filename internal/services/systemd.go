// Package services manages the systemd units that serve a project's
// active release.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayna/aynactl/internal/platform/cmdrun"
)

// Manager controls the processes serving the current release.
type Manager interface {
	Start(ctx context.Context, units []string) error
	Stop(ctx context.Context, units []string) error
	Restart(ctx context.Context, units []string) error

	// Reload asks each unit to reload gracefully, falling back to a
	// restart for units that do not support reload. The error reports
	// every unit that could do neither.
	Reload(ctx context.Context, units []string) error

	// Status returns the unit's activation state ("active", "inactive",
	// "failed", ...).
	Status(ctx context.Context, unit string) string
}

// Systemd drives units through systemctl.
type Systemd struct {
	runner cmdrun.Runner

	// Sudo prefixes mutating systemctl calls; status queries never need it.
	Sudo bool
}

// NewSystemd returns a systemctl-backed Manager.
func NewSystemd(runner cmdrun.Runner, sudo bool) *Systemd {
	return &Systemd{runner: runner, Sudo: sudo}
}

func (s *Systemd) systemctl(ctx context.Context, verb, unit string) error {
	command := fmt.Sprintf("systemctl %s %s", verb, unit)
	if s.Sudo {
		command = "sudo " + command
	}
	return s.runner.Run(ctx, "", command, nil)
}

func (s *Systemd) each(ctx context.Context, verb string, units []string) error {
	var errs []error
	for _, unit := range units {
		if err := s.systemctl(ctx, verb, unit); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", verb, unit, err))
		}
	}
	return errors.Join(errs...)
}

// Start implements Manager.
func (s *Systemd) Start(ctx context.Context, units []string) error {
	return s.each(ctx, "start", units)
}

// Stop implements Manager.
func (s *Systemd) Stop(ctx context.Context, units []string) error {
	return s.each(ctx, "stop", units)
}

// Restart implements Manager.
func (s *Systemd) Restart(ctx context.Context, units []string) error {
	return s.each(ctx, "restart", units)
}

// Reload implements Manager.
func (s *Systemd) Reload(ctx context.Context, units []string) error {
	var errs []error
	for _, unit := range units {
		if err := s.systemctl(ctx, "reload", unit); err == nil {
			continue
		}
		if err := s.systemctl(ctx, "restart", unit); err != nil {
			errs = append(errs, fmt.Errorf("reload %s: %w", unit, err))
		}
	}
	return errors.Join(errs...)
}

// Status implements Manager.
func (s *Systemd) Status(ctx context.Context, unit string) string {
	// is-active exits non-zero for anything but "active"; the output is
	// still the state name.
	out, _ := s.runner.Output(ctx, "", "systemctl is-active "+unit, nil)
	state := strings.TrimSpace(out)
	if state == "" {
		return "unknown"
	}
	return state
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/envfile"
	"github.com/ayna/aynactl/internal/health"
	"github.com/ayna/aynactl/internal/release"
	"github.com/ayna/aynactl/internal/services"
)

// StatusReport represents the project state for JSON output.
type StatusReport struct {
	Project       string          `json:"project"`
	Environment   string          `json:"environment"`
	ActiveVersion int             `json:"activeVersion"`
	Releases      []ReleaseStatus `json:"releases"`
	EnvFile       EnvFileStatus   `json:"envFile"`
	Services      []ServiceStatus `json:"services"`
	Probes        []ProbeStatus   `json:"probes"`
}

// ReleaseStatus represents one release directory.
type ReleaseStatus struct {
	Version int  `json:"version"`
	Active  bool `json:"active"`
}

// EnvFileStatus represents the environment file lookup.
type EnvFileStatus struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Present bool   `json:"present"`
}

// ServiceStatus represents one systemd unit.
type ServiceStatus struct {
	Unit  string `json:"unit"`
	State string `json:"state"`
}

// ProbeStatus represents one health probe round.
type ProbeStatus struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Healthy bool   `json:"healthy"`
	Status  int    `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Status handles the status command.
//
// This function displays the active release, the on-disk release history,
// the environment file, the systemd unit states, and a live probe round.
func Status(ctx context.Context, configPath, env string, watch, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env, envCfg, err := resolveEnvironment(cfg, env)
	if err != nil {
		return err
	}

	if watch {
		return watchStatus(ctx, cfg, env, envCfg, jsonOutput)
	}
	return showStatus(ctx, cfg, env, envCfg, jsonOutput)
}

// showStatus displays the project status once.
func showStatus(ctx context.Context, cfg *config.Config, env string, envCfg config.Environment, jsonOutput bool) error {
	report, err := getStatus(ctx, cfg, env, envCfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printStatusJSON(report)
	}
	printStatusFormatted(report)
	return nil
}

// watchStatus continuously displays the project status.
func watchStatus(ctx context.Context, cfg *config.Config, env string, envCfg config.Environment, jsonOutput bool) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	// Show immediately first
	if err := showStatus(ctx, cfg, env, envCfg, jsonOutput); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Clear screen for non-JSON output
			if !jsonOutput {
				fmt.Print("\033[H\033[2J")
			}
			if err := showStatus(ctx, cfg, env, envCfg, jsonOutput); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}

// getStatus collects the status report.
func getStatus(ctx context.Context, cfg *config.Config, env string, envCfg config.Environment) (*StatusReport, error) {
	registry := release.NewRegistry(cfg.ReleasesDir())

	report := &StatusReport{Project: cfg.Project, Environment: env}
	if v, ok := registry.CurrentVersion(); ok {
		report.ActiveVersion = v
	}

	releases, err := registry.List()
	if err != nil {
		return nil, err
	}
	for _, rel := range releases {
		report.Releases = append(report.Releases, ReleaseStatus{
			Version: rel.Version,
			Active:  rel.Version == report.ActiveVersion,
		})
	}

	report.EnvFile = EnvFileStatus{Name: envCfg.EnvFile}
	if path, ok := envfile.Resolve(cfg.Root, cfg.SharedDir(), envCfg.EnvFile); ok {
		report.EnvFile.Path = path
		report.EnvFile.Present = true
	}

	manager := services.NewSystemd(newRunner(), cfg.Sudo)
	for _, unit := range envCfg.Services {
		report.Services = append(report.Services, ServiceStatus{
			Unit:  unit,
			State: manager.Status(ctx, unit),
		})
	}

	// One probe round without the settle delay; status wants the state
	// now, not after a deploy-style warmup.
	gate := health.NewGate(probesFromConfig(cfg), 0, cfg.Health.Timeout)
	for _, pr := range gate.Check(ctx).Probes {
		ps := ProbeStatus{
			Name:    pr.Probe.Name,
			URL:     pr.Probe.URL,
			Healthy: pr.Healthy,
			Status:  pr.Status,
		}
		if pr.Err != nil {
			ps.Error = pr.Err.Error()
		}
		report.Probes = append(report.Probes, ps)
	}

	return report, nil
}

// printStatusJSON outputs the status report as JSON.
func printStatusJSON(report *StatusReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printStatusFormatted outputs the status report in a formatted display.
func printStatusFormatted(report *StatusReport) {
	fmt.Printf("aynactl project: %s (%s)\n", report.Project, report.Environment)
	fmt.Println("─────────────────────────────────────")
	fmt.Println()

	fmt.Println("Releases:")
	if len(report.Releases) == 0 {
		fmt.Println("  (none deployed)")
	}
	for _, rel := range report.Releases {
		extra := ""
		if rel.Active {
			extra = "(active)"
		}
		printStatusLine(fmt.Sprintf("v%d", rel.Version), rel.Active, extra)
	}
	fmt.Println()

	fmt.Println("Environment:")
	extra := "(missing)"
	if report.EnvFile.Present {
		extra = fmt.Sprintf("(%s)", report.EnvFile.Path)
	}
	printStatusLine(report.EnvFile.Name, report.EnvFile.Present, extra)
	fmt.Println()

	if len(report.Services) > 0 {
		fmt.Println("Services:")
		for _, svc := range report.Services {
			printStatusLine(svc.Unit, svc.State == "active", fmt.Sprintf("(%s)", svc.State))
		}
		fmt.Println()
	}

	if len(report.Probes) > 0 {
		fmt.Println("Probes:")
		for _, probe := range report.Probes {
			extra := ""
			switch {
			case probe.Status != 0:
				extra = fmt.Sprintf("(%d)", probe.Status)
			case probe.Error != "":
				extra = fmt.Sprintf("(%s)", probe.Error)
			}
			printStatusLine(probe.Name, probe.Healthy, extra)
		}
	}
}

// printStatusLine prints a single status line with indicator.
func printStatusLine(name string, ready bool, extra string) {
	var indicator string
	switch {
	case ready:
		indicator = "✓"
	case extra == "(activating)" || extra == "(reloading)":
		indicator = "◐"
	default:
		indicator = "○"
	}

	if extra != "" {
		fmt.Printf("  %s %s %s\n", indicator, name, extra)
	} else {
		fmt.Printf("  %s %s\n", indicator, name)
	}
}

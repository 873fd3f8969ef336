package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/health"
	"github.com/ayna/aynactl/internal/platform/cmdrun"
	"github.com/ayna/aynactl/internal/release"
	"github.com/ayna/aynactl/internal/util/retry"
)

// ServiceReloader asks the service-management collaborator to reload the
// processes serving the active release.
type ServiceReloader interface {
	Reload(ctx context.Context, units []string) error
}

// HealthChecker judges the active release after an activation.
type HealthChecker interface {
	Check(ctx context.Context) health.Result
}

// BackupRunner performs the optional pre-deploy database backup.
type BackupRunner interface {
	Backup(ctx context.Context, env string) error
}

// Options tune a single deployment run.
type Options struct {
	// SkipBackup skips the pre-deploy database backup.
	SkipBackup bool
}

// Outcome is the terminal state of a deployment attempt.
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeFailed     Outcome = "failed"
	OutcomeRolledBack Outcome = "rolled-back"
)

// Report summarizes a finished deployment or rollback for the operator.
// Scripting callers must rely on the process exit code, not on this text.
type Report struct {
	Environment string
	Outcome     Outcome

	// Version is the release this run deployed, 0 for standalone rollback.
	Version int

	// ActiveVersion is the version the current pointer ends on, 0 if none.
	ActiveVersion int

	RolledBack bool
	Pruned     int
	Duration   time.Duration
}

// Deployer composes the release registry, provisioning pipeline, service
// manager, health gate, and backup collaborator into the deploy and
// rollback state machines.
type Deployer struct {
	cfg      *config.Config
	registry *release.Registry
	runner   cmdrun.Runner
	services ServiceReloader
	gate     HealthChecker
	backup   BackupRunner
	observer Observer
}

// NewDeployer wires up a Deployer. backup may be nil when the caller
// always skips backups.
func NewDeployer(
	cfg *config.Config,
	registry *release.Registry,
	runner cmdrun.Runner,
	services ServiceReloader,
	gate HealthChecker,
	backup BackupRunner,
	observer Observer,
) *Deployer {
	return &Deployer{
		cfg:      cfg,
		registry: registry,
		runner:   runner,
		services: services,
		gate:     gate,
		backup:   backup,
		observer: observer,
	}
}

// Deploy runs the full blue-green state machine for one environment.
// The returned report is valid even when err is non-nil.
func (d *Deployer) Deploy(ctx context.Context, env string, opts Options) (*Report, error) {
	envCfg, ok := d.cfg.Environment(env)
	if !ok {
		return nil, fmt.Errorf("unknown environment %q", env)
	}

	start := time.Now()
	report := &Report{Environment: env, Outcome: OutcomeFailed}
	if v, ok := d.registry.CurrentVersion(); ok {
		report.ActiveVersion = v
	}
	defer func() { report.Duration = time.Since(start) }()

	// Backup: optional, never fatal. A failed backup must not block the
	// deployment.
	if opts.SkipBackup || d.backup == nil {
		d.observer.Event(Event{Type: EventBackupSkipped, Message: "backup skipped"})
	} else if err := d.backup.Backup(ctx, env); err != nil {
		d.observer.Event(Event{Type: EventBackupFailed, Message: err.Error()})
		d.observer.Printf("backup failed (continuing): %v", err)
	}

	// Provision.
	version := d.registry.NextVersion()
	rel, err := d.registry.Allocate(version)
	if err != nil {
		return report, err
	}
	report.Version = version
	d.observer.Event(Event{Type: EventReleaseCreated, Stage: rel.Name(), Message: "release directory created"})

	dctx := &Context{
		Context:  ctx,
		Config:   d.cfg,
		Env:      env,
		EnvCfg:   envCfg,
		Release:  rel,
		Runner:   d.runner,
		Observer: d.observer,
	}
	if err := RunSteps(dctx, StepsFromConfig(d.cfg.Build)); err != nil {
		// Current pointer untouched; the partial release stays on disk
		// for postmortem.
		return report, err
	}

	// Activate.
	previous, err := d.registry.Activate(rel)
	if err != nil {
		return report, err
	}
	report.ActiveVersion = version
	d.observer.Event(Event{Type: EventReleaseActivated, Stage: rel.Name(), Message: "current pointer switched"})

	// Reload. A failure here is fatal but does not repoint the current
	// pointer; only a failed health check triggers rollback.
	if err := d.services.Reload(ctx, envCfg.Services); err != nil {
		return report, fmt.Errorf("reloading services: %w", err)
	}

	// HealthCheck, with optional extra rounds under the orchestrator's
	// control.
	result := d.checkHealth(ctx)
	if result.Healthy {
		d.observer.Event(Event{Type: EventHealthPassed, Message: "all probes healthy"})
		return d.commit(report)
	}

	d.reportUnhealthy(result)

	// Rollback. On the very first deployment there is nothing to revert
	// to: the pointer stays on the new release and the failure is
	// unrecoverable.
	if previous == nil {
		return report, fmt.Errorf("health check failed on first deployment: %w", ErrRollbackUnavailable)
	}

	d.observer.Event(Event{Type: EventRollbackStarted, Stage: previous.Name(), Message: "health check failed, rolling back"})
	if _, err := d.registry.Activate(*previous); err != nil {
		return report, fmt.Errorf("rollback failed: %w", err)
	}
	if err := d.services.Reload(ctx, envCfg.Services); err != nil {
		d.observer.Printf("reload after rollback failed: %v", err)
	}
	report.Outcome = OutcomeRolledBack
	report.RolledBack = true
	report.ActiveVersion = previous.Version
	d.observer.Event(Event{Type: EventRollbackCompleted, Stage: previous.Name(), Message: "rolled back"})

	return report, fmt.Errorf("health check failed, rolled back to %s", previous.Name())
}

// Rollback is the operator-invoked path: repoint to the next-most-recent
// release and reload. The previous release is assumed to still be good;
// no health check runs here.
func (d *Deployer) Rollback(ctx context.Context, env string) (*Report, error) {
	envCfg, ok := d.cfg.Environment(env)
	if !ok {
		return nil, fmt.Errorf("unknown environment %q", env)
	}

	start := time.Now()

	current, ok := d.registry.Current()
	if !ok {
		return nil, fmt.Errorf("no current release: %w", ErrRollbackUnavailable)
	}

	releases, err := d.registry.List()
	if err != nil {
		return nil, err
	}
	var target *release.Release
	for i := range releases {
		if releases[i].Version != current.Version {
			target = &releases[i]
			break
		}
	}
	if target == nil {
		return nil, ErrRollbackUnavailable
	}

	d.observer.Event(Event{Type: EventRollbackStarted, Stage: target.Name(),
		Message: fmt.Sprintf("rolling back %s -> %s", current.Name(), target.Name())})

	if _, err := d.registry.Activate(*target); err != nil {
		return nil, err
	}
	if err := d.services.Reload(ctx, envCfg.Services); err != nil {
		return nil, fmt.Errorf("reloading services after rollback: %w", err)
	}

	d.observer.Event(Event{Type: EventRollbackCompleted, Stage: target.Name(), Message: "rolled back"})

	return &Report{
		Environment:   env,
		Outcome:       OutcomeRolledBack,
		ActiveVersion: target.Version,
		RolledBack:    true,
		Duration:      time.Since(start),
	}, nil
}

// commit finalizes a healthy deployment: prune old releases and report
// success. A prune failure after a healthy switch is reported but does
// not fail the deployment.
func (d *Deployer) commit(report *Report) (*Report, error) {
	removed, err := d.registry.Prune(d.cfg.Retention.Keep)
	if err != nil {
		d.observer.Printf("pruning old releases failed: %v", err)
	}
	report.Pruned = removed
	d.observer.Event(Event{Type: EventPruneCompleted,
		Message: fmt.Sprintf("removed %d old release(s)", removed)})

	report.Outcome = OutcomeSuccess
	return report, nil
}

// checkHealth runs the gate once, plus the configured number of extra
// rounds. The gate itself never retries; repeat rounds live here.
func (d *Deployer) checkHealth(ctx context.Context) health.Result {
	result := d.gate.Check(ctx)
	if result.Healthy || d.cfg.Health.Retries == 0 {
		return result
	}

	_ = retry.WithExponentialBackoff(ctx, func() error {
		result = d.gate.Check(ctx)
		if !result.Healthy {
			return errors.New("probes still failing")
		}
		return nil
	}, retry.WithMaxRetries(d.cfg.Health.Retries-1), retry.WithInitialDelay(2*time.Second))

	return result
}

func (d *Deployer) reportUnhealthy(result health.Result) {
	for _, pr := range result.Probes {
		if pr.Healthy {
			continue
		}
		msg := fmt.Sprintf("probe %s failed", pr.Probe.Name)
		if pr.Err != nil {
			msg = fmt.Sprintf("probe %s failed: %v", pr.Probe.Name, pr.Err)
		} else if pr.Status != 0 {
			msg = fmt.Sprintf("probe %s failed: status %d", pr.Probe.Name, pr.Status)
		}
		d.observer.Event(Event{Type: EventHealthFailed, Stage: pr.Probe.Name, Message: msg})
	}
}

// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"fmt"
	"log"
	"os"

	"github.com/ayna/aynactl/internal/backup"
	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/deploy"
	"github.com/ayna/aynactl/internal/health"
	"github.com/ayna/aynactl/internal/lock"
	"github.com/ayna/aynactl/internal/platform/cmdrun"
	"github.com/ayna/aynactl/internal/release"
	"github.com/ayna/aynactl/internal/services"
)

// defaultEnvironment is assumed when a command is run without one.
const defaultEnvironment = "production"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// findConfigFile finds the default config file.
	findConfigFile = config.FindFile

	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// acquireLock takes the exclusive deploy lock.
	acquireLock = lock.Acquire

	// newRunner creates the shell command runner.
	newRunner = func() cmdrun.Runner { return cmdrun.NewShell() }
)

// loadConfig resolves and loads the project configuration.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w (run 'aynactl init' to create one)", err)
		}
		path = found
	}
	return loadConfigFile(path)
}

// resolveEnvironment defaults the environment name and verifies it exists.
func resolveEnvironment(cfg *config.Config, env string) (string, config.Environment, error) {
	if env == "" {
		env = defaultEnvironment
	}
	envCfg, ok := cfg.Environment(env)
	if !ok {
		return "", config.Environment{}, fmt.Errorf("unknown environment %q (configured: %s)", env, environmentNames(cfg))
	}
	return env, envCfg, nil
}

func environmentNames(cfg *config.Config) string {
	names := ""
	for name := range cfg.Environments {
		if names != "" {
			names += ", "
		}
		names += name
	}
	return names
}

// buildDeployer wires the orchestrator from configuration.
func buildDeployer(cfg *config.Config) *deploy.Deployer {
	runner := newRunner()
	registry := release.NewRegistry(cfg.ReleasesDir())
	manager := services.NewSystemd(runner, cfg.Sudo)
	gate := health.NewGate(probesFromConfig(cfg), cfg.Health.SettleDelay, cfg.Health.Timeout)

	return deploy.NewDeployer(cfg, registry, runner, manager, gate,
		newBackuper(cfg, runner), deploy.NewConsoleObserver())
}

func probesFromConfig(cfg *config.Config) []health.Probe {
	probes := make([]health.Probe, 0, len(cfg.Health.Probes))
	for _, spec := range cfg.Health.Probes {
		probes = append(probes, health.Probe{Name: spec.Name, URL: spec.URL})
	}
	return probes
}

// newBackuper builds the backup collaborator, attaching the offsite
// uploader when backup.s3 is configured and its credentials are present.
func newBackuper(cfg *config.Config, runner cmdrun.Runner) *backup.Backuper {
	var uploader backup.Uploader

	if s3cfg := cfg.Backup.S3; s3cfg != nil {
		accessKey := os.Getenv(s3cfg.AccessKeyEnv)
		secretKey := os.Getenv(s3cfg.SecretKeyEnv)
		if accessKey == "" || secretKey == "" {
			log.Printf("backup.s3 configured but %s/%s not set, keeping backups local only",
				s3cfg.AccessKeyEnv, s3cfg.SecretKeyEnv)
		} else {
			up, err := backup.NewS3Uploader(s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket, accessKey, secretKey)
			if err != nil {
				log.Printf("offsite backup disabled: %v", err)
			} else {
				uploader = up
			}
		}
	}

	return backup.New(cfg, runner, uploader)
}

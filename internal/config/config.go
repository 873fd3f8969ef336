package config

import (
	"path/filepath"
	"time"
)

// DefaultFileName is the config file auto-detected in the working directory.
const DefaultFileName = "ayna.yaml"

// Config is the full project configuration.
type Config struct {
	// Project is the short project name, used in release reports, backup
	// file names, and default service unit names.
	Project string `mapstructure:"project" yaml:"project"`

	// Root is the absolute project root, conventionally /opt/ayna/<project>.
	// The releases/ and shared/ trees live underneath it.
	Root string `mapstructure:"root" yaml:"root"`

	// Sudo controls whether systemctl mutations are prefixed with sudo.
	Sudo bool `mapstructure:"sudo" yaml:"sudo"`

	// Ports maps process names to local ports, used to derive default
	// health probes when none are configured.
	Ports map[string]int `mapstructure:"ports" yaml:"ports"`

	// Environments maps environment names to their settings.
	Environments map[string]Environment `mapstructure:"environments" yaml:"environments"`

	Retention Retention `mapstructure:"retention" yaml:"retention"`
	Health    Health    `mapstructure:"health" yaml:"health"`
	Build     Build     `mapstructure:"build" yaml:"build"`
	Backup    Backup    `mapstructure:"backup" yaml:"backup"`
}

// Environment describes one deployment target of the project.
type Environment struct {
	// EnvFile is the dotenv file name under shared/, e.g. ".env.production".
	EnvFile string `mapstructure:"env_file" yaml:"env_file"`

	// Settings is the value injected as DJANGO_SETTINGS_MODULE during
	// provisioning steps. Empty means no injection.
	Settings string `mapstructure:"settings" yaml:"settings,omitempty"`

	// Services are the systemd units serving this environment.
	Services []string `mapstructure:"services" yaml:"services"`
}

// Retention governs how many historical releases survive a successful deploy.
type Retention struct {
	// Keep is the number of most-recent releases retained in addition to
	// the currently active one.
	Keep int `mapstructure:"keep" yaml:"keep"`
}

// Health configures the post-activation health gate.
type Health struct {
	// SettleDelay is the wait before the first probe round, giving freshly
	// reloaded processes time to bind.
	SettleDelay time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`

	// Timeout bounds each individual probe request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Retries is the number of additional probe rounds the orchestrator
	// attempts before declaring the release unhealthy. The gate itself
	// never retries.
	Retries int `mapstructure:"retries" yaml:"retries"`

	Probes []ProbeSpec `mapstructure:"probes" yaml:"probes"`
}

// ProbeSpec describes one liveness endpoint.
type ProbeSpec struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// Build configures the release provisioning pipeline.
type Build struct {
	// Steps run in order against the new release directory. When empty,
	// the default snapshot/install/migrate/collectstatic pipeline applies.
	Steps []StepSpec `mapstructure:"steps" yaml:"steps"`
}

// StepSpec is one named provisioning command.
type StepSpec struct {
	Name string `mapstructure:"name" yaml:"name"`

	// Command is run through the shell with RELEASE_DIR and PROJECT_ROOT
	// exported.
	Command string `mapstructure:"command" yaml:"command"`

	// Workdir is relative to the release directory; empty means the
	// release root.
	Workdir string `mapstructure:"workdir" yaml:"workdir,omitempty"`
}

// Backup configures the pre-deploy database backup collaborator.
type Backup struct {
	// S3 enables offsite upload of backup archives when set.
	S3 *S3 `mapstructure:"s3" yaml:"s3,omitempty"`
}

// S3 describes an S3-compatible object storage target for backups.
type S3 struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Region   string `mapstructure:"region" yaml:"region"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`

	// AccessKeyEnv and SecretKeyEnv name the environment variables the
	// credentials are read from. Credentials never live in the config file.
	AccessKeyEnv string `mapstructure:"access_key_env" yaml:"access_key_env"`
	SecretKeyEnv string `mapstructure:"secret_key_env" yaml:"secret_key_env"`
}

// ReleasesDir returns the directory holding versioned release directories.
func (c *Config) ReleasesDir() string { return filepath.Join(c.Root, "releases") }

// CurrentLink returns the path of the "current" symlink.
func (c *Config) CurrentLink() string { return filepath.Join(c.ReleasesDir(), "current") }

// SharedDir returns the directory shared across releases.
func (c *Config) SharedDir() string { return filepath.Join(c.Root, "shared") }

// BackupsDir returns the directory backup archives are written to.
func (c *Config) BackupsDir() string { return filepath.Join(c.SharedDir(), "backups") }

// MediaDir returns the shared media directory.
func (c *Config) MediaDir() string { return filepath.Join(c.SharedDir(), "media") }

// DotEnv returns the path of the .env symlink at the project root.
func (c *Config) DotEnv() string { return filepath.Join(c.Root, ".env") }

// LockPath returns the advisory lock file guarding deploy and rollback runs.
func (c *Config) LockPath() string { return filepath.Join(c.Root, ".deploy.lock") }

// Environment returns the named environment's settings.
func (c *Config) Environment(name string) (Environment, bool) {
	env, ok := c.Environments[name]
	return env, ok
}

package config

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Validate checks the configuration for errors that would make a
// deployment run misbehave.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project name is required")
	}
	if c.Root == "" {
		return fmt.Errorf("project root is required")
	}
	if !filepath.IsAbs(c.Root) {
		return fmt.Errorf("project root must be an absolute path, got %q", c.Root)
	}
	if len(c.Environments) == 0 {
		return fmt.Errorf("at least one environment is required")
	}
	if c.Retention.Keep < 0 {
		return fmt.Errorf("retention.keep must be >= 0, got %d", c.Retention.Keep)
	}
	if c.Health.SettleDelay < 0 {
		return fmt.Errorf("health.settle_delay must be >= 0")
	}
	if c.Health.Timeout <= 0 {
		return fmt.Errorf("health.timeout must be > 0")
	}
	if c.Health.Retries < 0 {
		return fmt.Errorf("health.retries must be >= 0")
	}

	for _, probe := range c.Health.Probes {
		if probe.URL == "" {
			return fmt.Errorf("health probe %q has no url", probe.Name)
		}
		if _, err := url.ParseRequestURI(probe.URL); err != nil {
			return fmt.Errorf("health probe %q has invalid url %q: %w", probe.Name, probe.URL, err)
		}
	}

	for i, step := range c.Build.Steps {
		if step.Name == "" {
			return fmt.Errorf("build step %d has no name", i+1)
		}
		if step.Command == "" {
			return fmt.Errorf("build step %q has no command", step.Name)
		}
	}

	for name, env := range c.Environments {
		if len(env.Services) == 0 {
			return fmt.Errorf("environment %q has no services", name)
		}
	}

	if s3 := c.Backup.S3; s3 != nil {
		if s3.Endpoint == "" || s3.Bucket == "" {
			return fmt.Errorf("backup.s3 requires endpoint and bucket")
		}
	}

	return nil
}

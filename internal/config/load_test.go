package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
project: myproject
root: /opt/ayna/myproject
ports:
  web: 8100
  api: 8101
environments:
  production:
    services: [myproject-web, myproject-api]
`

func TestLoad_Minimal_AppliesDefaults(t *testing.T) {
	cfg, err := Load([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "myproject", cfg.Project)
	assert.True(t, cfg.Sudo)
	assert.Equal(t, 10, cfg.Retention.Keep)
	assert.Equal(t, 3*time.Second, cfg.Health.SettleDelay)
	assert.Equal(t, 5*time.Second, cfg.Health.Timeout)
	assert.Equal(t, 0, cfg.Health.Retries)

	// Probes derived from the port table, api before web alphabetically.
	require.Len(t, cfg.Health.Probes, 2)
	assert.Equal(t, "http://localhost:8101/health", cfg.Health.Probes[0].URL)
	assert.Equal(t, "http://localhost:8100/", cfg.Health.Probes[1].URL)

	// Default pipeline.
	require.Len(t, cfg.Build.Steps, 4)
	assert.Equal(t, "snapshot", cfg.Build.Steps[0].Name)
	assert.Equal(t, "collectstatic", cfg.Build.Steps[3].Name)

	env := cfg.Environments["production"]
	assert.Equal(t, ".env.production", env.EnvFile)
}

func TestLoad_ExplicitZeroKeep(t *testing.T) {
	cfg, err := Load([]byte(`
project: p
root: /opt/ayna/p
environments:
  dev:
    services: [p-web]
retention:
  keep: 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Retention.Keep)
}

func TestLoad_ExplicitSudoFalse(t *testing.T) {
	cfg, err := Load([]byte(`
project: p
root: /opt/ayna/p
sudo: false
environments:
  dev:
    services: [p-web]
`))
	require.NoError(t, err)
	assert.False(t, cfg.Sudo)
}

func TestLoad_Durations(t *testing.T) {
	cfg, err := Load([]byte(`
project: p
root: /opt/ayna/p
environments:
  dev:
    services: [p-web]
health:
  settle_delay: 500ms
  timeout: 10s
  retries: 2
  probes:
    - name: web
      url: http://localhost:9000/
`))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Health.SettleDelay)
	assert.Equal(t, 10*time.Second, cfg.Health.Timeout)
	assert.Equal(t, 2, cfg.Health.Retries)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load([]byte("project: [unclosed"))
	assert.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing project",
			yaml: "root: /opt/ayna/p\nenvironments:\n  dev:\n    services: [a]\n",
			want: "project name is required",
		},
		{
			name: "relative root",
			yaml: "project: p\nroot: opt/p\nenvironments:\n  dev:\n    services: [a]\n",
			want: "absolute",
		},
		{
			name: "no environments",
			yaml: "project: p\nroot: /opt/p\n",
			want: "at least one environment",
		},
		{
			name: "negative keep",
			yaml: "project: p\nroot: /opt/p\nenvironments:\n  dev:\n    services: [a]\nretention:\n  keep: -1\n",
			want: "retention.keep",
		},
		{
			name: "bad probe url",
			yaml: "project: p\nroot: /opt/p\nenvironments:\n  dev:\n    services: [a]\nhealth:\n  probes:\n    - name: web\n      url: not a url\n",
			want: "invalid url",
		},
		{
			name: "s3 missing bucket",
			yaml: "project: p\nroot: /opt/p\nenvironments:\n  dev:\n    services: [a]\nbackup:\n  s3:\n    endpoint: https://s3.example.com\n",
			want: "backup.s3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Root: "/opt/ayna/myproject"}

	assert.Equal(t, "/opt/ayna/myproject/releases", cfg.ReleasesDir())
	assert.Equal(t, "/opt/ayna/myproject/releases/current", cfg.CurrentLink())
	assert.Equal(t, "/opt/ayna/myproject/shared/backups", cfg.BackupsDir())
	assert.Equal(t, "/opt/ayna/myproject/.env", cfg.DotEnv())
	assert.Equal(t, "/opt/ayna/myproject/.deploy.lock", cfg.LockPath())
}

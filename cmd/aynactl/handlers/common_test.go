package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/platform/cmdrun"
)

// saveAndRestoreFactories saves the current factory functions and registers
// a cleanup function to restore them.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origFindConfigFile := findConfigFile
	origLoadConfigFile := loadConfigFile
	origAcquireLock := acquireLock
	origNewRunner := newRunner
	origRunPassthrough := runPassthrough
	origFileExists := fileExists
	origRunWizard := runWizard
	origSaveConfig := saveConfig

	t.Cleanup(func() {
		findConfigFile = origFindConfigFile
		loadConfigFile = origLoadConfigFile
		acquireLock = origAcquireLock
		newRunner = origNewRunner
		runPassthrough = origRunPassthrough
		fileExists = origFileExists
		runWizard = origRunWizard
		saveConfig = origSaveConfig
	})
}

// testConfig builds a minimal valid config rooted at a temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Project: "shop",
		Root:    t.TempDir(),
		Sudo:    false,
		Environments: map[string]config.Environment{
			"production": {
				EnvFile:  ".env.production",
				Services: []string{"shop-web"},
			},
			"staging": {
				EnvFile:  ".env.staging",
				Services: []string{"shop-web-staging"},
			},
		},
		Retention: config.Retention{Keep: 10},
		Health: config.Health{
			SettleDelay: 0,
			Timeout:     time.Second,
		},
		Build: config.Build{Steps: []config.StepSpec{
			{Name: "snapshot", Command: `git -C "$PROJECT_ROOT" archive HEAD | tar -x`},
		}},
	}
}

// stubLoad wires the factories so loadConfig returns cfg for any path and
// locking is a no-op.
func stubLoad(t *testing.T, cfg *config.Config) {
	t.Helper()
	loadConfigFile = func(_ string) (*config.Config, error) { return cfg, nil }
	findConfigFile = func() (string, error) { return config.DefaultFileName, nil }
	acquireLock = func(_ string) (func(), error) { return func() {}, nil }
}

type stubRunner struct {
	commands []string
	output   string
	err      error
}

func (s *stubRunner) Run(_ context.Context, _ string, command string, _ []string) error {
	s.commands = append(s.commands, command)
	return s.err
}

func (s *stubRunner) Output(_ context.Context, _ string, command string, _ []string) (string, error) {
	s.commands = append(s.commands, command)
	return s.output, s.err
}

func TestLoadConfig_EmptyPath_NoDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	findConfigFile = func() (string, error) {
		return "", errors.New("config file ayna.yaml not found")
	}

	_, err := loadConfig("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
	assert.Contains(t, err.Error(), "aynactl init")
}

func TestLoadConfig_EmptyPath_WithDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	findConfigFile = func() (string, error) {
		return "/opt/ayna/shop/ayna.yaml", nil
	}
	var loaded string
	loadConfigFile = func(path string) (*config.Config, error) {
		loaded = path
		return testConfig(t), nil
	}

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "/opt/ayna/shop/ayna.yaml", loaded)
	assert.Equal(t, "shop", cfg.Project)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	saveAndRestoreFactories(t)

	findConfigFile = func() (string, error) {
		t.Fatal("findConfigFile must not be called for explicit paths")
		return "", nil
	}
	loadConfigFile = func(path string) (*config.Config, error) {
		assert.Equal(t, "custom.yaml", path)
		return testConfig(t), nil
	}

	_, err := loadConfig("custom.yaml")
	require.NoError(t, err)
}

func TestResolveEnvironment_Defaults(t *testing.T) {
	cfg := testConfig(t)

	env, envCfg, err := resolveEnvironment(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "production", env)
	assert.Equal(t, ".env.production", envCfg.EnvFile)
}

func TestResolveEnvironment_Unknown(t *testing.T) {
	cfg := testConfig(t)

	_, _, err := resolveEnvironment(cfg, "qa")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment "qa"`)
}

func TestBuildDeployer(t *testing.T) {
	saveAndRestoreFactories(t)
	newRunner = func() cmdrun.Runner { return &stubRunner{} }

	deployer := buildDeployer(testConfig(t))
	assert.NotNil(t, deployer)
}

func TestNewBackuper_NoS3(t *testing.T) {
	cfg := testConfig(t)

	backuper := newBackuper(cfg, &stubRunner{})
	assert.NotNil(t, backuper)
}

func TestNewBackuper_S3MissingCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup.S3 = &config.S3{
		Endpoint:     "https://fsn1.your-objectstorage.com",
		Bucket:       "shop-backups",
		AccessKeyEnv: "TEST_AYNA_ACCESS",
		SecretKeyEnv: "TEST_AYNA_SECRET",
	}
	os.Unsetenv("TEST_AYNA_ACCESS")
	os.Unsetenv("TEST_AYNA_SECRET")

	// Missing credentials degrade to local-only backups, not an error.
	backuper := newBackuper(cfg, &stubRunner{})
	assert.NotNil(t, backuper)
}

func TestNewBackuper_S3WithCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup.S3 = &config.S3{
		Endpoint:     "https://fsn1.your-objectstorage.com",
		Region:       "fsn1",
		Bucket:       "shop-backups",
		AccessKeyEnv: "TEST_AYNA_ACCESS",
		SecretKeyEnv: "TEST_AYNA_SECRET",
	}
	t.Setenv("TEST_AYNA_ACCESS", "key")
	t.Setenv("TEST_AYNA_SECRET", "secret")

	backuper := newBackuper(cfg, &stubRunner{})
	assert.NotNil(t, backuper)
}

func TestProbesFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Health.Probes = []config.ProbeSpec{
		{Name: "web", URL: "http://localhost:8000/"},
		{Name: "api", URL: "http://localhost:8001/health"},
	}

	probes := probesFromConfig(cfg)
	require.Len(t, probes, 2)
	assert.Equal(t, "web", probes[0].Name)
	assert.Equal(t, "http://localhost:8001/health", probes[1].URL)
}

// seedRelease creates a release directory, optionally activating it.
func seedRelease(t *testing.T, cfg *config.Config, version int, activate bool) {
	t.Helper()
	dir := filepath.Join(cfg.ReleasesDir(), "v"+strconv.Itoa(version))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if activate {
		link := filepath.Join(cfg.ReleasesDir(), "current")
		_ = os.Remove(link)
		require.NoError(t, os.Symlink(dir, link))
	}
}

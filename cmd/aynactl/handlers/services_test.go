package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/platform/cmdrun"
)

func TestServicesAction_Restart(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig(t)
	stubLoad(t, cfg)
	runner := &stubRunner{}
	newRunner = func() cmdrun.Runner { return runner }

	require.NoError(t, ServicesAction(context.Background(), "", "production", "restart"))
	assert.Equal(t, []string{"systemctl restart shop-web"}, runner.commands)
}

func TestServicesAction_UnknownAction(t *testing.T) {
	saveAndRestoreFactories(t)
	stubLoad(t, testConfig(t))
	newRunner = func() cmdrun.Runner { return &stubRunner{} }

	err := ServicesAction(context.Background(), "", "production", "explode")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown action "explode"`)
}

func TestServicesAction_NoServicesConfigured(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig(t)
	cfg.Environments["production"] = config.Environment{EnvFile: ".env.production"}
	stubLoad(t, cfg)

	err := ServicesAction(context.Background(), "", "production", "restart")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no services configured")
}

func TestServicesAction_SudoPrefix(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig(t)
	cfg.Sudo = true
	stubLoad(t, cfg)
	runner := &stubRunner{}
	newRunner = func() cmdrun.Runner { return runner }

	require.NoError(t, ServicesAction(context.Background(), "", "production", "stop"))
	assert.Equal(t, []string{"sudo systemctl stop shop-web"}, runner.commands)
}

func TestServicesStatus(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig(t)
	stubLoad(t, cfg)
	runner := &stubRunner{output: "active"}
	newRunner = func() cmdrun.Runner { return runner }

	require.NoError(t, ServicesStatus(context.Background(), "", "production"))
	assert.Equal(t, []string{"systemctl is-active shop-web"}, runner.commands)
}

func TestLogs_FollowsEnvironmentUnits(t *testing.T) {
	saveAndRestoreFactories(t)
	stubLoad(t, testConfig(t))

	var gotName string
	var gotArgs []string
	runPassthrough = func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	require.NoError(t, Logs(context.Background(), "", "production", ""))
	assert.Equal(t, "journalctl", gotName)
	assert.Equal(t, []string{"-f", "-u", "shop-web"}, gotArgs)
}

func TestLogs_SingleUnitOverride(t *testing.T) {
	saveAndRestoreFactories(t)
	stubLoad(t, testConfig(t))

	var gotArgs []string
	runPassthrough = func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return nil
	}

	require.NoError(t, Logs(context.Background(), "", "production", "shop-worker"))
	assert.Equal(t, []string{"-f", "-u", "shop-worker"}, gotArgs)
}

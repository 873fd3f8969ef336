package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/platform/cmdrun"
)

func TestGetStatus_FullReport(t *testing.T) {
	saveAndRestoreFactories(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.Health.Probes = []config.ProbeSpec{{Name: "web", URL: server.URL + "/"}}
	seedRelease(t, cfg, 1, false)
	seedRelease(t, cfg, 2, true)
	seedRelease(t, cfg, 3, false)

	newRunner = func() cmdrun.Runner { return &stubRunner{output: "active"} }

	env, envCfg, err := resolveEnvironment(cfg, "")
	require.NoError(t, err)

	report, err := getStatus(context.Background(), cfg, env, envCfg)
	require.NoError(t, err)

	assert.Equal(t, "shop", report.Project)
	assert.Equal(t, "production", report.Environment)
	assert.Equal(t, 2, report.ActiveVersion)

	require.Len(t, report.Releases, 3)
	assert.Equal(t, 3, report.Releases[0].Version)
	assert.False(t, report.Releases[0].Active)
	assert.Equal(t, 2, report.Releases[1].Version)
	assert.True(t, report.Releases[1].Active)

	require.Len(t, report.Services, 1)
	assert.Equal(t, "shop-web", report.Services[0].Unit)
	assert.Equal(t, "active", report.Services[0].State)

	require.Len(t, report.Probes, 1)
	assert.True(t, report.Probes[0].Healthy)
	assert.Equal(t, http.StatusOK, report.Probes[0].Status)
}

func TestGetStatus_NothingDeployed(t *testing.T) {
	saveAndRestoreFactories(t)
	newRunner = func() cmdrun.Runner { return &stubRunner{output: "inactive"} }

	cfg := testConfig(t)

	env, envCfg, err := resolveEnvironment(cfg, "")
	require.NoError(t, err)

	report, err := getStatus(context.Background(), cfg, env, envCfg)
	require.NoError(t, err)

	assert.Zero(t, report.ActiveVersion)
	assert.Empty(t, report.Releases)
	assert.False(t, report.EnvFile.Present)
	require.Len(t, report.Services, 1)
	assert.Equal(t, "inactive", report.Services[0].State)
}

func TestGetStatus_ProbeFailure(t *testing.T) {
	saveAndRestoreFactories(t)
	newRunner = func() cmdrun.Runner { return &stubRunner{output: "active"} }

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.Health.Probes = []config.ProbeSpec{{Name: "web", URL: server.URL + "/"}}

	env, envCfg, err := resolveEnvironment(cfg, "")
	require.NoError(t, err)

	report, err := getStatus(context.Background(), cfg, env, envCfg)
	require.NoError(t, err)

	require.Len(t, report.Probes, 1)
	assert.False(t, report.Probes[0].Healthy)
	assert.Equal(t, http.StatusBadGateway, report.Probes[0].Status)
}

func TestStatus_UnknownEnvironment(t *testing.T) {
	saveAndRestoreFactories(t)
	stubLoad(t, testConfig(t))

	err := Status(context.Background(), "", "qa", false, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment "qa"`)
}

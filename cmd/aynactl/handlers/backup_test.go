package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayna/aynactl/internal/platform/cmdrun"
)

func TestBackup_RunsPgDump(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig(t)
	stubLoad(t, cfg)

	require.NoError(t, os.MkdirAll(cfg.BackupsDir(), 0o755))
	envFile := filepath.Join(cfg.SharedDir(), ".env.production")
	dsn := "DATABASE_URL=postgres://shop:pw@localhost:5432/shopdb\n"
	require.NoError(t, os.WriteFile(envFile, []byte(dsn), 0o600))

	runner := &stubRunner{}
	newRunner = func() cmdrun.Runner { return runner }

	require.NoError(t, Backup(context.Background(), "", "production"))

	require.Len(t, runner.commands, 1)
	assert.Contains(t, runner.commands[0], "pg_dump")
	assert.Contains(t, runner.commands[0], "shopdb")
}

func TestBackup_NoDatabaseURLIsNotAnError(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig(t)
	stubLoad(t, cfg)

	runner := &stubRunner{}
	newRunner = func() cmdrun.Runner { return runner }

	require.NoError(t, Backup(context.Background(), "", "production"))
	assert.Empty(t, runner.commands)
}

func TestBackup_DumpFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig(t)
	stubLoad(t, cfg)

	require.NoError(t, os.MkdirAll(cfg.SharedDir(), 0o755))
	envFile := filepath.Join(cfg.SharedDir(), ".env.production")
	dsn := "DATABASE_URL=postgres://shop:pw@localhost:5432/shopdb\n"
	require.NoError(t, os.WriteFile(envFile, []byte(dsn), 0o600))

	runner := &stubRunner{err: errors.New("connection refused")}
	newRunner = func() cmdrun.Runner { return runner }

	err := Backup(context.Background(), "", "production")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "backup failed"))
}

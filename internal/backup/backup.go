// Package backup implements the pre-deployment database backup
// collaborator: pg_dump piped through gzip into shared/backups, with
// optional offsite upload to S3-compatible object storage.
//
// A missing or unparseable DATABASE_URL skips the backup with a warning;
// the orchestrator never blocks a deployment on backup problems.
package backup

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/envfile"
	"github.com/ayna/aynactl/internal/platform/cmdrun"
	"github.com/ayna/aynactl/internal/util/retry"
)

// Uploader copies a finished backup archive to offsite storage.
type Uploader interface {
	Upload(ctx context.Context, key, path string) error
}

// Backuper produces database backup archives for a project.
type Backuper struct {
	cfg      *config.Config
	runner   cmdrun.Runner
	uploader Uploader // nil keeps backups local only

	// now is injectable for deterministic archive names in tests.
	now func() time.Time
}

// New returns a Backuper. uploader may be nil.
func New(cfg *config.Config, runner cmdrun.Runner, uploader Uploader) *Backuper {
	return &Backuper{cfg: cfg, runner: runner, uploader: uploader, now: time.Now}
}

// Backup dumps the environment's database into shared/backups. The
// database location comes from DATABASE_URL in the project's .env (or the
// environment's shared dotenv file); when it is absent or unparseable the
// backup is skipped, not failed.
func (b *Backuper) Backup(ctx context.Context, env string) error {
	envCfg, ok := b.cfg.Environment(env)
	if !ok {
		return fmt.Errorf("unknown environment %q", env)
	}

	dbURL, ok := b.lookupDatabaseURL(envCfg)
	if !ok {
		log.Printf("DATABASE_URL not set, skipping backup")
		return nil
	}

	dsn, err := ParseDatabaseURL(dbURL)
	if err != nil {
		log.Printf("skipping backup: %v", err)
		return nil
	}

	if err := os.MkdirAll(b.cfg.BackupsDir(), 0o755); err != nil {
		return fmt.Errorf("creating backups directory: %w", err)
	}

	stamp := b.now().Format("20060102_150405")
	archive := filepath.Join(b.cfg.BackupsDir(), fmt.Sprintf("%s_%s_%s.sql.gz", b.cfg.Project, env, stamp))

	command := fmt.Sprintf("pg_dump -h %s -p %s -U %s %s | gzip > %s",
		dsn.Host, dsn.Port, dsn.User, dsn.Name, archive)
	if err := b.runner.Run(ctx, b.cfg.Root, command, []string{"PGPASSWORD=" + dsn.Password}); err != nil {
		return fmt.Errorf("database backup failed: %w", err)
	}
	log.Printf("backup saved to %s", archive)

	if b.uploader != nil {
		key := filepath.Base(archive)
		err := retry.WithExponentialBackoff(ctx, func() error {
			return b.uploader.Upload(ctx, key, archive)
		}, retry.WithMaxRetries(2), retry.WithInitialDelay(2*time.Second))
		if err != nil {
			return fmt.Errorf("offsite upload failed: %w", err)
		}
		log.Printf("backup uploaded as %s", key)
	}

	return nil
}

// lookupDatabaseURL checks the active .env first, then the environment's
// shared dotenv file.
func (b *Backuper) lookupDatabaseURL(envCfg config.Environment) (string, bool) {
	if v, ok := envfile.Lookup(b.cfg.DotEnv(), "DATABASE_URL"); ok {
		return v, true
	}
	if path, ok := envfile.Resolve(b.cfg.Root, b.cfg.SharedDir(), envCfg.EnvFile); ok {
		return envfile.Lookup(path, "DATABASE_URL")
	}
	return "", false
}

package handlers

import (
	"context"
	"fmt"
)

// Backup handles the backup command.
//
// This function produces a database backup archive for the environment
// without deploying, uploading it offsite when backup.s3 is configured.
func Backup(ctx context.Context, configPath, env string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env, _, err = resolveEnvironment(cfg, env)
	if err != nil {
		return err
	}

	backuper := newBackuper(cfg, newRunner())
	if err := backuper.Backup(ctx, env); err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("Backup complete, archives in %s\n", cfg.BackupsDir())
	return nil
}

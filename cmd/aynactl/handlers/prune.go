package handlers

import (
	"context"
	"fmt"

	"github.com/ayna/aynactl/internal/release"
)

// Prune handles the prune command.
//
// keep < 0 means the configured retention count applies. The active
// release always survives, whatever the count.
func Prune(ctx context.Context, configPath string, keep int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if keep < 0 {
		keep = cfg.Retention.Keep
	}

	unlock, err := acquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer unlock()

	registry := release.NewRegistry(cfg.ReleasesDir())
	removed, err := registry.Prune(keep)
	if err != nil {
		return err
	}

	fmt.Printf("Pruned %d release(s), keeping %d plus the active release.\n", removed, keep)
	return nil
}

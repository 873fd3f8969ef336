package handlers

import (
	"context"
	"fmt"

	"github.com/ayna/aynactl/internal/envfile"
)

// EnvSetup handles the env setup command.
//
// This function creates the shared directory tree and repoints the
// project's .env symlink at the environment's dotenv file.
func EnvSetup(ctx context.Context, configPath, env string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env, envCfg, err := resolveEnvironment(cfg, env)
	if err != nil {
		return err
	}

	target, err := envfile.Setup(cfg.Root, cfg.SharedDir(), envCfg.EnvFile)
	if err != nil {
		return err
	}

	fmt.Printf("Environment %q ready: %s -> %s\n", env, cfg.DotEnv(), target)
	return nil
}

// EnvCheck handles the env check command.
//
// This function reports, for every configured environment, whether its
// dotenv file exists and which one the .env symlink currently targets.
func EnvCheck(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	fmt.Printf("aynactl env: %s\n", cfg.Project)
	fmt.Println("─────────────────────────────────────")
	fmt.Println()

	for name, envCfg := range cfg.Environments {
		path, ok := envfile.Resolve(cfg.Root, cfg.SharedDir(), envCfg.EnvFile)
		extra := "(missing)"
		if ok {
			extra = fmt.Sprintf("(%s)", path)
		}
		printStatusLine(name, ok, extra)
	}

	return nil
}

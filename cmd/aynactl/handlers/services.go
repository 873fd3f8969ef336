package handlers

import (
	"context"
	"fmt"

	"github.com/ayna/aynactl/internal/services"
)

// ServicesAction handles the services start/stop/restart/reload commands.
func ServicesAction(ctx context.Context, configPath, env, action string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env, envCfg, err := resolveEnvironment(cfg, env)
	if err != nil {
		return err
	}
	if len(envCfg.Services) == 0 {
		return fmt.Errorf("environment %q has no services configured", env)
	}

	manager := services.NewSystemd(newRunner(), cfg.Sudo)

	switch action {
	case "start":
		err = manager.Start(ctx, envCfg.Services)
	case "stop":
		err = manager.Stop(ctx, envCfg.Services)
	case "restart":
		err = manager.Restart(ctx, envCfg.Services)
	case "reload":
		err = manager.Reload(ctx, envCfg.Services)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d unit(s) done\n", action, len(envCfg.Services))
	return nil
}

// ServicesStatus handles the services status command.
func ServicesStatus(ctx context.Context, configPath, env string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env, envCfg, err := resolveEnvironment(cfg, env)
	if err != nil {
		return err
	}

	fmt.Printf("aynactl services: %s (%s)\n", cfg.Project, env)
	fmt.Println("─────────────────────────────────────")
	fmt.Println()

	manager := services.NewSystemd(newRunner(), cfg.Sudo)
	for _, unit := range envCfg.Services {
		state := manager.Status(ctx, unit)
		printStatusLine(unit, state == "active", fmt.Sprintf("(%s)", state))
	}

	return nil
}

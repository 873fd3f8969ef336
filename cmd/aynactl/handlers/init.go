package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ayna/aynactl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive setup wizard.
	runWizard = config.RunWizard

	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

// Init runs the project setup wizard and writes the result to ayna.yaml.
func Init(ctx context.Context) error {
	if fileExists(config.DefaultFileName) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", config.DefaultFileName)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()

	if err := saveConfig(cfg, config.DefaultFileName); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("aynactl - versioned blue-green deployments")
	fmt.Println("==========================================")
	fmt.Println()
	fmt.Println("This wizard creates a project configuration with sensible defaults.")
	fmt.Println("Releases land under <root>/releases and switch atomically.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", config.DefaultFileName)
	fmt.Println()

	// Summary
	fmt.Println("Project Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:         %s\n", cfg.Project)
	fmt.Printf("  Root:         %s\n", cfg.Root)
	fmt.Printf("  Environments: %d\n", len(cfg.Environments))
	fmt.Printf("  Retention:    keep %d releases\n", cfg.Retention.Keep)
	if env, ok := cfg.Environment(defaultEnvironment); ok {
		fmt.Printf("  Services:     %v\n", env.Services)
	}
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Create %s under %s\n", ".env.production", cfg.SharedDir())
	fmt.Println()
	fmt.Println("  2. Link the environment file:")
	fmt.Println("     aynactl env setup production")
	fmt.Println()
	fmt.Println("  3. Deploy:")
	fmt.Println("     aynactl deploy")
	fmt.Println()
}

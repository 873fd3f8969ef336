package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Project  string
	Root     string
	WebPort  int
	Staging  bool
	Services string
	Keep     int
	Sudo     bool
}

// RunWizard runs the interactive project setup wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		WebPort: 8000,
		Keep:    10,
		Sudo:    true,
	}

	form := huh.NewForm(
		// Project identity
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("A short name for the project (DNS-safe, lowercase)").
				Placeholder("myproject").
				Value(&result.Project).
				Validate(validateProjectName),

			huh.NewInput().
				Title("Project root").
				Description("Absolute path holding releases/ and shared/. Empty picks /opt/ayna/<name>.").
				Placeholder("/opt/ayna/myproject").
				Value(&result.Root).
				Validate(validateRoot),
		),

		// Serving
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Web port").
				Description("Local port the application server listens on, probed after each deploy").
				Options(
					huh.NewOption("8000", 8000),
					huh.NewOption("8080", 8080),
					huh.NewOption("3000", 3000),
					huh.NewOption("5000", 5000),
				).
				Value(&result.WebPort),

			huh.NewInput().
				Title("Services").
				Description("systemd units reloaded on deploy, comma-separated. Empty picks <name>-web.").
				Placeholder("myproject-web, myproject-worker").
				Value(&result.Services),
		),

		// Environments and retention
		huh.NewGroup(
			huh.NewConfirm().
				Title("Staging environment").
				Description("Add a staging environment next to production?").
				Value(&result.Staging),

			huh.NewSelect[int]().
				Title("Releases to keep").
				Description("Old releases pruned after each successful deploy").
				Options(
					huh.NewOption("5", 5),
					huh.NewOption("10", 10),
					huh.NewOption("20", 20),
				).
				Value(&result.Keep),

			huh.NewConfirm().
				Title("Use sudo").
				Description("Prefix systemctl start/stop/reload with sudo?").
				Value(&result.Sudo),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config.
func (r *WizardResult) ToConfig() *Config {
	root := r.Root
	if root == "" {
		root = filepath.Join("/opt/ayna", r.Project)
	}

	services := splitServices(r.Services)
	if len(services) == 0 {
		services = []string{r.Project + "-web"}
	}

	cfg := &Config{
		Project: r.Project,
		Root:    root,
		Sudo:    r.Sudo,
		Ports:   map[string]int{"web": r.WebPort},
		Environments: map[string]Environment{
			"production": {
				EnvFile:  ".env.production",
				Services: services,
			},
		},
		Retention: Retention{Keep: r.Keep},
	}
	if r.Staging {
		cfg.Environments["staging"] = Environment{
			EnvFile:  ".env.staging",
			Services: services,
		}
	}

	cfg.Health.Probes = []ProbeSpec{{
		Name: "web",
		URL:  "http://127.0.0.1:" + strconv.Itoa(r.WebPort) + "/",
	}}

	return cfg
}

func splitServices(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	for _, r := range name {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !valid {
			return fmt.Errorf("use lowercase letters, digits, and hyphens only")
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("name cannot start or end with a hyphen")
	}
	return nil
}

func validateRoot(root string) error {
	if root != "" && !filepath.IsAbs(root) {
		return fmt.Errorf("root must be an absolute path")
	}
	return nil
}

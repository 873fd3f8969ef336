package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FindFile locates the default config file in the working directory.
func FindFile() (string, error) {
	if _, err := os.Stat(DefaultFileName); err != nil {
		return "", fmt.Errorf("config file %s not found", DefaultFileName)
	}
	return DefaultFileName, nil
}

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(data)
}

// Load parses configuration from raw YAML bytes, applies defaults, and
// validates the result.
func Load(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg, rawConfig)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Save writes a configuration to a YAML file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills in the parts of the config the operator left out.
// The raw map distinguishes "explicitly zero" from "unset" for fields
// where zero is meaningful.
func applyDefaults(cfg *Config, raw map[string]interface{}) {
	if !rawHas(raw, "sudo") {
		cfg.Sudo = true
	}
	if !rawHas(raw, "retention", "keep") {
		cfg.Retention.Keep = 10
	}
	if cfg.Health.SettleDelay == 0 {
		cfg.Health.SettleDelay = 3 * time.Second
	}
	if cfg.Health.Timeout == 0 {
		cfg.Health.Timeout = 5 * time.Second
	}
	if len(cfg.Health.Probes) == 0 {
		cfg.Health.Probes = defaultProbes(cfg.Ports)
	}
	if len(cfg.Build.Steps) == 0 {
		cfg.Build.Steps = DefaultSteps()
	}

	for name, env := range cfg.Environments {
		if env.EnvFile == "" {
			env.EnvFile = ".env." + name
		}
		if len(env.Services) == 0 {
			env.Services = []string{cfg.Project + "-web", cfg.Project + "-api"}
		}
		cfg.Environments[name] = env
	}

	if cfg.Backup.S3 != nil {
		if cfg.Backup.S3.AccessKeyEnv == "" {
			cfg.Backup.S3.AccessKeyEnv = "AYNA_S3_ACCESS_KEY"
		}
		if cfg.Backup.S3.SecretKeyEnv == "" {
			cfg.Backup.S3.SecretKeyEnv = "AYNA_S3_SECRET_KEY"
		}
	}
}

// defaultProbes derives liveness probes from the port table: the web
// process is probed at / and every other process at /health.
func defaultProbes(ports map[string]int) []ProbeSpec {
	names := make([]string, 0, len(ports))
	for name := range ports {
		names = append(names, name)
	}
	sort.Strings(names)

	var probes []ProbeSpec
	for _, name := range names {
		path := "/health"
		if name == "web" {
			path = "/"
		}
		probes = append(probes, ProbeSpec{
			Name: name,
			URL:  fmt.Sprintf("http://localhost:%d%s", ports[name], path),
		})
	}
	return probes
}

// DefaultSteps returns the standard provisioning pipeline: snapshot the
// working tree from git, install dependencies, migrate the schema, and
// collect static assets.
func DefaultSteps() []StepSpec {
	return []StepSpec{
		{
			Name:    "snapshot",
			Command: `git -C "$PROJECT_ROOT" archive HEAD | tar -x`,
		},
		{
			Name:    "install",
			Command: `"$PROJECT_ROOT/venv/bin/pip" install -e '.[web,api]'`,
		},
		{
			Name:    "migrate",
			Command: `"$PROJECT_ROOT/venv/bin/python" manage.py migrate --noinput`,
			Workdir: "web",
		},
		{
			Name:    "collectstatic",
			Command: `"$PROJECT_ROOT/venv/bin/python" manage.py collectstatic --noinput`,
			Workdir: "web",
		},
	}
}

// rawHas reports whether the nested key path was explicitly present in the
// raw YAML document.
func rawHas(raw map[string]interface{}, path ...string) bool {
	current := raw
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		current, ok = value.(map[string]interface{})
		if !ok {
			return false
		}
	}
	return false
}

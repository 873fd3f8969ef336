package deploy

import (
	"path/filepath"

	"github.com/ayna/aynactl/internal/config"
)

// Step is one named unit of the release provisioning pipeline.
type Step interface {
	// Name returns the human-readable name of this step.
	Name() string

	// Run executes the step against the release in ctx.
	Run(ctx *Context) error
}

// CommandStep runs a configured shell command inside the release
// directory (or a subdirectory of it), with the release and project
// locations exported into the command's environment.
type CommandStep struct {
	name    string
	command string
	workdir string
}

// NewCommandStep builds a step from its configuration.
func NewCommandStep(spec config.StepSpec) CommandStep {
	return CommandStep{name: spec.Name, command: spec.Command, workdir: spec.Workdir}
}

// Name implements Step.
func (s CommandStep) Name() string { return s.name }

// Run implements Step.
func (s CommandStep) Run(ctx *Context) error {
	dir := ctx.Release.Path
	if s.workdir != "" {
		dir = filepath.Join(dir, s.workdir)
	}

	env := []string{
		"RELEASE_DIR=" + ctx.Release.Path,
		"PROJECT_ROOT=" + ctx.Config.Root,
	}
	if ctx.EnvCfg.Settings != "" {
		env = append(env, "DJANGO_SETTINGS_MODULE="+ctx.EnvCfg.Settings)
	}

	return ctx.Runner.Run(ctx, dir, s.command, env)
}

// StepsFromConfig builds the ordered provisioning pipeline from
// configuration.
func StepsFromConfig(build config.Build) []Step {
	steps := make([]Step, 0, len(build.Steps))
	for _, spec := range build.Steps {
		steps = append(steps, NewCommandStep(spec))
	}
	return steps
}

package deploy

import (
	"context"

	"github.com/ayna/aynactl/internal/config"
	"github.com/ayna/aynactl/internal/platform/cmdrun"
	"github.com/ayna/aynactl/internal/release"
)

// Context wraps the dependencies and progressive state of one deployment
// attempt. It exists only for the duration of a single run.
type Context struct {
	context.Context

	Config   *config.Config
	Env      string             // target environment name
	EnvCfg   config.Environment // resolved environment settings
	Release  release.Release    // the release being provisioned
	Runner   cmdrun.Runner
	Observer Observer
}

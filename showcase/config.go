package showcase

import (
	"time"

	"github.com/rise-and-shine/decorators/decorator"
	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/tracing"
)

// Config is the full application configuration.
type Config struct {
	Service Service                 `yaml:"service"`
	Logger  logger.Config           `yaml:"logger"`
	Limiter decorator.LimiterConfig `yaml:"limiter"`
	Retry   decorator.RetryConfig   `yaml:"retry"`
	Tracing tracing.Config          `yaml:"tracing"`

	// Timeout bounds every demonstrated invocation. Zero disables it.
	Timeout time.Duration `yaml:"timeout" default:"5s"`

	// Recover converts panics in demonstrated operations into errors.
	Recover bool `yaml:"recover" default:"false"`
}

type Service struct {
	Name    string `yaml:"name"    validate:"required" default:"decorators"`
	Version string `yaml:"version" validate:"required" default:"dev"`
}

// Package cfgloader provides a simple way to load and validate configuration at the start of an application.
package cfgloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"slices"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/decorators/val"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

// Error codes returned by Load.
const (
	CodeInvalidEnvironment = "CONFIG_INVALID_ENVIRONMENT"
	CodeFileNotFound       = "CONFIG_FILE_NOT_FOUND"
	CodeInvalidFile        = "CONFIG_INVALID_FILE"
)

// Load reads, defaults and validates configuration of type T.
//
// The YAML file may reference environment variables (${NAME}); they are
// expanded before parsing. A .env file in the working directory is loaded
// first if present. Default values come from `default` struct tags and only
// apply to keys the file leaves out; an explicit zero in the file is kept.
// Then `validate` tags are checked.
//
// Example:
//
//	type Config struct {
//	    Limit  int    `yaml:"limit"  default:"3"     validate:"gte=0"`
//	    Policy string `yaml:"policy" default:"total" validate:"oneof=total per_call"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	if reflect.ValueOf(config).Kind() == reflect.Ptr {
		return config, errx.New("[cfgloader]: config type must not be a pointer")
	}

	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}

	_ = godotenv.Load()

	path := o.Path
	if path == "" {
		env, err := defineEnvironment()
		if err != nil {
			return config, err
		}
		path = fmt.Sprintf("./config/%s.yaml", env)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && o.Optional:
		data = nil
	case errors.Is(err, fs.ErrNotExist):
		return config, errx.New("[cfgloader]: config file not found",
			errx.WithCode(CodeFileNotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	case err != nil:
		return config, errx.Wrap(err)
	}

	// defaults first, so that values written in the file, zero included, win
	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err)
	}

	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
		return config, errx.New("[cfgloader]: failed to unmarshal config file",
			errx.WithCode(CodeInvalidFile),
			errx.WithDetails(errx.D{"path": path, "cause": err.Error()}),
		)
	}

	if err = val.ValidateSchema(config); err != nil {
		return config, err
	}

	if !o.Silent {
		Print(config)
	}

	return config, nil
}

func defineEnvironment() (string, error) {
	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return "", errx.New(
			"[cfgloader]: ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.WithCode(CodeInvalidEnvironment),
			errx.WithDetails(errx.D{"environment": env}),
		)
	}
	return env, nil
}

package cfgloader

// Options holds configuration options for Load.
type Options struct {
	// Silent disables logging of the loaded config.
	Silent bool

	// Path points at the YAML file. When empty the path is derived from the
	// ENVIRONMENT variable as ./config/${ENVIRONMENT}.yaml.
	Path string

	// Optional makes a missing file acceptable: defaults are applied to the
	// zero config instead.
	Optional bool
}

// Option is a functional option for configuring Load behavior.
type Option func(*Options)

// WithSilent disables config logging.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithPath loads the given file instead of the environment based one.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithOptional tolerates a missing config file.
func WithOptional() Option {
	return func(o *Options) {
		o.Optional = true
	}
}

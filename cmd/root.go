// Package cmd implements the decorators command line interface.
package cmd

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rise-and-shine/decorators/cfgloader"
	"github.com/rise-and-shine/decorators/decorator"
	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/showcase"
	"github.com/rise-and-shine/decorators/tracing"
	"github.com/rise-and-shine/decorators/val"
)

const (
	envPrefix         = "DECORATORS"
	defaultConfigPath = "decorators.yaml"

	outputTable = "table"
	outputJSON  = "json"
)

// app is the state shared by every subcommand of one root command.
type app struct {
	v        *viper.Viper
	cfg      showcase.Config
	logger   logger.Logger
	registry *prometheus.Registry
	showcase *showcase.Showcase
	shutdown tracing.ShutdownFunc
}

// Execute runs the root command against the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Every call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "decorators",
		Short: "Walk through wrapping operations with decorators",
		Long: `decorators demonstrates how closures let you wrap an operation with extra
behavior (timing, argument logging, call limiting) without changing the
operation itself. Each subcommand runs one part of the lesson.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is ./"+defaultConfigPath+" when present)")
	flags.Int("limit", 0, "call limit of the limiter (overrides config)")
	flags.String("policy", "", "limiter re-entry policy: total or per_call (overrides config)")
	flags.String("output", outputTable, "output format: table or json")
	flags.String("log-level", "", "log level: debug, info, warn or error (overrides config)")
	flags.Bool("quiet", false, "disable logging")
	flags.Bool("metrics", false, "print collected metrics after the run")
	flags.Bool("print-config", false, "log the effective config with secrets masked")

	root.AddCommand(
		a.newNullCmd(),
		a.newBenchmarkCmd(),
		a.newForwardCmd(),
		a.newLimitCmd(),
		a.newAllCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	opts := []cfgloader.Option{cfgloader.WithSilent()}
	if path := a.v.GetString("config"); path != "" {
		opts = append(opts, cfgloader.WithPath(path))
	} else {
		opts = append(opts, cfgloader.WithPath(defaultConfigPath), cfgloader.WithOptional())
	}

	cfg, err := cfgloader.Load[showcase.Config](opts...)
	if err != nil {
		return err
	}

	if err = a.applyOverrides(&cfg); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	logger.ReplaceGlobal(a.logger)

	if a.v.GetBool("print-config") {
		cfgloader.Print(cfg)
	}

	a.shutdown, err = tracing.InitGlobalTracer(cfg.Tracing, cfg.Service.Name, cfg.Service.Version)
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	metrics, err := decorator.NewMetrics(a.registry)
	if err != nil {
		return err
	}

	a.showcase = showcase.New(cfg, a.logger, showcase.WithMetrics(metrics))

	return nil
}

// applyOverrides lays flags and DECORATORS_* environment variables over the
// file config and validates the result again.
func (a *app) applyOverrides(cfg *showcase.Config) error {
	if a.v.IsSet("limit") {
		cfg.Limiter.Limit = a.v.GetInt("limit")
	}
	if a.v.IsSet("policy") && a.v.GetString("policy") != "" {
		cfg.Limiter.Policy = a.v.GetString("policy")
	}
	if a.v.IsSet("log-level") && a.v.GetString("log-level") != "" {
		cfg.Logger.Level = a.v.GetString("log-level")
	}
	if a.v.GetBool("quiet") {
		cfg.Logger.Disable = true
	}

	return val.ValidateSchema(*cfg)
}

package cmd

import (
	"context"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/rise-and-shine/decorators/operation"
	"github.com/rise-and-shine/decorators/showcase"
)

const codeInvalidArgument = "INVALID_ARGUMENT"

type scenarioFunc func(ctx context.Context, args []string) ([]showcase.Report, error)

// run adapts a scenario into a cobra RunE that renders its reports. Spans
// are flushed whatever the outcome.
func (a *app) run(title string, fn scenarioFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if a.shutdown == nil {
				return
			}
			if shutdownErr := a.shutdown(context.WithoutCancel(cmd.Context())); err == nil {
				err = shutdownErr
			}
		}()

		reports, err := fn(cmd.Context(), args)
		if err == nil || len(reports) > 0 {
			if renderErr := a.render(cmd.OutOrStdout(), title, reports); renderErr != nil {
				return renderErr
			}
		}
		if err != nil {
			return err
		}
		return a.printMetrics(cmd.OutOrStdout())
	}
}

func single(fn func(context.Context) (showcase.Report, error)) scenarioFunc {
	return func(ctx context.Context, _ []string) ([]showcase.Report, error) {
		r, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return []showcase.Report{r}, nil
	}
}

func (a *app) newNullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "null",
		Short: "Apply the pass-through decorator with and without sugar",
		Args:  cobra.NoArgs,
		RunE: a.run("null decorator", func(ctx context.Context, _ []string) ([]showcase.Report, error) {
			return collect(ctx, a.showcase.Null, a.showcase.NullDynamic)
		}),
	}
}

func (a *app) newBenchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "Time an operation with the benchmark decorator",
		Args:  cobra.NoArgs,
		RunE: a.run("benchmark decorator", func(ctx context.Context, _ []string) ([]showcase.Report, error) {
			return collect(ctx, a.showcase.Benchmark, a.showcase.BenchmarkDynamic)
		}),
	}
}

func (a *app) newForwardCmd() *cobra.Command {
	var scale int

	cmd := &cobra.Command{
		Use:   "forward [numbers...]",
		Short: "Forward positional and named inputs through a logging decorator",
		Long: `Without arguments the two-element sum of 3 and 4 is decorated.
With arguments every number is passed positionally to a variadic sum and
--scale is passed as a named input.`,
	}

	cmd.Flags().IntVar(&scale, "scale", 1, "named input multiplying the sum")

	cmd.RunE = a.run("argument forwarding decorator", func(ctx context.Context, args []string) ([]showcase.Report, error) {
		if len(args) == 0 {
			return single(func(ctx context.Context) (showcase.Report, error) {
				return a.showcase.Forward(ctx, showcase.Pair{A: 3, B: 4})
			})(ctx, nil)
		}

		positional := make([]any, 0, len(args))
		for _, arg := range args {
			positional = append(positional, arg)
		}
		bag := operation.NewArgs(positional...)
		if cmd.Flags().Changed("scale") {
			bag = bag.With("scale", scale)
		}

		return single(func(ctx context.Context) (showcase.Report, error) {
			return a.showcase.ForwardArgs(ctx, bag)
		})(ctx, nil)
	})

	return cmd
}

func (a *app) newLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limit [a b]",
		Short: "Collect results of repeated invocations with the call limiter",
		Long: `Wraps the two-element sum with the parameterized call limiter, calls it
once with a and b (5 and 6 by default) and checks that the sum ran exactly
--limit times.`,
		Args: cobra.MatchAll(cobra.RangeArgs(0, 2), func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				return errx.New("[cmd]: limit takes either no arguments or both a and b",
					errx.WithCode(codeInvalidArgument))
			}
			return nil
		}),
		RunE: a.run("call limiting decorator", func(ctx context.Context, args []string) ([]showcase.Report, error) {
			in := showcase.Pair{A: 5, B: 6}
			if len(args) == 2 {
				var err error
				if in.A, err = parseInt(args[0]); err != nil {
					return nil, err
				}
				if in.B, err = parseInt(args[1]); err != nil {
					return nil, err
				}
			}

			return single(func(ctx context.Context) (showcase.Report, error) {
				return a.showcase.Limit(ctx, in)
			})(ctx, nil)
		}),
	}
}

func (a *app) newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run the whole lesson in order",
		Args:  cobra.NoArgs,
		RunE: a.run("decorators lesson", func(ctx context.Context, _ []string) ([]showcase.Report, error) {
			return a.showcase.All(ctx)
		}),
	}
}

func collect(ctx context.Context, steps ...func(context.Context) (showcase.Report, error)) ([]showcase.Report, error) {
	reports := make([]showcase.Report, 0, len(steps))
	for _, step := range steps {
		r, err := step(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func parseInt(s string) (int, error) {
	n, err := cast.ToIntE(s)
	if err != nil {
		return 0, errx.New("[cmd]: argument is not an integer",
			errx.WithCode(codeInvalidArgument),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"argument": s}),
		)
	}
	return n, nil
}

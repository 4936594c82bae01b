// Package showcase walks through the decorator lesson: a pass-through
// decorator applied with and without sugar, a timing decorator, an
// argument-forwarding decorator and a parameterized call limiter.
//
// Every scenario returns a Report so the CLI can render what happened.
package showcase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/decorators/decorator"
	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/operation"
)

// Scenario names, in lesson order.
const (
	ScenarioNull             = "null"
	ScenarioNullDynamic      = "null_dynamic"
	ScenarioBenchmark        = "benchmark"
	ScenarioBenchmarkDynamic = "benchmark_dynamic"
	ScenarioForward          = "forward"
	ScenarioForwardArgs      = "forward_args"
	ScenarioLimit            = "limit"
)

// Report describes one finished scenario.
type Report struct {
	Scenario  string `json:"scenario"`
	Operation string `json:"operation"`
	Result    any    `json:"result"`
	Calls     int    `json:"calls"`
}

// Showcase runs the lesson scenarios with a shared set of ambient wrappers.
type Showcase struct {
	cfg     Config
	logger  logger.Logger
	tp      trace.TracerProvider
	metrics *decorator.Metrics
}

// Option customizes a Showcase.
type Option func(*Showcase)

// WithTracerProvider routes spans of every scenario to tp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Showcase) {
		s.tp = tp
	}
}

// WithMetrics records invocation metrics of every scenario in m.
func WithMetrics(m *decorator.Metrics) Option {
	return func(s *Showcase) {
		s.metrics = m
	}
}

func New(cfg Config, l logger.Logger, opts ...Option) *Showcase {
	s := &Showcase{
		cfg:    cfg,
		logger: l.Named("showcase"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ambient returns the wrappers every demonstrated operation gets on top of
// the decorator being demonstrated, outermost first.
func ambient[I operation.Input, R operation.Result](s *Showcase) []operation.WrapFunc[I, R] {
	wrappers := []operation.WrapFunc[I, R]{
		decorator.NewTracingWrapper[I, R](s.tp),
		decorator.NewMetaInjectWrapper[I, R](s.cfg.Service.Name, s.cfg.Service.Version),
		decorator.NewTimeoutWrapper[I, R](s.cfg.Timeout),
	}
	if s.metrics != nil {
		wrappers = append(wrappers, decorator.NewMetricsWrapper[I, R](s.metrics))
	}
	if s.cfg.Recover {
		wrappers = append(wrappers, decorator.NewRecoveryWrapper[I, R](s.logger))
	}
	if s.cfg.Retry.Attempts > 1 {
		wrappers = append(wrappers, decorator.NewRetryWrapper[I, R](s.cfg.Retry, s.logger))
	}
	return wrappers
}

func instrument[I operation.Input, R operation.Result](
	s *Showcase,
	op operation.Operation[I, R],
	wrappers ...operation.WrapFunc[I, R],
) operation.Operation[I, R] {
	return operation.Chain(op, append(ambient[I, R](s), wrappers...)...)
}

// Null applies the null decorator at definition time, the way decorator
// syntax would, and then calls the result.
func (s *Showcase) Null(ctx context.Context) (Report, error) {
	op := instrument(s, foo(s.logger), decorator.Null[Nothing, Nothing](s.logger))

	_, err := op.Execute(ctx, Nothing{})
	if err != nil {
		return Report{}, err
	}

	return Report{Scenario: ScenarioNull, Operation: op.Name(), Calls: 1}, nil
}

// NullDynamic first defines greet and only then applies the null decorator.
func (s *Showcase) NullDynamic(ctx context.Context) (Report, error) {
	greet := greeter(s.logger, "greet")

	yetAnotherGreet := decorator.Null[Nothing, string](s.logger)(greet)

	res, err := instrument(s, yetAnotherGreet).Execute(ctx, Nothing{})
	if err != nil {
		return Report{}, err
	}

	return Report{Scenario: ScenarioNullDynamic, Operation: greet.Name(), Result: res, Calls: 1}, nil
}

// Benchmark times a greet operation decorated at definition time.
func (s *Showcase) Benchmark(ctx context.Context) (Report, error) {
	op := instrument(s,
		greeter(s.logger, "yet_another_greet"),
		decorator.NewBenchmarkWrapper[Nothing, string](s.logger),
	)

	res, err := op.Execute(ctx, Nothing{})
	if err != nil {
		return Report{}, err
	}

	return Report{Scenario: ScenarioBenchmark, Operation: op.Name(), Result: res, Calls: 1}, nil
}

// BenchmarkDynamic builds the timing wrapper first and runs it afterwards.
func (s *Showcase) BenchmarkDynamic(ctx context.Context) (Report, error) {
	greet := greeter(s.logger, "one_more_yet_another_greet")

	// the wrapper is created here but greet does not run yet
	wrapper := decorator.NewBenchmarkWrapper[Nothing, string](s.logger)(greet)

	res, err := instrument(s, wrapper).Execute(ctx, Nothing{})
	if err != nil {
		return Report{}, err
	}

	return Report{Scenario: ScenarioBenchmarkDynamic, Operation: greet.Name(), Result: res, Calls: 1}, nil
}

// Forward shows that input reaches the wrapped operation untouched.
func (s *Showcase) Forward(ctx context.Context, in Pair) (Report, error) {
	op := instrument(s, sumOfTwo(s.logger), decorator.NewLoggerWrapper[Pair, int](s.logger))

	res, err := op.Execute(ctx, in)
	if err != nil {
		return Report{}, err
	}

	return Report{Scenario: ScenarioForward, Operation: op.Name(), Result: res, Calls: 1}, nil
}

// ForwardArgs is Forward for an operation taking positional and named inputs.
func (s *Showcase) ForwardArgs(ctx context.Context, args operation.Args) (Report, error) {
	op := instrument(s, sumOfArgs(s.logger), decorator.NewLoggerWrapper[operation.Args, int](s.logger))

	res, err := op.Execute(ctx, args)
	if err != nil {
		return Report{}, err
	}

	return Report{Scenario: ScenarioForwardArgs, Operation: op.Name(), Result: res, Calls: 1}, nil
}

// Limit wraps the sum with the configured call limiter, calls it once and
// checks that the operation ran exactly up to the limit.
func (s *Showcase) Limit(ctx context.Context, in Pair) (Report, error) {
	limiter, err := decorator.NewCallLimiterFromConfig[Pair, int](s.cfg.Limiter)
	if err != nil {
		return Report{}, err
	}

	limited := limiter(instrument(s, sumOfTwo(s.logger)))

	res, err := limited.Execute(ctx, in)
	if err != nil {
		return Report{}, err
	}

	s.logger.WithContext(ctx).With("results", res).Info("limited sum finished")

	if err = CheckCallsCount(limited); err != nil {
		return Report{}, err
	}

	return Report{Scenario: ScenarioLimit, Operation: limited.Name(), Result: res, Calls: limited.CallsCount()}, nil
}

// All runs every scenario in lesson order and stops at the first failure.
func (s *Showcase) All(ctx context.Context) ([]Report, error) {
	steps := []func(context.Context) (Report, error){
		s.Null,
		s.NullDynamic,
		s.Benchmark,
		s.BenchmarkDynamic,
		func(ctx context.Context) (Report, error) { return s.Forward(ctx, Pair{A: 3, B: 4}) },
		func(ctx context.Context) (Report, error) {
			return s.ForwardArgs(ctx, operation.NewArgs(3, 4))
		},
		func(ctx context.Context) (Report, error) { return s.Limit(ctx, Pair{A: 5, B: 6}) },
	}

	reports := make([]Report, 0, len(steps))
	for _, step := range steps {
		r, err := step(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}

	return reports, nil
}

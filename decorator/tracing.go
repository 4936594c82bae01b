package decorator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/decorators/operation"
)

const tracerName = "github.com/rise-and-shine/decorators/decorator"

type TracingWrapper[I operation.Input, R operation.Result] struct {
	tracer trace.Tracer
	next   operation.Operation[I, R]
}

// NewTracingWrapper starts a span named after the operation for every
// invocation. A nil provider falls back to the global one.
func NewTracingWrapper[I operation.Input, R operation.Result](tp trace.TracerProvider) operation.WrapFunc[I, R] {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)

	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &TracingWrapper[I, R]{tracer: tracer, next: next}
	}
}

func (t *TracingWrapper[I, R]) Name() string {
	return t.next.Name()
}

func (t *TracingWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	ctx, span := t.tracer.Start(ctx, t.next.Name(),
		trace.WithAttributes(attribute.String("operation.name", t.next.Name())),
	)
	defer span.End()

	result, err := t.next.Execute(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}

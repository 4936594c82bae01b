package decorator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/decorators/meta"
	"github.com/rise-and-shine/decorators/operation"
)

type MetaInjectWrapper[I operation.Input, R operation.Result] struct {
	serviceName    string
	serviceVersion string
	next           operation.Operation[I, R]
}

// NewMetaInjectWrapper stores per-invocation metadata in the context so that
// loggers further down the chain pick it up.
func NewMetaInjectWrapper[I operation.Input, R operation.Result](
	serviceName, serviceVersion string,
) operation.WrapFunc[I, R] {
	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &MetaInjectWrapper[I, R]{serviceName: serviceName, serviceVersion: serviceVersion, next: next}
	}
}

func (w *MetaInjectWrapper[I, R]) Name() string {
	return w.next.Name()
}

func (w *MetaInjectWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	metadata := map[meta.ContextKey]string{
		meta.TraceID:        getTraceID(ctx),
		meta.InvocationID:   uuid.NewString(),
		meta.OperationName:  w.next.Name(),
		meta.ServiceName:    w.serviceName,
		meta.ServiceVersion: w.serviceVersion,
	}

	ctx = meta.InjectMetaToContext(ctx, metadata)

	return w.next.Execute(ctx, input)
}

// getTraceID extracts the trace ID from the current span in the context.
// An existing trace id from meta wins over a freshly generated one.
func getTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}

	if existing := meta.Find(ctx, meta.TraceID); existing != "" {
		return existing
	}

	return fmt.Sprintf("man-%s", uuid.New().String())
}

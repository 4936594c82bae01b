// Package meta carries per-invocation metadata through context.
//
// Wrappers inject values here so that loggers further down the chain can
// enrich their entries without knowing which wrapper produced them.
package meta

import "context"

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID identifies the trace an invocation belongs to.
	TraceID ContextKey = "trace_id"

	// InvocationID is unique per call of a wrapped operation.
	InvocationID ContextKey = "invocation_id"

	// OperationName is the name of the operation being invoked.
	OperationName ContextKey = "operation_name"

	// ServiceName identifies the name of current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"
)

//nolint:gochecknoglobals // fixed extraction order
var knownKeys = []ContextKey{
	TraceID,
	InvocationID,
	OperationName,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// Empty values are skipped.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns every known, non-empty metadata value found in ctx.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range knownKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns a single metadata value, or an empty string when it is absent.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

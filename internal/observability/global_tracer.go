package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "lazverb"

var globalTracer trace.Tracer

// InitGlobalTracer binds the package tracer to the current global provider
func InitGlobalTracer() {
	globalTracer = otel.Tracer(tracerName)
}

// GetGlobalTracer returns the package tracer
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		globalTracer = otel.Tracer(tracerName)
	}
	return globalTracer
}

// TraceFunction starts a span named service.function
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return GetGlobalTracer().Start(ctx, fmt.Sprintf("%s.%s", serviceName, functionName), trace.WithAttributes(attributes...))
}

// TraceFunctionWithErrorHandling runs fn inside a span, marking the span on error or panic.
func TraceFunctionWithErrorHandling(ctx context.Context, serviceName, functionName string, fn func(context.Context) error, attributes ...attribute.KeyValue) (err error) {
	ctx, span := TraceFunction(ctx, serviceName, functionName, attributes...)
	defer func() {
		if r := recover(); r != nil {
			span.SetAttributes(
				attribute.Bool("error", true),
				attribute.String("error.type", "panic"),
				attribute.String("error.message", fmt.Sprintf("%v", r)),
			)
			span.End()
			panic(r)
		}
		FinishSpan(span, &err)
	}()
	return fn(ctx)
}

func TraceConjugationFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "conjugation", functionName, attributes...)
}

func TraceDictionaryFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "dictionary", functionName, attributes...)
}

func TraceCatalogFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "catalog", functionName, attributes...)
}

func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

func TraceDatabaseFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "database", functionName, attributes...)
}

func AttributeInfinitive(infinitive string) attribute.KeyValue {
	return attribute.String("verb.infinitive", infinitive)
}

func AttributeClass(class string) attribute.KeyValue {
	return attribute.String("verb.class", class)
}

func AttributeCategory(category string) attribute.KeyValue {
	return attribute.String("conjugation.category", category)
}

func AttributeRegions(regions []string) attribute.KeyValue {
	return attribute.StringSlice("conjugation.regions", regions)
}

func AttributeFormCount(n int) attribute.KeyValue {
	return attribute.Int("conjugation.forms", n)
}

func AttributePage(page int) attribute.KeyValue {
	return attribute.Int("pagination.page", page)
}

func AttributePageSize(size int) attribute.KeyValue {
	return attribute.Int("pagination.page_size", size)
}

func AttributeSearch(search string) attribute.KeyValue {
	return attribute.String("filter.search", search)
}

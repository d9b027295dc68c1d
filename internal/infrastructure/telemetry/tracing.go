package telemetry

import (
	"context"
	"errors"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope for application spans
const TracerName = "github.com/Bhargav2112/Flipcart-Clone"

// StartSpan starts an internal span named "{service}.{method}".
// Callers must End the span.
func StartSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err on the span and ends it. Domain errors are caller
// mistakes, so they are recorded as events without failing the span.
func EndSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		return
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		span.AddEvent("domain_error", trace.WithAttributes(
			attribute.String("error.code", de.Code),
			attribute.String("error.message", de.Message),
		))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the active trace id or an empty string
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

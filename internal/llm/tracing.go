package llm

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingProvider is a decorator that opens a span around each Generate
// call, retries included.
type TracingProvider struct {
	inner    Provider
	provider string
	tracer   trace.Tracer
}

// WithTracing wraps a Provider with OpenTelemetry spans.
func WithTracing(p Provider, provider string, tracer trace.Tracer) Provider {
	return &TracingProvider{inner: p, provider: provider, tracer: tracer}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", t.provider),
		attribute.String("llm.model", t.inner.ModelID()),
		attribute.String("llm.purpose", string(PurposeFrom(ctx))),
	}
	if req.Schema != nil {
		attrs = append(attrs, attribute.String("llm.schema", req.Schema.Name))
	}
	ctx, span := t.tracer.Start(ctx, "llm.generate", trace.WithAttributes(attrs...))
	defer span.End()

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Outcome(err))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
		attribute.String("llm.stop_reason", resp.StopReason),
	)
	return resp, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}

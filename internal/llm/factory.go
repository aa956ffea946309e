package llm

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/store"
)

// FactoryOption adds optional middleware to providers built by NewProvider.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	recorder Recorder
	tracer   trace.Tracer
	log      *logger.Logger
}

// WithLogger sets where event-recording failures are reported.
func WithLogger(l *logger.Logger) FactoryOption {
	return func(o *factoryOptions) { o.log = l }
}

// WithRecorder wraps the provider with per-request metrics.
func WithRecorder(r Recorder) FactoryOption {
	return func(o *factoryOptions) { o.recorder = r }
}

// WithTracer wraps the provider with a span per Generate call.
func WithTracer(t trace.Tracer) FactoryOption {
	return func(o *factoryOptions) { o.tracer = t }
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware, plus
// metrics and tracing when requested. A nil eventRepo disables event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, opts ...FactoryOption) (Provider, error) {
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → tracing → retry → metrics → logging → base
	p := base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo, o.log)
	}
	if o.recorder != nil {
		p = WithMetrics(p, cfg.Provider, o.recorder)
	}
	p = WithRetry(p, cfg.Retry, o.log)
	if o.tracer != nil {
		p = WithTracing(p, cfg.Provider, o.tracer)
	}
	return p, nil
}

// NewProviderFromEnv builds a provider from EDUCAREER_* variables, falling
// back to the standard provider API key variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, opts ...FactoryOption) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo, opts...)
}

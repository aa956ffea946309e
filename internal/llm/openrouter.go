package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Sent so OpenRouter attributes usage to the app.
	openRouterTitle   = "EduCareer"
	openRouterReferer = "https://github.com/abhisek/educareer"
)

// OpenRouterProvider is an OpenAIProvider pointed at the OpenRouter API.
// Model ids are routed as-is ("vendor/model").
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openrouter model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	client := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	inner, err := newOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}, client)
	if err != nil {
		return nil, err
	}
	// No friendly-name mapping for routed ids.
	inner.model = cfg.Model
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport adds the OpenRouter app attribution headers.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", openRouterTitle)
	req.Header.Set("HTTP-Referer", openRouterReferer)
	return t.base.RoundTrip(req)
}

// Package openai provides an OpenAI-compatible text-generation provider.
//
// The default endpoint is Gemini's OpenAI-compatible API, so a Gemini key and
// model name work without further setup. Any other compatible service can be
// selected with WithBaseURL.
//
// Example usage:
//
//	provider, err := openai.NewProvider(
//	    os.Getenv("GEMINI_API_KEY"),
//	    openai.WithModel("gemini-2.5-flash"),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	text, err := provider.Generate(context.Background(), "", "Hello!")
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/entrhq/pagesage/pkg/llm"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.5-flash"
)

// Provider implements llm.Generator for OpenAI-compatible chat completion APIs.
type Provider struct {
	client     openai.Client
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

var _ llm.Generator = (*Provider)(nil)

// ProviderOption is a function that configures a Provider.
type ProviderOption func(*Provider)

// WithModel sets the default model for Generate calls that pass no model.
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(client *http.Client) ProviderOption {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewProvider creates a provider with the given API key.
//
// An empty key is accepted: the provider is still returned so the caller can
// start up, and every Generate call fails with llm.ErrMissingAPIKey.
func NewProvider(apiKey string, opts ...ProviderOption) (*Provider, error) {
	p := &Provider{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(p)
	}

	if !strings.HasPrefix(p.baseURL, "http://") && !strings.HasPrefix(p.baseURL, "https://") {
		return nil, fmt.Errorf("invalid base URL %q: must start with http:// or https://", p.baseURL)
	}

	// Retries are disabled: a failed generation is reported to the user as-is.
	p.client = openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(p.baseURL),
		option.WithHTTPClient(p.httpClient),
		option.WithMaxRetries(0),
	)

	return p, nil
}

// Generate sends prompt as a single user message and returns the first choice.
func (p *Provider) Generate(ctx context.Context, model, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", llm.ErrMissingAPIKey
	}
	if model == "" {
		model = p.model
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", describeError(err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", model)
	}

	return completion.Choices[0].Message.Content, nil
}

// describeError keeps the service's own message when the API returned one.
func describeError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Errorf("%s (status %d)", apiErr.Message, apiErr.StatusCode)
	}
	return err
}

// GetModel returns the default model name.
func (p *Provider) GetModel() string {
	return p.model
}

// GetBaseURL returns the base URL being used.
func (p *Provider) GetBaseURL() string {
	return p.baseURL
}

// HasAPIKey reports whether a credential was supplied.
func (p *Provider) HasAPIKey() bool {
	return p.apiKey != ""
}

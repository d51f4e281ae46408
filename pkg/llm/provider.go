// Package llm defines the remote text-generation service used by the
// orchestrator.
//
// The service is treated as a black box: one model identifier and one
// free-text prompt in, generated text or an error out. No streaming, no
// tool calls, no conversation history.
//
// Example usage:
//
//	provider, err := openai.NewProvider(
//	    os.Getenv("GEMINI_API_KEY"),
//	    openai.WithModel("gemini-2.5-flash"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := provider.Generate(ctx, "", "Summarize: ...")
package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned by providers that were built without a credential.
var ErrMissingAPIKey = errors.New("API key is not configured")

// Generator produces text for a single prompt.
type Generator interface {
	// Generate sends prompt to model and returns the generated text.
	// An empty model selects the provider's default.
	Generate(ctx context.Context, model, prompt string) (string, error)
}

package config

import (
	"fmt"
	"os"

	"github.com/entrhq/pagesage/pkg/llm/openai"
)

// API key variables, in lookup order.
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "OPENAI_API_KEY"}

const baseURLEnvVar = "PAGESAGE_BASE_URL"

// LLMSettings is the resolved model endpoint configuration.
type LLMSettings struct {
	Model   string
	BaseURL string
	APIKey  string
}

// ResolveLLM merges settings with precedence
// CLI flags > environment > config file > defaults.
// getenv is os.Getenv when nil. file may be nil.
func ResolveLLM(cli LLMSettings, file *LLMSection, getenv func(string) string) LLMSettings {
	if getenv == nil {
		getenv = os.Getenv
	}

	final := cli

	if final.APIKey == "" {
		for _, name := range apiKeyEnvVars {
			if v := getenv(name); v != "" {
				final.APIKey = v
				break
			}
		}
	}
	if final.BaseURL == "" {
		final.BaseURL = getenv(baseURLEnvVar)
	}

	if file != nil {
		if final.Model == "" {
			final.Model = file.GetModel()
		}
		if final.BaseURL == "" {
			final.BaseURL = file.GetBaseURL()
		}
		if final.APIKey == "" {
			final.APIKey = file.GetAPIKey()
		}
	}

	if final.Model == "" {
		final.Model = DefaultModel
	}
	if final.BaseURL == "" {
		final.BaseURL = DefaultBaseURL
	}
	return final
}

// BuildProvider creates the LLM provider from resolved settings. A missing API
// key is not an error here; every generation will fail until one is set.
func BuildProvider(settings LLMSettings) (*openai.Provider, error) {
	provider, err := openai.NewProvider(settings.APIKey,
		openai.WithModel(settings.Model),
		openai.WithBaseURL(settings.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	return provider, nil
}

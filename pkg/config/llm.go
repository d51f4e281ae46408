package config

import (
	"fmt"
	"strings"
	"sync"
)

const (
	SectionIDLLM = "llm"

	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// LLMSection holds model endpoint settings.
type LLMSection struct {
	Model   string
	BaseURL string
	APIKey  string
	mu      sync.RWMutex
}

// NewLLMSection creates an LLM section with defaults.
func NewLLMSection() *LLMSection {
	return &LLMSection{
		Model:   DefaultModel,
		BaseURL: DefaultBaseURL,
	}
}

func (s *LLMSection) ID() string    { return SectionIDLLM }
func (s *LLMSection) Title() string { return "LLM" }
func (s *LLMSection) Description() string {
	return "Model, endpoint and API key used to generate summaries."
}

func (s *LLMSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"model":    s.Model,
		"base_url": s.BaseURL,
		"api_key":  s.APIKey,
	}
}

func (s *LLMSection) SetData(data map[string]any) error {
	model, hasModel, err := stringValue(data, "model")
	if err != nil {
		return err
	}
	baseURL, hasBaseURL, err := stringValue(data, "base_url")
	if err != nil {
		return err
	}
	apiKey, hasAPIKey, err := stringValue(data, "api_key")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if hasModel {
		s.Model = model
	}
	if hasBaseURL {
		s.BaseURL = baseURL
	}
	if hasAPIKey {
		s.APIKey = apiKey
	}
	return nil
}

func (s *LLMSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.BaseURL != "" && !strings.HasPrefix(s.BaseURL, "http://") && !strings.HasPrefix(s.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://")
	}
	return nil
}

func (s *LLMSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Model = DefaultModel
	s.BaseURL = DefaultBaseURL
	s.APIKey = ""
}

func (s *LLMSection) GetModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Model
}

func (s *LLMSection) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Model = model
}

func (s *LLMSection) GetBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BaseURL
}

func (s *LLMSection) SetBaseURL(baseURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BaseURL = baseURL
}

func (s *LLMSection) GetAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.APIKey
}

func (s *LLMSection) SetAPIKey(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.APIKey = apiKey
}

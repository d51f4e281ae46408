package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	appconfig "github.com/entrhq/pagesage/pkg/config"
)

const maskedSecret = "********"

// configCommand reports whether a config maintenance flag was given.
func (c *Config) configCommand() bool {
	return c.ShowConfig || c.SaveConfig || c.ResetConfig
}

// runConfigCommand resets, updates, saves and prints the configuration as
// the flags ask.
func runConfigCommand(w io.Writer, m *appconfig.Manager, config *Config) error {
	switch {
	case config.ResetConfig:
		m.ResetAll()
	case config.SaveConfig:
		if err := applyFlags(m, config); err != nil {
			return err
		}
	}

	if config.ResetConfig || config.SaveConfig {
		if err := m.SaveAll(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		if fs, ok := m.Store().(*appconfig.FileStore); ok {
			fmt.Fprintf(w, "Configuration written to %s\n", fs.Path())
		}
	}

	if config.ShowConfig {
		return printConfig(w, m)
	}
	return nil
}

// applyFlags copies explicitly given flags into their sections.
func applyFlags(m *appconfig.Manager, config *Config) error {
	if s, ok := m.GetSection(appconfig.SectionIDLLM); ok {
		llmSection := s.(*appconfig.LLMSection)
		if config.Model != "" {
			llmSection.SetModel(config.Model)
		}
		if config.BaseURL != "" {
			llmSection.SetBaseURL(config.BaseURL)
		}
		if config.APIKey != "" {
			llmSection.SetAPIKey(config.APIKey)
		}
	}

	if s, ok := m.GetSection(appconfig.SectionIDUI); ok && config.Language != "" {
		s.(*appconfig.UISection).SetLanguage(config.Language)
	}

	if s, ok := m.GetSection(appconfig.SectionIDBrowser); ok {
		data := map[string]any{}
		if config.set["headless"] {
			data["headless"] = config.Headless
		}
		if config.CDPEndpoint != "" {
			data["cdp_endpoint"] = config.CDPEndpoint
		}
		if config.URL != "" {
			data["start_url"] = config.URL
		}
		if err := s.SetData(data); err != nil {
			return err
		}
	}
	return nil
}

// printConfig writes every section as YAML. The API key is masked.
func printConfig(w io.Writer, m *appconfig.Manager) error {
	for _, s := range m.GetSections() {
		data := s.Data()
		if key, ok := data["api_key"].(string); ok && key != "" {
			data["api_key"] = maskedSecret
		}

		out, err := yaml.Marshal(map[string]any{s.ID(): data})
		if err != nil {
			return fmt.Errorf("failed to encode section %s: %w", s.ID(), err)
		}
		fmt.Fprintf(w, "# %s: %s\n%s", s.Title(), s.Description(), out)
	}
	return nil
}

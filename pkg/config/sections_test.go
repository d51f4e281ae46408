package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pagesage/pkg/orchestrator"
)

const sampleConfig = `version: "1"
sections:
  llm:
    model: gemini-2.0-flash
    api_key: file-key
  browser:
    headless: true
    cdp_endpoint: http://localhost:9222
  orchestrator:
    restricted_patterns:
      - "chrome://*"
      - "https://intranet.example.com/*"
    ping_timeout: 500ms
    extract_timeout: 3000
  ui:
    language: ja
`

func loadSample(t *testing.T) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	m, err := NewDefaultManager(store)
	require.NoError(t, err)
	return m
}

func TestNewDefaultManager_LoadsSections(t *testing.T) {
	m := loadSample(t)

	s, ok := m.GetSection(SectionIDLLM)
	require.True(t, ok)
	llmSection := s.(*LLMSection)
	assert.Equal(t, "gemini-2.0-flash", llmSection.GetModel())
	assert.Equal(t, DefaultBaseURL, llmSection.GetBaseURL())
	assert.Equal(t, "file-key", llmSection.GetAPIKey())

	s, _ = m.GetSection(SectionIDBrowser)
	browser := s.(*BrowserSection).Snapshot()
	assert.True(t, browser.Headless)
	assert.Equal(t, "http://localhost:9222", browser.CDPEndpoint)

	s, _ = m.GetSection(SectionIDOrchestrator)
	orch := s.(*OrchestratorSection)
	assert.Equal(t, []string{"chrome://*", "https://intranet.example.com/*"}, orch.GetRestrictedPatterns())
	timeouts := orch.GetTimeouts()
	assert.Equal(t, 500*time.Millisecond, timeouts.Ping)
	assert.Equal(t, 3*time.Second, timeouts.Extract)
	assert.Equal(t, orchestrator.DefaultTimeouts().Generate, timeouts.Generate)

	s, _ = m.GetSection(SectionIDUI)
	assert.Equal(t, "ja", s.(*UISection).GetLanguage())
}

func TestNewDefaultManager_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"wrong type":       "sections:\n  browser:\n    headless: \"yes\"\n",
		"bad duration":     "sections:\n  orchestrator:\n    ping_timeout: soon\n",
		"bad pattern":      "sections:\n  orchestrator:\n    restricted_patterns: [\"chrome://[x\"]\n",
		"bad language":     "sections:\n  ui:\n    language: fr\n",
		"bad base url":     "sections:\n  llm:\n    base_url: localhost:8080\n",
		"bad cdp endpoint": "sections:\n  browser:\n    cdp_endpoint: localhost:9222\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0600))
			store, err := NewFileStore(path)
			require.NoError(t, err)

			_, err = NewDefaultManager(store)
			assert.Error(t, err)
		})
	}
}

func TestSections_RoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	m, err := NewDefaultManager(store)
	require.NoError(t, err)

	s, _ := m.GetSection(SectionIDUI)
	s.(*UISection).SetLanguage("ja")
	s, _ = m.GetSection(SectionIDLLM)
	s.(*LLMSection).SetModel("custom-model")
	require.NoError(t, m.SaveAll())

	store2, err := NewFileStore(path)
	require.NoError(t, err)
	m2, err := NewDefaultManager(store2)
	require.NoError(t, err)

	s, _ = m2.GetSection(SectionIDUI)
	assert.Equal(t, "ja", s.(*UISection).GetLanguage())
	s, _ = m2.GetSection(SectionIDLLM)
	assert.Equal(t, "custom-model", s.(*LLMSection).GetModel())
	s, _ = m2.GetSection(SectionIDOrchestrator)
	assert.Equal(t, orchestrator.DefaultTimeouts(), s.(*OrchestratorSection).GetTimeouts())
}

func TestSections_Reset(t *testing.T) {
	m := loadSample(t)
	m.ResetAll()

	s, _ := m.GetSection(SectionIDLLM)
	assert.Equal(t, DefaultModel, s.(*LLMSection).GetModel())
	assert.Empty(t, s.(*LLMSection).GetAPIKey())
	s, _ = m.GetSection(SectionIDUI)
	assert.Equal(t, DefaultLanguage, s.(*UISection).GetLanguage())
	s, _ = m.GetSection(SectionIDOrchestrator)
	assert.Equal(t, orchestrator.DefaultRestrictedPatterns, s.(*OrchestratorSection).GetRestrictedPatterns())
}

func TestInitializeAndGlobalGetters(t *testing.T) {
	globalMu.Lock()
	prev := globalManager
	globalManager = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		globalMu.Lock()
		globalManager = prev
		globalMu.Unlock()
	})

	assert.Nil(t, GetLLM())
	assert.False(t, IsInitialized())

	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "config.yaml")))
	assert.True(t, IsInitialized())
	require.NotNil(t, GetLLM())
	require.NotNil(t, GetBrowser())
	require.NotNil(t, GetOrchestrator())
	require.NotNil(t, GetUI())
	assert.Equal(t, DefaultModel, GetLLM().GetModel())
}

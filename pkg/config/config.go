package config

import (
	"sync"
)

var (
	globalManager *Manager
	globalMu      sync.Mutex
)

// NewDefaultManager builds a manager with every pagesage section registered
// and loads it from store.
func NewDefaultManager(store Store) (*Manager, error) {
	manager := NewManager(store)

	sections := []Section{
		NewLLMSection(),
		NewBrowserSection(),
		NewOrchestratorSection(),
		NewUISection(),
	}
	for _, s := range sections {
		if err := manager.RegisterSection(s); err != nil {
			return nil, err
		}
	}

	if err := manager.LoadAll(); err != nil {
		return nil, err
	}
	return manager, nil
}

// Initialize creates the global configuration manager from the file at
// configPath, or the default path when empty.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager, err := NewDefaultManager(store)
	if err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

func globalSection(id string) Section {
	if !IsInitialized() {
		return nil
	}
	section, ok := Global().GetSection(id)
	if !ok {
		return nil
	}
	return section
}

// GetLLM returns the LLM section, or nil before Initialize.
func GetLLM() *LLMSection {
	s, _ := globalSection(SectionIDLLM).(*LLMSection)
	return s
}

// GetBrowser returns the browser section, or nil before Initialize.
func GetBrowser() *BrowserSection {
	s, _ := globalSection(SectionIDBrowser).(*BrowserSection)
	return s
}

// GetOrchestrator returns the orchestrator section, or nil before Initialize.
func GetOrchestrator() *OrchestratorSection {
	s, _ := globalSection(SectionIDOrchestrator).(*OrchestratorSection)
	return s
}

// GetUI returns the UI section, or nil before Initialize.
func GetUI() *UISection {
	s, _ := globalSection(SectionIDUI).(*UISection)
	return s
}

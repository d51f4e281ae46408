package config

import (
	"fmt"
	"sync"
)

// Section is one named block of the configuration file.
type Section interface {
	// ID is the key of the section in the file.
	ID() string
	// Title is a short human-readable name.
	Title() string
	// Description explains what the section controls.
	Description() string
	// Data returns the section as plain values suitable for the store.
	Data() map[string]any
	// SetData loads values read from the store. Unknown keys are ignored.
	SetData(data map[string]any) error
	// Validate checks the current values.
	Validate() error
	// Reset restores defaults.
	Reset()
}

// Manager keeps registered sections in sync with a Store.
type Manager struct {
	mu       sync.RWMutex
	store    Store
	sections map[string]Section
	order    []string
}

// NewManager creates a manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// RegisterSection adds s. Registering the same id twice is an error.
func (m *Manager) RegisterSection(s Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sections[s.ID()]; exists {
		return fmt.Errorf("section %q already registered", s.ID())
	}
	m.sections[s.ID()] = s
	m.order = append(m.order, s.ID())
	return nil
}

// GetSection returns the section with id.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sections[id]
	return s, ok
}

// GetSections returns every section in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sections[id])
	}
	return out
}

// LoadAll reloads the store and pushes its data into every section.
func (m *Manager) LoadAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	for _, id := range m.order {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to read section %s: %w", id, err)
		}
		if len(data) == 0 {
			continue
		}
		if err := m.sections[id].SetData(data); err != nil {
			return fmt.Errorf("invalid section %s: %w", id, err)
		}
		if err := m.sections[id].Validate(); err != nil {
			return fmt.Errorf("invalid section %s: %w", id, err)
		}
	}
	return nil
}

// SaveAll writes every section to the store and persists it.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		s := m.sections[id]
		if err := s.Validate(); err != nil {
			return fmt.Errorf("invalid section %s: %w", id, err)
		}
		if err := m.store.SetSection(id, s.Data()); err != nil {
			return fmt.Errorf("failed to store section %s: %w", id, err)
		}
	}
	return m.store.Save()
}

// ResetAll restores defaults in every section without saving.
func (m *Manager) ResetAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		m.sections[id].Reset()
	}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

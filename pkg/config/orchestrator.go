package config

import (
	"fmt"
	"sync"

	"github.com/entrhq/pagesage/pkg/orchestrator"
)

const SectionIDOrchestrator = "orchestrator"

// OrchestratorSection holds the page guard and per-step deadlines.
type OrchestratorSection struct {
	RestrictedPatterns []string
	Timeouts           orchestrator.Timeouts
	mu                 sync.RWMutex
}

func NewOrchestratorSection() *OrchestratorSection {
	return &OrchestratorSection{
		RestrictedPatterns: append([]string(nil), orchestrator.DefaultRestrictedPatterns...),
		Timeouts:           orchestrator.DefaultTimeouts(),
	}
}

func (s *OrchestratorSection) ID() string    { return SectionIDOrchestrator }
func (s *OrchestratorSection) Title() string { return "Orchestrator" }
func (s *OrchestratorSection) Description() string {
	return "Restricted URL patterns and request deadlines."
}

func (s *OrchestratorSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"restricted_patterns": append([]string(nil), s.RestrictedPatterns...),
		"ping_timeout":        s.Timeouts.Ping.String(),
		"extract_timeout":     s.Timeouts.Extract.String(),
		"generate_timeout":    s.Timeouts.Generate.String(),
	}
}

func (s *OrchestratorSection) SetData(data map[string]any) error {
	patterns, hasPatterns, err := stringsValue(data, "restricted_patterns")
	if err != nil {
		return err
	}
	ping, hasPing, err := durationValue(data, "ping_timeout")
	if err != nil {
		return err
	}
	extract, hasExtract, err := durationValue(data, "extract_timeout")
	if err != nil {
		return err
	}
	generate, hasGenerate, err := durationValue(data, "generate_timeout")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if hasPatterns {
		s.RestrictedPatterns = patterns
	}
	if hasPing {
		s.Timeouts.Ping = ping
	}
	if hasExtract {
		s.Timeouts.Extract = extract
	}
	if hasGenerate {
		s.Timeouts.Generate = generate
	}
	return nil
}

func (s *OrchestratorSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Timeouts.Ping < 0 || s.Timeouts.Extract < 0 || s.Timeouts.Generate < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if _, err := orchestrator.NewGuard(s.RestrictedPatterns); err != nil {
		return err
	}
	return nil
}

func (s *OrchestratorSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RestrictedPatterns = append([]string(nil), orchestrator.DefaultRestrictedPatterns...)
	s.Timeouts = orchestrator.DefaultTimeouts()
}

func (s *OrchestratorSection) GetRestrictedPatterns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.RestrictedPatterns...)
}

func (s *OrchestratorSection) GetTimeouts() orchestrator.Timeouts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Timeouts
}

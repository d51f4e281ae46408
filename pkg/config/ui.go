package config

import (
	"fmt"
	"sync"
)

const (
	SectionIDUI = "ui"

	DefaultLanguage = "en"
)

// SupportedLanguages lists the languages with message catalogues.
var SupportedLanguages = []string{"en", "ja"}

// UISection holds popup presentation settings.
type UISection struct {
	Language string
	mu       sync.RWMutex
}

func NewUISection() *UISection {
	return &UISection{Language: DefaultLanguage}
}

func (s *UISection) ID() string          { return SectionIDUI }
func (s *UISection) Title() string       { return "UI" }
func (s *UISection) Description() string { return "Language of popup and reply messages." }

func (s *UISection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{"language": s.Language}
}

func (s *UISection) SetData(data map[string]any) error {
	lang, ok, err := stringValue(data, "language")
	if err != nil {
		return err
	}
	if ok {
		s.mu.Lock()
		s.Language = lang
		s.mu.Unlock()
	}
	return nil
}

func (s *UISection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range SupportedLanguages {
		if s.Language == l {
			return nil
		}
	}
	return fmt.Errorf("unsupported language %q", s.Language)
}

func (s *UISection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Language = DefaultLanguage
}

func (s *UISection) GetLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Language
}

func (s *UISection) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Language = lang
}

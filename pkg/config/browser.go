package config

import (
	"fmt"
	"strings"
	"sync"
)

const SectionIDBrowser = "browser"

// BrowserSection controls the browser the assistant drives.
type BrowserSection struct {
	// Headless hides the browser window.
	Headless bool
	// CDPEndpoint attaches to a running Chromium instead of launching one.
	CDPEndpoint string
	// StartURL is opened in the first tab of a launched browser.
	StartURL string
	mu       sync.RWMutex
}

func NewBrowserSection() *BrowserSection {
	return &BrowserSection{}
}

func (s *BrowserSection) ID() string          { return SectionIDBrowser }
func (s *BrowserSection) Title() string       { return "Browser" }
func (s *BrowserSection) Description() string { return "Browser launch and attach settings." }

func (s *BrowserSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"headless":     s.Headless,
		"cdp_endpoint": s.CDPEndpoint,
		"start_url":    s.StartURL,
	}
}

func (s *BrowserSection) SetData(data map[string]any) error {
	headless, hasHeadless, err := boolValue(data, "headless")
	if err != nil {
		return err
	}
	cdp, hasCDP, err := stringValue(data, "cdp_endpoint")
	if err != nil {
		return err
	}
	startURL, hasStartURL, err := stringValue(data, "start_url")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if hasHeadless {
		s.Headless = headless
	}
	if hasCDP {
		s.CDPEndpoint = cdp
	}
	if hasStartURL {
		s.StartURL = startURL
	}
	return nil
}

func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.CDPEndpoint == "" {
		return nil
	}
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s.CDPEndpoint, prefix) {
			return nil
		}
	}
	return fmt.Errorf("cdp_endpoint must be an http(s) or ws(s) URL")
}

func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = false
	s.CDPEndpoint = ""
	s.StartURL = ""
}

// Snapshot returns the current values without the lock.
func (s *BrowserSection) Snapshot() BrowserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BrowserSettings{Headless: s.Headless, CDPEndpoint: s.CDPEndpoint, StartURL: s.StartURL}
}

// BrowserSettings is a read-only copy of BrowserSection.
type BrowserSettings struct {
	Headless    bool
	CDPEndpoint string
	StartURL    string
}

package orchestrator

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultRestrictedPatterns lists browser-internal pages whose content cannot
// be read or scripted.
var DefaultRestrictedPatterns = []string{
	"chrome://*",
	"chrome-extension://*",
	"chrome-untrusted://*",
	"chrome-search://*",
	"edge://*",
	"brave://*",
	"about:*",
	"devtools://*",
	"view-source:*",
	"moz-extension://*",
	"https://chrome.google.com/webstore*",
	"https://chromewebstore.google.com*",
}

// Guard decides whether a tab URL belongs to a restricted page.
type Guard struct {
	patterns []glob.Glob
	sources  []string
}

// NewGuard compiles the given glob patterns. Matching is case-insensitive on
// the URL scheme and host because patterns are lowered along with the URL.
func NewGuard(patterns []string) (*Guard, error) {
	g := &Guard{}
	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid restricted pattern '%s': %w", pattern, err)
		}
		g.patterns = append(g.patterns, compiled)
		g.sources = append(g.sources, pattern)
	}
	return g, nil
}

// MustDefaultGuard returns a guard for DefaultRestrictedPatterns.
func MustDefaultGuard() *Guard {
	g, err := NewGuard(DefaultRestrictedPatterns)
	if err != nil {
		panic(err)
	}
	return g
}

// IsRestricted reports whether url matches any restricted pattern.
func (g *Guard) IsRestricted(url string) bool {
	url = strings.ToLower(strings.TrimSpace(url))
	for _, p := range g.patterns {
		if p.Match(url) {
			return true
		}
	}
	return false
}

// Patterns returns the compiled pattern sources.
func (g *Guard) Patterns() []string {
	out := make([]string, len(g.sources))
	copy(out, g.sources)
	return out
}

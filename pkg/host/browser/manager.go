package browser

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/pagesage/pkg/logging"
)

// Manager owns the Playwright driver and the browser behind a Host.
type Manager struct {
	mu          sync.Mutex
	playwright  *playwright.Playwright
	browser     playwright.Browser
	context     playwright.BrowserContext
	host        *Host
	owned       bool
	initialized bool
	log         *logging.Logger
}

// NewManager creates a manager. Call Initialize before Open.
func NewManager(log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard("browser")
	}
	return &Manager{log: log}
}

// Initialize installs and starts the Playwright driver with Chromium.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Driver output would corrupt the terminal UI.
	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// Open launches or attaches to a browser and returns its Host.
func (m *Manager) Open(ctx context.Context, opts Options) (*Host, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil, fmt.Errorf("browser manager not initialized")
	}
	if m.host != nil {
		return m.host, nil
	}

	var err error
	if opts.CDPEndpoint != "" {
		err = m.attach(ctx, opts)
	} else {
		err = m.launch(ctx, opts)
	}
	if err != nil {
		return nil, err
	}

	h := newHost(m.log)
	track := func(p playwright.Page) {
		h.attach(p)
		p.OnClose(func(closed playwright.Page) { h.detach(closed) })
	}
	m.context.OnPage(track)
	for _, p := range m.context.Pages() {
		track(p)
	}

	m.host = h
	return h, nil
}

func (m *Manager) attach(ctx context.Context, opts Options) error {
	browser, err := await(ctx, func() (playwright.Browser, error) {
		return m.playwright.Chromium.ConnectOverCDP(opts.CDPEndpoint)
	})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", opts.CDPEndpoint, err)
	}

	contexts := browser.Contexts()
	if len(contexts) == 0 {
		_ = browser.Close()
		return fmt.Errorf("browser at %s has no open contexts", opts.CDPEndpoint)
	}

	m.browser = browser
	m.context = contexts[0]
	m.owned = false
	m.log.Infof("attached to browser at %s", opts.CDPEndpoint)
	return nil
}

func (m *Manager) launch(ctx context.Context, opts Options) error {
	browser, err := await(ctx, func() (playwright.Browser, error) {
		return m.playwright.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(opts.Headless),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		return fmt.Errorf("failed to create context: %w", err)
	}

	p, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		browser.Close()
		return fmt.Errorf("failed to create page: %w", err)
	}

	if opts.StartURL != "" {
		if _, err := await(ctx, func() (playwright.Response, error) {
			return p.Goto(opts.StartURL)
		}); err != nil {
			// The tab stays open on the error page.
			m.log.Warnf("failed to open %s: %v", opts.StartURL, err)
		}
	}

	m.browser = browser
	m.context = bctx
	m.owned = true
	m.log.Infof("launched browser (headless=%t)", opts.Headless)
	return nil
}

// Shutdown closes a launched browser, disconnects from an attached one, and
// stops the driver.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owned && m.context != nil {
		_ = m.context.Close()
	}
	if m.browser != nil {
		_ = m.browser.Close()
	}
	m.browser = nil
	m.context = nil
	m.host = nil

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}
	return nil
}

// Package static implements host capabilities for a single fixed URL without
// a browser. The page is fetched over HTTP when text is requested and its
// visible text is computed from the parsed HTML.
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/entrhq/pagesage/pkg/extractor"
	"github.com/entrhq/pagesage/pkg/host"
	"github.com/entrhq/pagesage/pkg/logging"
	"github.com/entrhq/pagesage/pkg/types"
)

// TabID is the id of the only tab.
const TabID = 1

// DefaultMaxBodyBytes bounds how much of a response is read.
const DefaultMaxBodyBytes = 10 << 20

const userAgent = "pagesage/1.0 (+https://github.com/entrhq/pagesage)"

// Host serves one URL as the active tab.
type Host struct {
	url       string
	client    *http.Client
	maxBytes  int64
	listeners *host.Listeners
	log       *logging.Logger

	mu       sync.Mutex
	injected bool
}

var _ host.Host = (*Host)(nil)

// Option configures a Host.
type Option func(*Host)

// WithHTTPClient sets the client used to fetch the page.
func WithHTTPClient(c *http.Client) Option {
	return func(h *Host) {
		if c != nil {
			h.client = c
		}
	}
}

// WithMaxBodyBytes bounds the response size read.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Host) {
		if n > 0 {
			h.maxBytes = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// New creates a host whose active tab shows url. An empty url means there is
// no active tab.
func New(url string, opts ...Option) *Host {
	h := &Host{
		url:       url,
		client:    &http.Client{Timeout: 30 * time.Second},
		maxBytes:  DefaultMaxBodyBytes,
		listeners: host.NewListeners(),
		log:       logging.Discard("static"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ActiveTab returns the single tab, or nil when no URL is configured.
func (h *Host) ActiveTab(ctx context.Context) (*host.Tab, error) {
	if h.url == "" {
		return nil, nil
	}
	return &host.Tab{ID: TabID, URL: h.url}, nil
}

// InjectScript registers the extractor for the tab.
func (h *Host) InjectScript(ctx context.Context, tabID int, file string) error {
	if file != host.ContentScriptPath {
		return fmt.Errorf("%w: %s", host.ErrScriptNotFound, file)
	}
	if tabID != TabID || h.url == "" {
		return fmt.Errorf("%w: %d", host.ErrTabNotFound, tabID)
	}

	source := extractor.TextSourceFunc(h.fetchText)
	h.listeners.Register(tabID, extractor.New(source, extractor.WithLogger(h.log.Named("extractor"))))

	h.mu.Lock()
	h.injected = true
	h.mu.Unlock()
	return nil
}

// SendToTab delivers msg to the tab's extractor.
func (h *Host) SendToTab(ctx context.Context, tabID int, msg types.PageMessage) (types.PageTextReply, error) {
	if tabID != TabID || h.url == "" {
		return types.PageTextReply{}, fmt.Errorf("%w: %d", host.ErrTabNotFound, tabID)
	}
	return h.listeners.Deliver(ctx, tabID, msg)
}

// Injected reports whether the extractor has been registered.
func (h *Host) Injected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.injected
}

func (h *Host) fetchText(ctx context.Context) (string, error) {
	text, truncated, err := h.fetch(ctx)
	if err != nil {
		return "", err
	}
	if truncated {
		h.log.Warnf("page %s is larger than %d bytes; text was cut at the limit", h.url, h.maxBytes)
	}
	h.log.Debugf("fetched %s: %d characters of text", h.url, len(text))
	return text, nil
}

// fetch returns the visible text of at most maxBytes of the body and whether
// the body went on past that.
func (h *Host) fetch(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to build request for %s: %w", h.url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch URL %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false, fmt.Errorf("failed to fetch URL %s: status %d", h.url, resp.StatusCode)
	}

	body := &io.LimitedReader{R: resp.Body, N: h.maxBytes}
	text, err := VisibleText(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", false, err
	}

	truncated := false
	if body.N <= 0 {
		var next [1]byte
		n, _ := io.ReadFull(resp.Body, next[:])
		truncated = n > 0
	}
	return text, truncated, nil
}

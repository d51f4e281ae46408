package browser

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/entrhq/pagesage/pkg/extractor"
	"github.com/entrhq/pagesage/pkg/host"
	"github.com/entrhq/pagesage/pkg/logging"
	"github.com/entrhq/pagesage/pkg/types"
)

// Host exposes browser pages as tabs.
type Host struct {
	mu     sync.RWMutex
	tabs   map[int]page
	ids    map[page]int
	nextID int

	listeners *host.Listeners
	log       *logging.Logger
}

var _ host.Host = (*Host)(nil)

func newHost(log *logging.Logger) *Host {
	if log == nil {
		log = logging.Discard("browser")
	}
	return &Host{
		tabs:      make(map[int]page),
		ids:       make(map[page]int),
		nextID:    1,
		listeners: host.NewListeners(),
		log:       log,
	}
}

// attach assigns p a tab id. Attaching a known page returns its id.
func (h *Host) attach(p page) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id, ok := h.ids[p]; ok {
		return id
	}
	id := h.nextID
	h.nextID++
	h.tabs[id] = p
	h.ids[p] = id
	h.log.Debugf("tab %d opened: %s", id, p.URL())
	return id
}

// detach forgets p and its extractor.
func (h *Host) detach(p page) {
	h.mu.Lock()
	id, ok := h.ids[p]
	if ok {
		delete(h.ids, p)
		delete(h.tabs, id)
	}
	h.mu.Unlock()

	if ok {
		h.listeners.Remove(id)
		h.log.Debugf("tab %d closed", id)
	}
}

func (h *Host) page(tabID int) (page, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	p, ok := h.tabs[tabID]
	if !ok || p.IsClosed() {
		return nil, fmt.Errorf("%w: %d", host.ErrTabNotFound, tabID)
	}
	return p, nil
}

// openTabs returns open tab ids, newest first.
func (h *Host) openTabs() []int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]int, 0, len(h.tabs))
	for id, p := range h.tabs {
		if !p.IsClosed() {
			ids = append(ids, id)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	return ids
}

// ActiveTab returns the visible, focused page. When no page reports focus,
// as with headless browsers, the newest open page is used. With no open pages
// the result is nil.
func (h *Host) ActiveTab(ctx context.Context) (*host.Tab, error) {
	ids := h.openTabs()
	if len(ids) == 0 {
		return nil, nil
	}

	for _, id := range ids {
		p, err := h.page(id)
		if err != nil {
			continue
		}
		focused, err := await(ctx, func() (interface{}, error) {
			return p.Evaluate(focusScript)
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			h.log.Debugf("focus check failed for tab %d: %v", id, err)
			continue
		}
		if ok, _ := focused.(bool); ok {
			return &host.Tab{ID: id, URL: p.URL()}, nil
		}
	}

	p, err := h.page(ids[0])
	if err != nil {
		return nil, nil
	}
	return &host.Tab{ID: ids[0], URL: p.URL()}, nil
}

// InjectScript installs the content script in the tab and registers its
// extractor. Injecting twice is harmless.
func (h *Host) InjectScript(ctx context.Context, tabID int, file string) error {
	if file != host.ContentScriptPath {
		return fmt.Errorf("%w: %s", host.ErrScriptNotFound, file)
	}

	p, err := h.page(tabID)
	if err != nil {
		return err
	}

	if _, err := await(ctx, func() (interface{}, error) {
		return p.Evaluate(contentScript)
	}); err != nil {
		return fmt.Errorf("evaluate content script: %w", err)
	}

	source := extractor.TextSourceFunc(func(ctx context.Context) (string, error) {
		return pageText(ctx, p)
	})
	h.listeners.Register(tabID, extractor.New(source, extractor.WithLogger(h.log.Named("extractor"))))
	h.log.Debugf("content script injected into tab %d", tabID)
	return nil
}

// SendToTab delivers msg to the tab's extractor. A page that has navigated
// since injection has no receiver.
func (h *Host) SendToTab(ctx context.Context, tabID int, msg types.PageMessage) (types.PageTextReply, error) {
	p, err := h.page(tabID)
	if err != nil {
		return types.PageTextReply{}, err
	}

	if _, ok := h.listeners.Get(tabID); !ok {
		return types.PageTextReply{}, host.ErrNoReceiver
	}

	present, err := await(ctx, func() (interface{}, error) {
		return p.Evaluate(markerScript)
	})
	if err != nil {
		if ctx.Err() != nil {
			return types.PageTextReply{}, ctx.Err()
		}
		return types.PageTextReply{}, fmt.Errorf("check content script: %w", err)
	}
	if ok, _ := present.(bool); !ok {
		h.listeners.Remove(tabID)
		return types.PageTextReply{}, host.ErrNoReceiver
	}

	return h.listeners.Deliver(ctx, tabID, msg)
}

func pageText(ctx context.Context, p page) (string, error) {
	v, err := await(ctx, func() (interface{}, error) {
		return p.Evaluate(getTextScript)
	})
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	text, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected text result %T", v)
	}
	return text, nil
}

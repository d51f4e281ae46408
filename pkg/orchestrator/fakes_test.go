package orchestrator

import (
	"context"
	"sync"

	"github.com/entrhq/pagesage/pkg/extractor"
	"github.com/entrhq/pagesage/pkg/host"
	"github.com/entrhq/pagesage/pkg/llm"
	"github.com/entrhq/pagesage/pkg/types"
)

// fakeHost is a single-window host whose tab runs a real extractor once injected.
type fakeHost struct {
	mu sync.Mutex

	tab      *host.Tab
	tabErr   error
	pageText string

	injectErr error
	sendErr   error
	blockSend bool

	listeners *host.Listeners
	injected  int
	injectArg string
	messages  []types.PageMessageKind
}

func newFakeHost(url, pageText string) *fakeHost {
	return &fakeHost{
		tab:       &host.Tab{ID: 7, URL: url},
		pageText:  pageText,
		listeners: host.NewListeners(),
	}
}

func (f *fakeHost) ActiveTab(context.Context) (*host.Tab, error) {
	return f.tab, f.tabErr
}

func (f *fakeHost) InjectScript(_ context.Context, tabID int, file string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.injectErr != nil {
		return f.injectErr
	}
	f.injected++
	f.injectArg = file
	text := f.pageText
	f.listeners.Register(tabID, extractor.New(extractor.TextSourceFunc(func(context.Context) (string, error) {
		return text, nil
	})))
	return nil
}

func (f *fakeHost) SendToTab(ctx context.Context, tabID int, msg types.PageMessage) (types.PageTextReply, error) {
	f.mu.Lock()
	f.messages = append(f.messages, msg.Type)
	sendErr, block := f.sendErr, f.blockSend
	f.mu.Unlock()

	if block && msg.Type == types.PageMessageGetText {
		<-ctx.Done()
		return types.PageTextReply{}, ctx.Err()
	}
	if sendErr != nil && msg.Type == types.PageMessageGetText {
		return types.PageTextReply{}, sendErr
	}
	return f.listeners.Deliver(ctx, tabID, msg)
}

func (f *fakeHost) injections() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.injected
}

func (f *fakeHost) sent() []types.PageMessageKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.PageMessageKind, len(f.messages))
	copy(out, f.messages)
	return out
}

// recordingGenerator records prompts and returns a fixed result.
type recordingGenerator struct {
	mu      sync.Mutex
	prompts []string
	models  []string
	text    string
	err     error
	block   bool
}

var _ llm.Generator = (*recordingGenerator)(nil)

func (g *recordingGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.models = append(g.models, model)
	g.mu.Unlock()

	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

func (g *recordingGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

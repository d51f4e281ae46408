// Package tui provides the interactive terminal popup.
//
// The popup shows two action buttons, the result area and a copy button,
// all driven by a popup.Controller:
// - executor.go: program lifecycle and controller wiring
// - model.go: model state
// - update.go: key and message handling
// - view.go: rendering
// - styles.go: colors and styles
package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/pagesage/pkg/popup"
)

// Executor runs the popup in the terminal.
type Executor struct {
	controller *popup.Controller

	mu      sync.Mutex
	program *tea.Program

	// programOpts replace the terminal defaults.
	programOpts []tea.ProgramOption
}

// NewExecutor creates a popup backed by sender. Controller options such as
// messages and clipboard are passed through.
func NewExecutor(sender popup.Sender, opts ...popup.Option) *Executor {
	e := &Executor{}
	opts = append(opts, popup.WithOnChange(e.forward))
	e.controller = popup.NewController(sender, opts...)
	return e
}

// forward hands controller state changes to the running program.
func (e *Executor) forward(s popup.State) {
	e.mu.Lock()
	p := e.program
	e.mu.Unlock()
	if p != nil {
		p.Send(stateMsg(s))
	}
}

// Run shows the popup and blocks until the user closes it or ctx ends.
// Closing the popup cancels any request still in flight.
func (e *Executor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(ctx, e.controller)

	opts := e.programOpts
	if opts == nil {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(m, append(opts, tea.WithContext(ctx))...)

	e.mu.Lock()
	e.program = p
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.program = nil
		e.mu.Unlock()
	}()

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}

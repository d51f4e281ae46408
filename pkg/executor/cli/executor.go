// Package cli provides a one-shot executor: it runs a single popup action
// against the active tab and prints the result.
//
// Example usage:
//
//	exec := cli.NewExecutor(runtime, types.RequestSummary,
//	    cli.WithCopy(true),
//	)
//	if err := exec.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/entrhq/pagesage/pkg/popup"
	"github.com/entrhq/pagesage/pkg/types"
)

// ErrActionFailed is returned when the action ends in an error state.
var ErrActionFailed = errors.New("action failed")

// Executor runs one action and prints its outcome.
type Executor struct {
	controller *popup.Controller
	kind       types.RequestKind
	writer     io.Writer
	errWriter  io.Writer
	copy       bool
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithWriter sets the output writer for results (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithErrWriter sets the writer for errors (default is os.Stderr).
func WithErrWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.errWriter = w
	}
}

// WithCopy also copies a successful result to the clipboard.
func WithCopy(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.copy = enabled
	}
}

// WithController replaces the controller, for example to set a clipboard or
// message catalogue.
func WithController(c *popup.Controller) ExecutorOption {
	return func(e *Executor) {
		if c != nil {
			e.controller = c
		}
	}
}

// NewExecutor creates an executor that sends kind through sender.
func NewExecutor(sender popup.Sender, kind types.RequestKind, opts ...ExecutorOption) *Executor {
	e := &Executor{
		controller: popup.NewController(sender),
		kind:       kind,
		writer:     os.Stdout,
		errWriter:  os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run triggers the action and prints the result. Error results are printed to
// the error writer and reported as ErrActionFailed.
func (e *Executor) Run(ctx context.Context) error {
	if !e.kind.Valid() {
		return fmt.Errorf("unknown action %q", e.kind)
	}

	if err := e.controller.TriggerAction(ctx, e.kind); err != nil {
		return fmt.Errorf("failed to run %s: %w", e.controller.Messages().ActionName(e.kind), err)
	}

	state := e.controller.Snapshot()
	if state.IsError {
		fmt.Fprintln(e.errWriter, state.ResultText)
		return fmt.Errorf("%w: %s", ErrActionFailed, state.ErrorKind)
	}

	fmt.Fprintln(e.writer, state.ResultText)

	if e.copy {
		if err := e.controller.CopyResult(); err != nil {
			fmt.Fprintf(e.errWriter, "%s: %v\n", e.controller.Messages().CopyFailed, err)
		} else {
			fmt.Fprintln(e.errWriter, e.controller.Messages().CopySuccess)
		}
	}
	return nil
}

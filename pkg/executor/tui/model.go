package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/entrhq/pagesage/pkg/popup"
)

// stateMsg carries a controller state change into the program.
type stateMsg popup.State

// actionDoneMsg is sent when a triggered action settles.
type actionDoneMsg struct {
	err error
}

// copyDoneMsg is sent after a copy attempt.
type copyDoneMsg struct {
	err error
}

// model is the popup window.
type model struct {
	ctx        context.Context
	controller *popup.Controller
	messages   popup.Messages
	state      popup.State

	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool
}

func newModel(ctx context.Context, controller *popup.Controller) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = headerStyle

	m := &model{
		ctx:        ctx,
		controller: controller,
		messages:   controller.Messages(),
		state:      controller.Snapshot(),
		viewport:   viewport.New(80, 20),
		spinner:    s,
	}
	m.refreshContent()
	return m
}

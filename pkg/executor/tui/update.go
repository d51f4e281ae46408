package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/pagesage/pkg/popup"
	"github.com/entrhq/pagesage/pkg/types"
)

// Init starts the spinner.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles Bubble Tea messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case stateMsg:
		m.state = popup.State(msg)
		m.refreshContent()
		return m, nil

	case actionDoneMsg:
		m.state = m.controller.Snapshot()
		m.refreshContent()
		return m, nil

	case copyDoneMsg:
		m.state = m.controller.Snapshot()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.viewport.Width = max(m.width-4, 10)
	m.viewport.Height = max(m.height-chromeHeight, 3)
	m.ready = true
	m.refreshContent()
	return m, nil
}

func (m *model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "s":
		return m, m.startAction(types.RequestSummary)
	case "e":
		return m, m.startAction(types.RequestEssence)
	case "c":
		if !m.controller.CanCopy() {
			return m, nil
		}
		return m, m.copyResult
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// startAction runs kind unless an action is already in flight. The buttons
// are disabled while loading.
func (m *model) startAction(kind types.RequestKind) tea.Cmd {
	if m.state.IsLoading {
		return nil
	}
	run := func() tea.Msg {
		return actionDoneMsg{err: m.controller.TriggerAction(m.ctx, kind)}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m *model) copyResult() tea.Msg {
	return copyDoneMsg{err: m.controller.CopyResult()}
}

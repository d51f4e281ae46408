package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/pagesage/pkg/popup"
)

// chromeHeight is the number of lines around the result viewport.
const chromeHeight = 9

const bulletIndent = "  "

// View renders the popup.
func (m *model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("PageSage"))
	b.WriteString("\n\n")
	b.WriteString(m.buildButtons())
	b.WriteString("\n")
	b.WriteString(resultBoxStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.buildStatus())
	b.WriteString("\n")
	b.WriteString(noteStyle.Render(m.messages.Note))
	b.WriteString("\n")
	b.WriteString(tipsStyle.Render("  s summarize • e essence • c copy • ↑/↓ scroll • q quit"))
	return b.String()
}

func (m *model) buildButtons() string {
	action := buttonStyle
	if m.state.IsLoading {
		action = disabledButtonStyle
	}
	copyBtn := disabledButtonStyle
	if m.controller.CanCopy() {
		copyBtn = buttonStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		action.Render("[s] "+m.messages.SummarizeButton),
		"  ",
		action.Render("[e] "+m.messages.EssenceButton),
		"  ",
		copyBtn.Render("[c] "+m.copyLabel()),
	)
}

func (m *model) copyLabel() string {
	switch m.state.CopyState {
	case popup.CopyCopied:
		return copiedStyle.Render(m.messages.CopySuccess)
	case popup.CopyFailed:
		return errorStyle.Render(m.messages.CopyFailed)
	}
	return m.messages.CopyButton
}

func (m *model) buildStatus() string {
	if m.state.IsLoading {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.messages.Loading)
	}
	return ""
}

// refreshContent re-renders the result into the viewport.
func (m *model) refreshContent() {
	m.viewport.SetContent(m.renderResult(m.viewport.Width))
	m.viewport.GotoTop()
}

func (m *model) renderResult(width int) string {
	style := resultStyle
	switch {
	case m.state.IsError:
		style = errorStyle
	case m.state.Placeholder || m.state.IsLoading:
		style = placeholderStyle
	}

	lines := popup.RenderLines(m.state.ResultText)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, style.Render(wrapLine(line, width)))
	}
	return strings.Join(out, "\n")
}

// wrapLine wraps text to width. Bullet continuation lines get a hanging
// indent so they align under the bullet's text.
func wrapLine(line popup.Line, width int) string {
	if width <= 0 || line.Text == "" {
		return line.Text
	}
	if !line.Bullet {
		return lipgloss.NewStyle().Width(width).Render(line.Text)
	}

	wrapped := lipgloss.NewStyle().Width(max(width-len(bulletIndent), 1)).Render(line.Text)
	parts := strings.Split(wrapped, "\n")
	for i := 1; i < len(parts); i++ {
		parts[i] = bulletIndent + parts[i]
	}
	return strings.Join(parts, "\n")
}

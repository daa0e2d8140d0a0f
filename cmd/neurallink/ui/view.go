package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crimson-sun/neurallink/internal/session"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing Neural Link..."
	}
	st := m.session.State()

	header := m.styles.HeaderIdle.Render("NEURAL LINK · IDLE")
	if st.Status == session.Active {
		header = m.styles.Header.Render(fmt.Sprintf("NEURAL LINK · LIVE SESSION #%d", st.Generation))
	}
	if m.refusal != nil {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ",
			m.styles.Refusal.Render("SYSTEM REFUSAL: "+m.refusal.Reason))
	}

	chatW, chatH := m.chatSize()
	chatPane := m.styles.Pane.Width(chatW + 2).Height(chatH).Render(m.chat.View())

	input := m.input.View()
	if st.InFlight {
		input = m.spinner.View() + " agents deliberating..."
	}
	inputPane := m.styles.Pane.Width(chatW + 2).Render(input)
	left := lipgloss.JoinVertical(lipgloss.Left, chatPane, inputPane)

	sideW := m.width - chatW - 8
	var side string
	if st.Status == session.Active {
		radar := m.styles.PaneTitle.Render("Confidence") + "\n" + RenderConfidence(m.styles, st.Snapshot)
		logH := chatH + inputLines - 6 - 4
		logPane := m.styles.PaneTitle.Render("Neural Link") + "\n" + RenderLog(m.styles, st.Logs, max(logH, 1))
		side = m.styles.Pane.Width(sideW).Render(radar + "\n\n" + logPane)
	} else {
		side = m.styles.Pane.Width(sideW).Render(m.styles.Placeholder.Render("Telemetry appears once a session is active."))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, side)

	help := "ctrl+n start · ctrl+e end · enter send · ctrl+c quit"
	if m.lastError != "" {
		help = m.lastError + " · " + help
	}
	footer := m.styles.Footer.Render(help)

	return strings.Join([]string{header, body, footer}, "\n")
}

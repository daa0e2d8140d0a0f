package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/crimson-sun/neurallink/internal/model"
)

const barWidth = 20

// RenderBar draws one radar axis as a horizontal bar with its value.
func RenderBar(s Styles, label string, value float64, width int) string {
	if width < 1 {
		width = 1
	}
	v := model.ClampScore(value)
	filled := int(math.Round(v / 100 * float64(width)))
	return s.BarLabel.Render(label) +
		s.BarFilled.Render(strings.Repeat("█", filled)) +
		s.BarEmpty.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f", v)
}

// RenderConfidence draws the four axes in radar order.
func RenderConfidence(s Styles, v model.ConfidenceVector) string {
	return strings.Join([]string{
		RenderBar(s, "Legal", v.Legal, barWidth),
		RenderBar(s, "Risk", v.Risk, barWidth),
		RenderBar(s, "Ethics", v.Ethics, barWidth),
		RenderBar(s, "Confidence", v.Confidence, barWidth),
	}, "\n")
}

// RenderEntry draws one log line: timestamp, agent tag and message.
func RenderEntry(s Styles, e model.LogEntry) string {
	return s.Timestamp.Render(e.Timestamp) + " " +
		AgentStyle(e.Agent).Render("["+string(e.Agent)+"]") + " " +
		SeverityStyle(e.Severity).Render(e.Message)
}

// RenderLog draws the most recent entries that fit in height lines.
func RenderLog(s Styles, entries []model.LogEntry, height int) string {
	if len(entries) == 0 {
		return s.Placeholder.Render("No telemetry yet.")
	}
	if height > 0 && len(entries) > height {
		entries = entries[len(entries)-height:]
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = RenderEntry(s, e)
	}
	return strings.Join(lines, "\n")
}

// RenderHistory draws the chat. Assistant turns go through the markdown
// renderer when one is available.
func RenderHistory(s Styles, turns []model.ChatTurn, md *glamour.TermRenderer) string {
	if len(turns) == 0 {
		return s.Placeholder.Render("Ask the council a question.")
	}
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		if t.Role == model.RoleUser {
			b.WriteString(s.UserTurn.Render("you › ") + t.Text + "\n")
			continue
		}
		b.WriteString(renderMarkdown(s, t.Text, md))
	}
	return b.String()
}

func renderMarkdown(s Styles, text string, md *glamour.TermRenderer) string {
	if md != nil {
		if out, err := md.Render(text); err == nil {
			return strings.TrimRight(out, "\n") + "\n"
		}
	}
	return s.Assistant.Render(text) + "\n"
}

// Package ui is the interactive terminal front end: chat on the left, the
// Neural Link agent log and confidence radar on the right.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/crimson-sun/neurallink/internal/model"
)

var (
	Background = lipgloss.Color("#0b0f1a")
	Foreground = lipgloss.Color("#e6e6e6")
	Muted      = lipgloss.Color("#5c6370")
	Border     = lipgloss.Color("#2a3850")
	Accent     = lipgloss.Color("#00e5ff")

	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// agentColors gives each agent its log pane color.
var agentColors = map[model.Agent]lipgloss.Color{
	model.AgentSystem:      lipgloss.Color("#9e9e9e"),
	model.AgentLegal:       lipgloss.Color("#4db6ac"),
	model.AgentRisk:        lipgloss.Color("#ffd54f"),
	model.AgentEthics:      lipgloss.Color("#ba68c8"),
	model.AgentConfidence:  lipgloss.Color("#64b5f6"),
	model.AgentCoordinator: lipgloss.Color("#ff8a65"),
	model.AgentUnknown:     Muted,
}

// Styles holds every style the view uses.
type Styles struct {
	Header      lipgloss.Style
	HeaderIdle  lipgloss.Style
	Footer      lipgloss.Style
	Pane        lipgloss.Style
	PaneTitle   lipgloss.Style
	UserTurn    lipgloss.Style
	Assistant   lipgloss.Style
	Timestamp   lipgloss.Style
	Refusal     lipgloss.Style
	BarFilled   lipgloss.Style
	BarEmpty    lipgloss.Style
	BarLabel    lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles returns the dark palette styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(Accent).
			Foreground(Background).
			Bold(true).
			Padding(0, 2),
		HeaderIdle: lipgloss.NewStyle().
			Background(Muted).
			Foreground(Foreground).
			Padding(0, 2),
		Footer: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		PaneTitle: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true),
		UserTurn: lipgloss.NewStyle().
			Foreground(Info).
			Bold(true),
		Assistant: lipgloss.NewStyle().
			Foreground(Foreground),
		Timestamp: lipgloss.NewStyle().
			Foreground(Muted),
		Refusal: lipgloss.NewStyle().
			Background(Destructive).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 2),
		BarFilled: lipgloss.NewStyle().
			Foreground(Accent),
		BarEmpty: lipgloss.NewStyle().
			Foreground(Border),
		BarLabel: lipgloss.NewStyle().
			Foreground(Foreground).
			Width(11),
		Placeholder: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true),
	}
}

// AgentStyle returns the log style for an agent.
func AgentStyle(a model.Agent) lipgloss.Style {
	c, ok := agentColors[a]
	if !ok {
		c = Muted
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// SeverityStyle colors a message by severity.
func SeverityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityError:
		return lipgloss.NewStyle().Foreground(Destructive)
	case model.SeverityWarning:
		return lipgloss.NewStyle().Foreground(Warning)
	case model.SeveritySuccess:
		return lipgloss.NewStyle().Foreground(Success)
	default:
		return lipgloss.NewStyle().Foreground(Foreground)
	}
}

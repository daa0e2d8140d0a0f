package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/backend"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/session"
)

// RefusalFlash is how long the refusal banner stays up.
const RefusalFlash = 3 * time.Second

const (
	minWidth    = 60
	minHeight   = 16
	headerLines = 1
	footerLines = 1
	inputLines  = 3
)

type turnDoneMsg struct{ err error }

type resetDoneMsg struct{ err error }

type flashExpiredMsg struct{ id int }

// Model is the bubbletea model for the interactive session.
type Model struct {
	session *session.Session
	backend backend.Analyzer
	logger  *zap.Logger
	styles  Styles
	timeout time.Duration

	input    textinput.Model
	chat     viewport.Model
	spinner  spinner.Model
	markdown *glamour.TermRenderer

	width, height int
	ready         bool

	refusal   *model.Refusal
	flashID   int
	lastError string
}

// New creates the TUI model. timeout bounds each turn; zero means no bound.
func New(s *session.Session, b backend.Analyzer, timeout time.Duration, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "Press ctrl+n to start a session"
	ti.CharLimit = 4000
	ti.Prompt = "› "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(Accent)

	return Model{
		session: s,
		backend: b,
		logger:  logger,
		styles:  DefaultStyles(),
		timeout: timeout,
		input:   ti,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			m.session.Start()
			m.refusal = nil
			m.lastError = ""
			m.input.Placeholder = "Describe your situation..."
			m.input.Focus()
			m.refresh()
			return m, textinput.Blink
		case "ctrl+e":
			m.session.End()
			m.refusal = nil
			m.input.Blur()
			m.input.SetValue("")
			m.input.Placeholder = "Press ctrl+n to start a session"
			m.refresh()
			return m, m.resetBackend()
		case "enter":
			return m.submit()
		}
		if m.inputEnabled() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case turnDoneMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
		}
		m.refresh()
		if r, ok := m.session.TakeRefusal(); ok {
			m.refusal = &r
			m.flashID++
			id := m.flashID
			cmds = append(cmds, tea.Tick(RefusalFlash, func(time.Time) tea.Msg { return flashExpiredMsg{id: id} }))
		}
		if m.session.IsActive() {
			m.input.Focus()
		}

	case resetDoneMsg:
		if msg.err != nil {
			m.logger.Warn("backend reset failed", zap.Error(msg.err))
		}

	case flashExpiredMsg:
		if msg.id == m.flashID {
			m.refusal = nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var vpCmd tea.Cmd
	m.chat, vpCmd = m.chat.Update(msg)
	cmds = append(cmds, vpCmd)
	return m, tea.Batch(cmds...)
}

// inputEnabled is false while idle or while a turn is in flight.
func (m Model) inputEnabled() bool {
	return m.session.IsActive() && !m.session.InFlight()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.inputEnabled() {
		return m, nil
	}
	text := m.input.Value()
	if text == "" {
		return m, nil
	}
	m.input.SetValue("")
	m.input.Blur()
	m.lastError = ""

	s, timeout := m.session, m.timeout
	cmd := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return turnDoneMsg{err: s.SubmitTurn(ctx, text)}
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) resetBackend() tea.Cmd {
	r, ok := m.backend.(backend.Resetter)
	if !ok {
		return nil
	}
	timeout := m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return resetDoneMsg{err: r.Reset(ctx)}
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = max(w, minWidth), max(h, minHeight)
	chatW, chatH := m.chatSize()
	if !m.ready {
		m.chat = viewport.New(chatW, chatH)
		m.ready = true
	} else {
		m.chat.Width, m.chat.Height = chatW, chatH
	}
	m.input.Width = chatW - 4
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(chatW-2),
	)
	if err != nil {
		m.logger.Debug("markdown renderer unavailable", zap.Error(err))
		md = nil
	}
	m.markdown = md
	m.refresh()
}

// chatSize returns the inner size of the chat pane.
func (m Model) chatSize() (int, int) {
	w := m.width*3/5 - 4
	h := m.height - headerLines - footerLines - inputLines - 2
	return max(w, 20), max(h, 3)
}

// refresh re-renders the chat history into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.chat.SetContent(RenderHistory(m.styles, m.session.History(), m.markdown))
	m.chat.GotoBottom()
}

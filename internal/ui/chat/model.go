package chatui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akash-N-Exotel/botcepter/internal/chat"
)

// sendTimeout bounds each chat round-trip so the widget never hangs on a
// stuck request.
const sendTimeout = 30 * time.Second

// Model renders a live chat exchange using Bubble Tea. One request is
// outstanding at a time; the input is disabled while waiting.
type Model struct {
	session *chat.Session
	input   textinput.Model
	width   int
	waiting bool
	started bool
}

type startedMsg struct{}

type repliedMsg struct{}

// NewModel constructs the chat widget over a session.
func NewModel(session *chat.Session) Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.CharLimit = 500
	input.Focus()
	return Model{session: session, input: input}
}

// Init starts the chat session handshake.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startSession(), textinput.Blink)
}

// Update handles key presses and completed chat round-trips.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case startedMsg:
		m.started = true
		return m, nil
	case repliedMsg:
		m.waiting = false
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+n":
			m.session.StartNewIteration()
			return m, nil
		case "ctrl+a":
			// Accuracy steps through 0..100 in tens, wrapping around.
			next := m.session.Accuracy() + 10
			if next > 100 {
				next = 0
			}
			m.session.SetAccuracy(next)
			return m, nil
		case "enter":
			if m.waiting || m.session.State() != chat.StateActive {
				return m, nil
			}
			text := m.input.Value()
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.waiting = true
			return m, m.sendMessage(text)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startSession runs the session-start handshake off the UI loop. A failed
// handshake leaves the session Uninitialized; the local error message it
// appends is all the user sees.
func (m Model) startSession() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		_ = session.Start(ctx)
		return startedMsg{}
	}
}

func (m Model) sendMessage(text string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		_ = session.Send(ctx, text)
		return repliedMsg{}
	}
}

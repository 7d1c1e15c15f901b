package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akash-N-Exotel/botcepter/internal/chat"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the chat log, status line, and input field.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Live chat with Bot"))
	b.WriteString("\n\n")
	for _, msg := range m.session.Messages() {
		b.WriteString(renderMessage(msg))
	}
	if m.waiting {
		b.WriteString(statusStyle.Render("waiting for reply..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("enter send · ctrl+n new iteration · ctrl+a accuracy · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statusLine() string {
	return statusStyle.Render(fmt.Sprintf(
		"iteration %d · calls %d · accuracy %.0f%%",
		m.session.Iteration(), m.session.CallCount(), m.session.Accuracy(),
	))
}

func renderMessage(msg chat.Message) string {
	var b strings.Builder
	label := botStyle.Render("Bot")
	if msg.Sender == chat.SenderUser {
		label = userStyle.Render("You")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", label, msg.Text))
	if len(msg.Objectives) > 0 {
		b.WriteString(tagStyle.Render("  objectives: " + strings.Join(msg.Objectives, ", ")))
		b.WriteString("\n")
	}
	if len(msg.ToolCalls) > 0 {
		b.WriteString(tagStyle.Render("  tools: " + strings.Join(msg.ToolCalls, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

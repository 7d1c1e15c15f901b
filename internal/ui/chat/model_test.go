package chatui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akash-N-Exotel/botcepter/internal/chat"
)

func activeSession(t *testing.T) *chat.Session {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/start-chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chat.StartResponse{SessionID: "s", Greeting: "hello"})
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    chat.BotReply{Response: "echo"},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := chat.NewClient(server.URL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	session := chat.NewSession(client)
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return session
}

func idleSession(t *testing.T) *chat.Session {
	t.Helper()
	client, err := chat.NewClient("http://127.0.0.1:0", time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return chat.NewSession(client)
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m := NewModel(idleSession(t))
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("key %v should produce a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("key %v should quit, got %T", key, cmd())
		}
	}
}

func TestEnterIgnoredWhileUninitialized(t *testing.T) {
	m := NewModel(idleSession(t))
	m.input.SetValue("hello")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("enter while uninitialized should not send")
	}
	model := updated.(Model)
	if model.input.Value() != "hello" {
		t.Fatalf("input should keep its text, got %q", model.input.Value())
	}
}

func TestEnterSendsAndDisablesInput(t *testing.T) {
	m := NewModel(activeSession(t))
	m.input.SetValue("where is my order")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	if cmd == nil {
		t.Fatalf("enter with text on an active session should send")
	}
	if !model.waiting {
		t.Fatalf("model should be waiting after a send")
	}
	if model.input.Value() != "" {
		t.Fatalf("input should clear on send, got %q", model.input.Value())
	}

	// A second enter while waiting must be ignored.
	model.input.SetValue("again")
	if _, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("enter while waiting should not send")
	}

	// The command completes the round trip and clears waiting.
	if _, ok := cmd().(repliedMsg); !ok {
		t.Fatalf("send command should yield repliedMsg")
	}
	updated, _ = model.Update(repliedMsg{})
	if updated.(Model).waiting {
		t.Fatalf("repliedMsg should clear waiting")
	}
}

func TestEnterIgnoresEmptyInput(t *testing.T) {
	m := NewModel(activeSession(t))
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("enter with no text should be a no-op")
	}
}

func TestCtrlNStartsNewIteration(t *testing.T) {
	session := activeSession(t)
	if err := session.Send(context.Background(), "one"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	m := NewModel(session)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if session.Iteration() != 2 || session.CallCount() != 0 {
		t.Fatalf("ctrl+n should advance the iteration, got iteration %d calls %d",
			session.Iteration(), session.CallCount())
	}
}

func TestCtrlAStepsAccuracy(t *testing.T) {
	session := activeSession(t)
	m := NewModel(session)

	var model tea.Model = m
	for i, want := range []float64{10, 20, 30} {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
		if session.Accuracy() != want {
			t.Fatalf("press %d: accuracy = %v, want %v", i+1, session.Accuracy(), want)
		}
	}

	// Stepping past 100 wraps back to 0.
	session.SetAccuracy(100)
	model.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if session.Accuracy() != 0 {
		t.Fatalf("accuracy should wrap to 0 past 100, got %v", session.Accuracy())
	}
}

func TestViewRendersLogAndStatus(t *testing.T) {
	session := activeSession(t)
	if err := session.Send(context.Background(), "where is my order"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	m := NewModel(session)

	view := m.View()
	for _, want := range []string{
		"Live chat with Bot",
		"hello",
		"where is my order",
		"echo",
		"iteration 1",
		"calls 1",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewShowsWaitingIndicator(t *testing.T) {
	m := NewModel(activeSession(t))
	m.waiting = true
	if !strings.Contains(m.View(), "waiting for reply...") {
		t.Fatalf("waiting indicator missing")
	}
}

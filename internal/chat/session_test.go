package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chatServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/start-chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(StartResponse{
			SessionID: "session-123",
			Greeting:  "Hello! How can I help you today?",
		})
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req SendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode send request: %v", err)
		}
		json.NewEncoder(w).Encode(sendResponse{
			Success: true,
			Data: BotReply{
				Response:       `Bot received: "` + req.Query + `". This is a test response.`,
				UsedObjectives: []string{"Handle_Order_Related_Queries"},
				UsedToolCalls:  []string{"get_order_status"},
			},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func brokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestSession(t *testing.T, baseURL string) *Session {
	t.Helper()
	client, err := NewClient(baseURL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewSession(client)
}

func TestSessionStartSuccess(t *testing.T) {
	session := newTestSession(t, chatServer(t).URL)
	if session.State() != StateUninitialized {
		t.Fatalf("new session should be uninitialized")
	}
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.State() != StateActive {
		t.Fatalf("state = %q after a successful start", session.State())
	}
	if session.SessionID() != "session-123" {
		t.Fatalf("session id = %q", session.SessionID())
	}
	messages := session.Messages()
	if len(messages) != 1 || messages[0].Sender != SenderBot {
		t.Fatalf("greeting not appended: %+v", messages)
	}
	if messages[0].Text != "Hello! How can I help you today?" {
		t.Fatalf("greeting text = %q", messages[0].Text)
	}
}

func TestSessionStartFailureStaysUninitialized(t *testing.T) {
	session := newTestSession(t, brokenServer(t).URL)
	if err := session.Start(context.Background()); err == nil {
		t.Fatalf("expected Start to fail")
	}
	if session.State() != StateUninitialized {
		t.Fatalf("failed start must leave the session uninitialized, got %q", session.State())
	}
	messages := session.Messages()
	if len(messages) != 1 {
		t.Fatalf("exactly one local error message expected, got %d", len(messages))
	}
	if messages[0].Text != "Failed to start chat. Please try again later." {
		t.Fatalf("error message = %q", messages[0].Text)
	}
	if messages[0].Sender != SenderBot {
		t.Fatalf("error message should render as a bot message")
	}
}

func TestSendWhileUninitializedIsNoop(t *testing.T) {
	session := newTestSession(t, brokenServer(t).URL)
	_ = session.Start(context.Background())
	before := len(session.Messages())

	if err := session.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send while uninitialized should be a silent no-op, got %v", err)
	}
	if len(session.Messages()) != before {
		t.Fatalf("no-op send appended messages")
	}
	if session.CallCount() != 0 {
		t.Fatalf("no-op send bumped the call counter to %d", session.CallCount())
	}
}

func TestSendAppendsUserAndBotMessages(t *testing.T) {
	session := newTestSession(t, chatServer(t).URL)
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := session.Send(context.Background(), "where is my order"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	messages := session.Messages()
	// Greeting, user message, bot reply.
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[1].Sender != SenderUser || messages[1].Text != "where is my order" {
		t.Fatalf("user message wrong: %+v", messages[1])
	}
	if messages[2].Sender != SenderBot {
		t.Fatalf("reply sender = %q", messages[2].Sender)
	}
	if !strings.Contains(messages[2].Text, `Bot received: "where is my order"`) {
		t.Fatalf("reply text = %q", messages[2].Text)
	}
	if len(messages[2].Objectives) != 1 || len(messages[2].ToolCalls) != 1 {
		t.Fatalf("reply tags not carried: %+v", messages[2])
	}
	if session.CallCount() != 1 {
		t.Fatalf("call count = %d, want 1", session.CallCount())
	}
}

func TestSendEmptyTextIsNoop(t *testing.T) {
	session := newTestSession(t, chatServer(t).URL)
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	before := len(session.Messages())
	if err := session.Send(context.Background(), ""); err != nil {
		t.Fatalf("Send(\"\") should be a no-op, got %v", err)
	}
	if len(session.Messages()) != before || session.CallCount() != 0 {
		t.Fatalf("empty send changed session state")
	}
}

func TestStartNewIterationResetsCounters(t *testing.T) {
	session := newTestSession(t, chatServer(t).URL)
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	_ = session.Send(context.Background(), "one")
	_ = session.Send(context.Background(), "two")
	session.SetAccuracy(87.5)

	session.StartNewIteration()
	if session.Iteration() != 2 {
		t.Fatalf("iteration = %d, want 2", session.Iteration())
	}
	if session.CallCount() != 0 {
		t.Fatalf("call count should reset, got %d", session.CallCount())
	}
	if session.Accuracy() != 0 {
		t.Fatalf("accuracy should reset, got %v", session.Accuracy())
	}
	if session.State() != StateActive {
		t.Fatalf("new iteration must not tear down the session")
	}
	if len(session.Messages()) == 0 {
		t.Fatalf("message log should survive a new iteration")
	}
}

func TestStartIsIdempotentWhileActive(t *testing.T) {
	session := newTestSession(t, chatServer(t).URL)
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	before := len(session.Messages())
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if len(session.Messages()) != before {
		t.Fatalf("restarting an active session duplicated the greeting")
	}
}

package chatstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultResponseDelay simulates bot processing time before echoing.
const defaultResponseDelay = 500 * time.Millisecond

const defaultGreeting = "Hello! I'm the Botcepter test bot. How can I help you today?"

// Config captures the settings for the chat echo stub.
type Config struct {
	Addr string
	// ResponseDelay overrides the simulated processing delay; zero keeps
	// the default, negative disables the delay entirely.
	ResponseDelay time.Duration
	Greeting      string
	Logger        *zap.Logger
}

// NewHandler builds the HTTP handler for the chat stub endpoints.
func NewHandler(cfg Config) http.Handler {
	delay := cfg.ResponseDelay
	if delay == 0 {
		delay = defaultResponseDelay
	}
	if delay < 0 {
		delay = 0
	}
	greeting := cfg.Greeting
	if greeting == "" {
		greeting = defaultGreeting
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{
		delay:    delay,
		greeting: greeting,
		logger:   logger,
		sessions: map[string]struct{}{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/start-chat", h.handleStartChat)
	mux.HandleFunc("/chat", h.handleChat)
	return mux
}

type handler struct {
	delay    time.Duration
	greeting string
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]struct{}
}

type startResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

type chatRequest struct {
	SessionID string  `json:"session_id"`
	Query     string  `json:"query"`
	CallCount int     `json:"call_count"`
	Iteration int     `json:"iteration"`
	Accuracy  float64 `json:"accuracy"`
}

type chatResponse struct {
	Success bool     `json:"success"`
	Data    chatData `json:"data"`
}

type chatData struct {
	Response       string   `json:"response"`
	UsedObjectives []string `json:"used_objectives"`
	UsedToolCalls  []string `json:"used_tool_calls"`
}

func (h *handler) handleStartChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}
	sessionID := uuid.NewString()
	h.mu.Lock()
	h.sessions[sessionID] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("chat session started", zap.String("session_id", sessionID))
	writeJSON(w, http.StatusOK, startResponse{SessionID: sessionID, Greeting: h.greeting})
}

func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	h.mu.Lock()
	_, known := h.sessions[req.SessionID]
	h.mu.Unlock()
	if !known {
		writeError(w, http.StatusNotFound, "unknown_session")
		return
	}

	// Simulate bot processing time.
	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-r.Context().Done():
			return
		}
	}

	h.logger.Info("echoing message",
		zap.String("session_id", req.SessionID),
		zap.Int("call_count", req.CallCount),
		zap.Int("iteration", req.Iteration),
	)
	writeJSON(w, http.StatusOK, chatResponse{
		Success: true,
		Data: chatData{
			Response:       generateBotResponse(req.Query),
			UsedObjectives: []string{},
			UsedToolCalls:  []string{},
		},
	})
}

// generateBotResponse echoes the user's message; the stub performs no bot
// logic.
func generateBotResponse(message string) string {
	return fmt.Sprintf("Bot received: %q. This is a test response.", message)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: code})
}

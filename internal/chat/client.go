package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer abstracts the HTTP client used for chat calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StartResponse is the reply to a session-start handshake.
type StartResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting,omitempty"`
}

// SendRequest carries one user message plus running iteration context.
type SendRequest struct {
	SessionID string  `json:"session_id"`
	Query     string  `json:"query"`
	CallCount int     `json:"call_count"`
	Iteration int     `json:"iteration"`
	Accuracy  float64 `json:"accuracy"`
}

// BotReply is the bot's answer to one message.
type BotReply struct {
	Response       string   `json:"response"`
	UsedObjectives []string `json:"used_objectives"`
	UsedToolCalls  []string `json:"used_tool_calls"`
}

type sendResponse struct {
	Success bool     `json:"success"`
	Data    BotReply `json:"data"`
	Error   string   `json:"error,omitempty"`
}

// Client talks to the chat endpoints of a bot server.
type Client struct {
	baseURL string
	doer    HTTPDoer
}

// NewClient constructs a chat client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, doer HTTPDoer) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("chat: base url is required")
	}
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), doer: doer}, nil
}

// StartChat performs the session-start handshake.
func (c *Client) StartChat(ctx context.Context) (StartResponse, error) {
	body, err := c.post(ctx, "/start-chat", struct{}{})
	if err != nil {
		return StartResponse{}, err
	}
	var resp StartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return StartResponse{}, fmt.Errorf("decode start response: %w", err)
	}
	if resp.SessionID == "" {
		return StartResponse{}, fmt.Errorf("chat: missing session id in start response")
	}
	return resp, nil
}

// SendMessage sends one user message and returns the bot's reply.
func (c *Client) SendMessage(ctx context.Context, req SendRequest) (BotReply, error) {
	body, err := c.post(ctx, "/chat", req)
	if err != nil {
		return BotReply{}, err
	}
	var resp sendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return BotReply{}, fmt.Errorf("decode chat response: %w", err)
	}
	if !resp.Success {
		if resp.Error != "" {
			return BotReply{}, fmt.Errorf("chat: %s", resp.Error)
		}
		return BotReply{}, fmt.Errorf("chat: invalid response from server")
	}
	return resp.Data, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeHTTPError(resp.StatusCode, buf.Bytes())
	}
	return buf.Bytes(), nil
}

func decodeHTTPError(status int, body []byte) error {
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return fmt.Errorf("http %d: %s", status, resp.Error)
	}
	return fmt.Errorf("http %d", status)
}

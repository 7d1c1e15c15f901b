package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// genericErrorMessage is surfaced when the evaluator fails without a message.
const genericErrorMessage = "An error occurred while testing the bot"

// RemoteError reports a failure from the evaluation endpoint, either a
// non-2xx status or an explicit success:false body. Both collapse into a
// single human-readable message and are never retried.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// HTTPDoer abstracts the HTTP client used for submissions.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client submits configured tests to the remote evaluation endpoint.
type Client struct {
	baseURL string
	doer    HTTPDoer
}

// New constructs a client for the given evaluator base URL. A nil doer uses
// an http.Client with the given timeout; zero timeout means no timeout.
func New(baseURL string, timeout time.Duration, doer HTTPDoer) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("evaluator: base url is required")
	}
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), doer: doer}, nil
}

// Submit posts a test request and decodes the evaluator's response. Any
// remote failure is returned as a RemoteError carrying the server-supplied
// message or a generic fallback.
func (c *Client) Submit(ctx context.Context, req Request) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.doer.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	var resp Response
	decodeErr := json.NewDecoder(httpResp.Body).Decode(&resp)

	ok := httpResp.StatusCode >= 200 && httpResp.StatusCode < 300
	if !ok || (decodeErr == nil && !resp.Success) {
		message := genericErrorMessage
		if decodeErr == nil && resp.Error != "" {
			message = resp.Error
		}
		return Response{}, &RemoteError{Message: message}
	}
	if decodeErr != nil {
		return Response{}, fmt.Errorf("decode response: %w", decodeErr)
	}
	return resp, nil
}

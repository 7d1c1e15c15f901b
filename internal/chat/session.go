package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a chat session.
type State string

const (
	// StateUninitialized means no session-start handshake has succeeded yet.
	StateUninitialized State = "uninitialized"
	// StateActive means the session is live and accepts message exchanges.
	StateActive State = "active"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Local error messages appended to the log; remote errors never surface raw.
const (
	startFailedMessage = "Failed to start chat. Please try again later."
	sendFailedMessage  = "Sorry, there was an error processing your message. Please try again."
)

// Message is one entry in the ordered chat log.
type Message struct {
	ID         string
	Text       string
	Sender     Sender
	SentAt     time.Time
	Objectives []string
	ToolCalls  []string
}

// Session maintains a single ordered message log and a monotonically
// increasing call counter for a live chat exchange. It is confined to one
// view instance and is not safe for concurrent use.
type Session struct {
	client    *Client
	state     State
	sessionID string
	callCount int
	iteration int
	accuracy  float64
	messages  []Message
	now       func() time.Time
}

// NewSession creates a session in the Uninitialized state.
func NewSession(client *Client) *Session {
	return &Session{
		client:    client,
		state:     StateUninitialized,
		iteration: 1,
		now:       time.Now,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// SessionID returns the server-assigned session ID, empty until Active.
func (s *Session) SessionID() string { return s.sessionID }

// CallCount returns the number of sends in the current iteration.
func (s *Session) CallCount() int { return s.callCount }

// Iteration returns the current iteration number, starting at 1.
func (s *Session) Iteration() int { return s.iteration }

// Accuracy returns the accuracy recorded for the current iteration.
func (s *Session) Accuracy() float64 { return s.accuracy }

// Messages returns a copy of the ordered message log.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Start performs the session-start handshake. On success the session
// becomes Active and the greeting, when present, is appended as a bot
// message. On failure the session stays Uninitialized and exactly one
// locally synthesized error message is appended; there is no retry.
func (s *Session) Start(ctx context.Context) error {
	if s.state == StateActive {
		return nil
	}
	resp, err := s.client.StartChat(ctx)
	if err != nil {
		s.append(startFailedMessage, SenderBot, nil, nil)
		return err
	}
	s.sessionID = resp.SessionID
	s.state = StateActive
	if resp.Greeting != "" {
		s.append(resp.Greeting, SenderBot, nil, nil)
	}
	return nil
}

// Send submits one user message. While Uninitialized it is a no-op: no
// request is issued and nothing is appended. While Active it appends the
// user message, increments the call counter, and appends either the bot's
// reply or a local error message.
func (s *Session) Send(ctx context.Context, text string) error {
	if s.state != StateActive || text == "" {
		return nil
	}
	s.append(text, SenderUser, nil, nil)
	s.callCount++
	reply, err := s.client.SendMessage(ctx, SendRequest{
		SessionID: s.sessionID,
		Query:     text,
		CallCount: s.callCount,
		Iteration: s.iteration,
		Accuracy:  s.accuracy,
	})
	if err != nil {
		s.append(sendFailedMessage, SenderBot, nil, nil)
		return err
	}
	s.append(reply.Response, SenderBot, reply.UsedObjectives, reply.UsedToolCalls)
	return nil
}

// StartNewIteration demarcates a new logical test cycle without tearing
// down the session: the call counter returns to 0, the iteration number
// increments, and accuracy resets.
func (s *Session) StartNewIteration() {
	s.iteration++
	s.callCount = 0
	s.accuracy = 0
}

// SetAccuracy records the accuracy for the current iteration.
func (s *Session) SetAccuracy(v float64) {
	s.accuracy = v
}

func (s *Session) append(text string, sender Sender, objectives, toolCalls []string) {
	s.messages = append(s.messages, Message{
		ID:         uuid.NewString(),
		Text:       text,
		Sender:     sender,
		SentAt:     s.now(),
		Objectives: objectives,
		ToolCalls:  toolCalls,
	})
}

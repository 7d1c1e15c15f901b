package form

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Akash-N-Exotel/botcepter/internal/bots"
)

// Issue captures one validation problem in a persisted form blob.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("form state validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// persistedQuestion mirrors Question with pointer fields so absent keys can
// be told apart from empty values when checking a stored blob.
type persistedQuestion struct {
	Text           *string  `json:"question"`
	ExpectedAnswer *string  `json:"expectedAnswer"`
	Objectives     []string `json:"objectives"`
	Tools          []string `json:"tools"`
}

type persistedState struct {
	BotKind       string              `json:"selectedBotType"`
	SelectedBotID string              `json:"selectedBotId"`
	TestRunCount  int                 `json:"testCount"`
	NumQuestions  int                 `json:"numQuestions"`
	Questions     []persistedQuestion `json:"questions"`
}

// ParseState decodes and validates a persisted form blob. A nil error means
// the returned state upholds every structural invariant.
func ParseState(data []byte) (FormState, error) {
	var raw persistedState
	if err := json.Unmarshal(data, &raw); err != nil {
		return FormState{}, fmt.Errorf("parse form state: %w", err)
	}
	if err := validatePersisted(raw); err != nil {
		return FormState{}, err
	}

	state := FormState{
		BotKind:       kindFromString(raw.BotKind),
		SelectedBotID: raw.SelectedBotID,
		TestRunCount:  raw.TestRunCount,
		NumQuestions:  raw.NumQuestions,
		Questions:     make([]Question, len(raw.Questions)),
	}
	for i, q := range raw.Questions {
		state.Questions[i] = Question{
			Text:           *q.Text,
			ExpectedAnswer: *q.ExpectedAnswer,
			Objectives:     append([]string{}, q.Objectives...),
			Tools:          append([]string{}, q.Tools...),
		}
	}
	if state.TestRunCount < 1 {
		state.TestRunCount = 1
	}
	return state, nil
}

// kindFromString maps a stored bot kind to a known value, defaulting to chat.
func kindFromString(v string) bots.Kind {
	kind := bots.Kind(v)
	if !kind.Valid() {
		return bots.KindChat
	}
	return kind
}

func validatePersisted(raw persistedState) error {
	collector := &issueCollector{}
	if raw.Questions == nil {
		collector.add("questions", "is required")
		return collector.result()
	}
	if len(raw.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}
	if len(raw.Questions) != raw.NumQuestions {
		collector.add("numQuestions", fmt.Sprintf("expected %d questions, found %d", raw.NumQuestions, len(raw.Questions)))
	}
	for i, q := range raw.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if q.Text == nil {
			collector.add(prefix+".question", "is required")
		}
		if q.ExpectedAnswer == nil {
			collector.add(prefix+".expectedAnswer", "is required")
		}
		if q.Objectives == nil {
			collector.add(prefix+".objectives", "must be an array")
		}
		if q.Tools == nil {
			collector.add(prefix+".tools", "must be an array")
		}
	}
	return collector.result()
}

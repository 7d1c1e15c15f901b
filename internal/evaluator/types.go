package evaluator

// Turn events reported by the remote evaluator.
const (
	EventResponse     = "response"
	EventTransferCall = "transfer_call"
)

// Final run outcomes reported by the remote evaluator.
const (
	FinalPassed = "passed"
	FinalFailed = "failed"
)

// Question is one question in the submission payload.
type Question struct {
	Text               string   `json:"question"`
	ExpectedAnswer     string   `json:"expected_answer"`
	ExpectedObjectives []string `json:"expected_objectives"`
	ExpectedTools      []string `json:"expected_tools"`
}

// Request is the test-submission payload sent to the evaluator.
type Request struct {
	Hostname  string     `json:"hostname"`
	BotName   string     `json:"bot_name"`
	CallCount int        `json:"call_count"`
	Questions []Question `json:"questions"`
}

// Turn is one question/response exchange inside a test run.
type Turn struct {
	Question           string   `json:"question"`
	Response           string   `json:"response"`
	ExpectedObjectives []string `json:"expected_objectives"`
	ExpectedTools      []string `json:"expected_tools"`
	Event              string   `json:"event"`
	UsedObjectives     []string `json:"used_objectives"`
	UsedToolCalls      []string `json:"used_tool_calls"`
	IsPassed           *bool    `json:"is_passed,omitempty"`
}

// TestRun is one full pass through the question list against the bot.
type TestRun struct {
	SessionID    string `json:"session_id"`
	Conversation []Turn `json:"conversation"`
	FinalResult  string `json:"final_result"`
}

// Response is the evaluator's reply to a test submission.
type Response struct {
	Success bool      `json:"success"`
	Data    []TestRun `json:"data"`
	Error   string    `json:"error,omitempty"`
}

package result

// QuestionResult is one flattened, view-ready row of a test run. It is
// derived from an evaluator response, never mutated after creation.
type QuestionResult struct {
	Question           string   `json:"question"`
	ExpectedAnswer     string   `json:"expectedAnswer"`
	ActualAnswer       string   `json:"actualAnswer"`
	ExpectedObjectives []string `json:"expectedObjectives"`
	ExpectedTools      []string `json:"expectedTools"`
	UsedObjectives     []string `json:"usedObjectives"`
	UsedTools          []string `json:"usedTools"`
	Event              string   `json:"event"`
	Passed             bool     `json:"passed"`
	TestRunID          int      `json:"testRunId"`
	SessionID          string   `json:"sessionId"`
}

// Summary aggregates pass/fail counts over a result list.
type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"passRate"`
}

// RunGroup is the ordered result list of one test run.
type RunGroup struct {
	RunID   int              `json:"runId"`
	Results []QuestionResult `json:"results"`
}

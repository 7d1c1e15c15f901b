package result

import (
	"fmt"
	"math/rand"

	"github.com/Akash-N-Exotel/botcepter/internal/evaluator"
	"github.com/Akash-N-Exotel/botcepter/internal/form"
)

// GenerateFixture builds synthetic demo results for a question list without
// contacting an evaluator. Each field independently matches its expected
// value with 70% probability; a mismatch appends an extra tag or perturbs
// the answer. A row passes only when all three fields match. The injected
// source makes output deterministic for tests.
func GenerateFixture(questions []form.Question, runs int, rng *rand.Rand) []QuestionResult {
	results := make([]QuestionResult, 0, runs*len(questions))
	for run := 1; run <= runs; run++ {
		for qIndex, q := range questions {
			matchObjectives := rng.Float64() > 0.3
			matchTools := rng.Float64() > 0.3
			matchAnswer := rng.Float64() > 0.3

			usedObjectives := append([]string{}, q.Objectives...)
			if !matchObjectives {
				usedObjectives = append(usedObjectives, "Additional Objective")
			}
			usedTools := append([]string{}, q.Tools...)
			if !matchTools {
				usedTools = append(usedTools, "Additional Tool")
			}
			actualAnswer := q.ExpectedAnswer
			if !matchAnswer {
				actualAnswer = q.ExpectedAnswer + " (with some differences)"
			}

			results = append(results, QuestionResult{
				Question:           textOrPlaceholder(q.Text, "Test Question", qIndex),
				ExpectedAnswer:     textOrPlaceholder(q.ExpectedAnswer, "Expected Answer", qIndex),
				ActualAnswer:       actualAnswer,
				ExpectedObjectives: append([]string{}, q.Objectives...),
				ExpectedTools:      append([]string{}, q.Tools...),
				UsedObjectives:     usedObjectives,
				UsedTools:          usedTools,
				Event:              evaluator.EventResponse,
				Passed:             matchObjectives && matchTools && matchAnswer,
				TestRunID:          run,
				SessionID:          fmt.Sprintf("dummy-session-%d", run),
			})
		}
	}
	return results
}

func textOrPlaceholder(text, label string, index int) string {
	if text != "" {
		return text
	}
	return fmt.Sprintf("%s %d", label, index+1)
}

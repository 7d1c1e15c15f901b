package result

import (
	"github.com/Akash-N-Exotel/botcepter/internal/evaluator"
	"github.com/Akash-N-Exotel/botcepter/internal/form"
)

// transferredAnswer replaces the response text when a turn ended in a call
// transfer.
const transferredAnswer = "Call Transferred"

// Transform flattens evaluator test runs into view-ready results. The
// flattening is pure, total, and order-preserving: run-major, turn-minor,
// one result per turn, nothing dropped or deduplicated. TestRunID is the
// 1-based run position. ExpectedAnswer is left empty because the evaluator
// does not echo it back; callers reconcile it from the submitted questions.
//
// Callers must not invoke Transform on a failed response; remote failures
// are surfaced as errors upstream instead.
func Transform(runs []evaluator.TestRun) []QuestionResult {
	results := make([]QuestionResult, 0, totalTurns(runs))
	for runIndex, run := range runs {
		for _, turn := range run.Conversation {
			actual := turn.Response
			if turn.Event == evaluator.EventTransferCall {
				actual = transferredAnswer
			}
			passed := false
			if turn.IsPassed != nil {
				passed = *turn.IsPassed
			}
			results = append(results, QuestionResult{
				Question:           turn.Question,
				ExpectedAnswer:     "",
				ActualAnswer:       actual,
				ExpectedObjectives: orEmpty(turn.ExpectedObjectives),
				ExpectedTools:      orEmpty(turn.ExpectedTools),
				UsedObjectives:     orEmpty(turn.UsedObjectives),
				UsedTools:          orEmpty(turn.UsedToolCalls),
				Event:              turn.Event,
				Passed:             passed,
				TestRunID:          runIndex + 1,
				SessionID:          run.SessionID,
			})
		}
	}
	return results
}

// ReconcileExpectedAnswers fills in the expected answers the evaluator does
// not return, matching each turn to the submitted question at the same
// position within its run. Results beyond the question list are left as-is.
func ReconcileExpectedAnswers(results []QuestionResult, questions []form.Question) []QuestionResult {
	out := make([]QuestionResult, len(results))
	turnInRun := 0
	lastRun := 0
	for i, r := range results {
		if r.TestRunID != lastRun {
			lastRun = r.TestRunID
			turnInRun = 0
		}
		out[i] = r
		if turnInRun < len(questions) {
			out[i].ExpectedAnswer = questions[turnInRun].ExpectedAnswer
		}
		turnInRun++
	}
	return out
}

func totalTurns(runs []evaluator.TestRun) int {
	total := 0
	for _, run := range runs {
		total += len(run.Conversation)
	}
	return total
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

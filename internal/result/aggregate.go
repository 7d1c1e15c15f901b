package result

import (
	"math"
	"sort"
)

// Summarize computes total/passed/failed counts and the pass rate as a
// percentage rounded to one decimal. An empty list yields a zero summary,
// never a division fault.
func Summarize(results []QuestionResult) Summary {
	summary := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			summary.Passed++
		}
	}
	summary.Failed = summary.Total - summary.Passed
	if summary.Total > 0 {
		rate := float64(summary.Passed) / float64(summary.Total) * 100
		summary.PassRate = math.Round(rate*10) / 10
	}
	return summary
}

// GroupByRun groups results by test run ID. Groups are ordered ascending by
// run ID; within a group, results keep their relative input order.
func GroupByRun(results []QuestionResult) []RunGroup {
	index := map[int]int{}
	groups := make([]RunGroup, 0)
	for _, r := range results {
		at, ok := index[r.TestRunID]
		if !ok {
			at = len(groups)
			index[r.TestRunID] = at
			groups = append(groups, RunGroup{RunID: r.TestRunID})
		}
		groups[at].Results = append(groups[at].Results, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].RunID < groups[j].RunID
	})
	return groups
}

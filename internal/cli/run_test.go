package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Akash-N-Exotel/botcepter/internal/archive"
	"github.com/Akash-N-Exotel/botcepter/internal/evaluator"
	"github.com/Akash-N-Exotel/botcepter/internal/form"
)

// echoEvaluator answers every submission by echoing the submitted
// questions back as passing turns. Like the real evaluator, its reply
// carries no expected answers; those come from the saved form.
func echoEvaluator(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluator.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode evaluator request: %v", err)
		}
		passed := true
		runs := make([]evaluator.TestRun, req.CallCount)
		for i := range runs {
			turns := make([]evaluator.Turn, len(req.Questions))
			for j, q := range req.Questions {
				turns[j] = evaluator.Turn{
					Question:           q.Text,
					Response:           "answered: " + q.Text,
					ExpectedObjectives: q.ExpectedObjectives,
					ExpectedTools:      q.ExpectedTools,
					Event:              evaluator.EventResponse,
					UsedObjectives:     q.ExpectedObjectives,
					UsedToolCalls:      q.ExpectedTools,
					IsPassed:           &passed,
				}
			}
			runs[i] = evaluator.TestRun{
				SessionID:    "session",
				Conversation: turns,
				FinalResult:  evaluator.FinalPassed,
			}
		}
		json.NewEncoder(w).Encode(evaluator.Response{Success: true, Data: runs})
	}
}

func TestRunCommandReconcilesExpectedAnswers(t *testing.T) {
	backend := httptest.NewServer(echoEvaluator(t))
	defer backend.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "botcepter.yaml")
	cfg := fmt.Sprintf("evaluator:\n  base_url: %s\n", backend.URL)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	archivePath := filepath.Join(dir, "runs.db")

	code, stdout, stderr := runCLI("run",
		"--config", cfgPath,
		"--state", filepath.Join(dir, "form.json"),
		"--archive", archivePath)
	if code != ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	// Missing state falls back to the seed form, so its expected
	// answers must show up against the echoed responses.
	seed := form.SeedState()
	for _, q := range seed.Questions {
		if !strings.Contains(stdout, "expected: "+q.ExpectedAnswer) {
			t.Fatalf("stdout missing expected answer %q:\n%s", q.ExpectedAnswer, stdout)
		}
	}
	if !strings.Contains(stdout, "5 passed, 0 failed of 5 (100.0%)") {
		t.Fatalf("summary line missing:\n%s", stdout)
	}

	db, err := archive.Open(archivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer db.Close()
	summaries, err := db.Summaries(context.Background())
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one archived run, got %d", len(summaries))
	}
	rows, err := db.RunResults(context.Background(), summaries[0].ID)
	if err != nil {
		t.Fatalf("RunResults: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 archived rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.ExpectedAnswer != seed.Questions[i].ExpectedAnswer {
			t.Fatalf("archived row %d expected answer = %q, want %q",
				i, r.ExpectedAnswer, seed.Questions[i].ExpectedAnswer)
		}
	}
}

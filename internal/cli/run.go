package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Akash-N-Exotel/botcepter/internal/archive"
	"github.com/Akash-N-Exotel/botcepter/internal/evaluator"
	"github.com/Akash-N-Exotel/botcepter/internal/form"
	"github.com/Akash-N-Exotel/botcepter/internal/result"
	"go.uber.org/zap"
)

var runCommand = &Command{
	Name:    "run",
	Summary: "Submit the persisted test configuration and print results",
	Usage: []string{
		"botcepter run [--config FILE] [--state FILE] [--archive FILE] [--runs N]",
	},
}

func init() { runCommand.Run = runRun }

func runRun(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "botcepter.yaml", "config file path")
	statePath := fs.String("state", "", "persisted form state path (overrides config)")
	archivePath := fs.String("archive", "", "run archive database path (overrides config)")
	runs := fs.Int("runs", 0, "number of test runs (overrides saved state)")
	if wantsHelp(args) {
		printCommandUsage(runCommand, stdout)
		return ExitOK
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, log, ok := loadConfig(*configPath, stderr)
	if !ok {
		return ExitError
	}
	defer log.Sync()
	if *statePath != "" {
		cfg.StatePath = *statePath
	}
	if *archivePath != "" {
		cfg.ArchivePath = *archivePath
	}

	store, err := form.NewStore(cfg.StatePath, form.StoreOptions{Logger: log})
	if err != nil {
		fmt.Fprintf(stderr, "Error opening form store: %v\n", err)
		return ExitError
	}
	defer store.Close()
	state := store.Load()
	if *runs > 0 {
		state.TestRunCount = *runs
	}

	timeout := time.Duration(cfg.Evaluator.TimeoutSeconds) * time.Second
	client, err := evaluator.New(cfg.Evaluator.BaseURL, timeout, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error building evaluator client: %v\n", err)
		return ExitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := evaluator.Request{
		Hostname:  cfg.Evaluator.Hostname,
		BotName:   cfg.Evaluator.BotName,
		CallCount: state.TestRunCount,
		Questions: wireQuestions(state.Questions),
	}
	log.Info("submitting test run",
		zap.Int("questions", len(req.Questions)),
		zap.Int("runs", req.CallCount))

	resp, err := client.Submit(ctx, req)
	if err != nil {
		fmt.Fprintf(stderr, "Submission failed: %v\n", err)
		return ExitError
	}

	results := result.Transform(resp.Data)
	results = result.ReconcileExpectedAnswers(results, state.Questions)
	printResults(stdout, results)

	if cfg.ArchivePath != "" {
		if err := archiveResults(ctx, cfg.ArchivePath, cfg.Evaluator.BotName, results); err != nil {
			log.Warn("archiving failed", zap.Error(err))
		}
	}
	return ExitOK
}

func wireQuestions(questions []form.Question) []evaluator.Question {
	wire := make([]evaluator.Question, len(questions))
	for i, q := range questions {
		wire[i] = evaluator.Question{
			Text:               q.Text,
			ExpectedAnswer:     q.ExpectedAnswer,
			ExpectedObjectives: q.Objectives,
			ExpectedTools:      q.Tools,
		}
	}
	return wire
}

func printResults(w io.Writer, results []result.QuestionResult) {
	for _, group := range result.GroupByRun(results) {
		fmt.Fprintf(w, "Test Run %d\n", group.RunID)
		for _, r := range group.Results {
			status := "FAIL"
			if r.Passed {
				status = "PASS"
			}
			fmt.Fprintf(w, "  [%s] %s\n", status, r.Question)
			if r.ExpectedAnswer != "" {
				fmt.Fprintf(w, "         expected: %s\n", r.ExpectedAnswer)
			}
			fmt.Fprintf(w, "         answer: %s\n", r.ActualAnswer)
			if !result.MatchTags(r.ExpectedObjectives, r.UsedObjectives) {
				fmt.Fprintf(w, "         objectives: expected %s, used %s\n",
					joinTags(r.ExpectedObjectives), joinTags(r.UsedObjectives))
			}
			if !result.MatchTags(r.ExpectedTools, r.UsedTools) {
				fmt.Fprintf(w, "         tools: expected %s, used %s\n",
					joinTags(r.ExpectedTools), joinTags(r.UsedTools))
			}
		}
	}
	summary := result.Summarize(results)
	fmt.Fprintf(w, "\n%d passed, %d failed of %d (%.1f%%)\n",
		summary.Passed, summary.Failed, summary.Total, summary.PassRate)
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "(none)"
	}
	return strings.Join(tags, ", ")
}

func archiveResults(ctx context.Context, path, botName string, results []result.QuestionResult) error {
	db, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	runID, err := archive.NewRunID()
	if err != nil {
		return err
	}
	return db.InsertRun(ctx, archive.Run{
		ID:          runID,
		SubmittedAt: time.Now().UTC(),
		BotName:     botName,
		Results:     results,
	})
}

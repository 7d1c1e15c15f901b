package dashboard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/Akash-N-Exotel/botcepter/internal/archive"
	"github.com/Akash-N-Exotel/botcepter/internal/bots"
	"github.com/Akash-N-Exotel/botcepter/internal/evaluator"
	"github.com/Akash-N-Exotel/botcepter/internal/form"
	"github.com/Akash-N-Exotel/botcepter/internal/result"
)

// missingResultsMessage is the blocking error shown when the results view
// is reached without a submission hand-off.
const missingResultsMessage = "no results, return to form"

// Config wires dependencies for the dashboard handler.
type Config struct {
	Store     *form.Store
	Evaluator *evaluator.Client
	// Hostname and BotName identify the bot under test in every
	// submission payload.
	Hostname string
	BotName  string
	// Archive is optional; archiving failures never fail a submission.
	Archive *archive.DB
	Catalog []bots.Bot
	Logger  *zap.Logger
	Now     func() time.Time
}

// NewHandler builds the HTTP handler for the dashboard UI and API.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("dashboard: form store is required")
	}
	if cfg.Evaluator == nil {
		return nil, errors.New("dashboard: evaluator client is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = bots.Catalog()
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	h := &handler{
		store:     cfg.Store,
		evaluator: cfg.Evaluator,
		hostname:  cfg.Hostname,
		botName:   cfg.BotName,
		archive:   cfg.Archive,
		catalog:   catalog,
		logger:    logger,
		nowFn:     nowFn,
	}
	mux := http.NewServeMux()
	mux.Handle("/", templ.Handler(indexPage()))
	mux.HandleFunc("/api/bots", h.handleBots)
	mux.HandleFunc("/api/form", h.handleForm)
	mux.HandleFunc("/api/form/questions/count", h.handleQuestionCount)
	mux.HandleFunc("/api/form/reset", h.handleReset)
	mux.HandleFunc("/api/test", h.handleSubmit)
	mux.HandleFunc("/api/results", h.handleResults)
	mux.HandleFunc("/api/archive", h.handleArchive)
	mux.HandleFunc("/api/archive/", h.handleArchiveRun)
	return mux, nil
}

type handler struct {
	store     *form.Store
	evaluator *evaluator.Client
	hostname  string
	botName   string
	archive   *archive.DB
	catalog   []bots.Bot
	logger    *zap.Logger
	nowFn     func() time.Time

	handoff handoffState

	// submitMu keeps submissions single-flight; a concurrent submit is
	// rejected rather than queued.
	submitMu sync.Mutex
	inFlight bool
}

func (h *handler) handleBots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	catalog := h.catalog
	if kind := bots.Kind(r.URL.Query().Get("type")); kind != "" {
		if !kind.Valid() {
			writeError(w, http.StatusBadRequest, "type must be chat or voice")
			return
		}
		catalog = bots.FilterByKind(catalog, kind)
	}
	writeJSON(w, http.StatusOK, struct {
		Bots []bots.Bot `json:"bots"`
	}{Bots: catalog})
}

func (h *handler) handleForm(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Load())
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read body: "+err.Error())
			return
		}
		state, err := form.ParseState(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.store.Save(state)
		writeJSON(w, http.StatusOK, state)
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (h *handler) handleQuestionCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state := form.SetQuestionCount(h.store.Load(), req.Count)
	h.store.Save(state)
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Reset())
}

func (h *handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !h.beginSubmit() {
		writeError(w, http.StatusConflict, "a test submission is already in progress")
		return
	}
	defer h.endSubmit()

	state := h.store.Load()
	req := evaluator.Request{
		Hostname:  h.hostname,
		BotName:   h.botName,
		CallCount: state.TestRunCount,
		Questions: toWireQuestions(state.Questions),
	}
	resp, err := h.evaluator.Submit(r.Context(), req)
	if err != nil {
		// The prior hand-off stays intact; no partial results are shown.
		h.logger.Warn("test submission failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	results := result.Transform(resp.Data)
	results = result.ReconcileExpectedAnswers(results, state.Questions)
	h.handoff.set(state.Questions, results)
	h.archiveRun(r, state, results)

	writeJSON(w, http.StatusOK, struct {
		Success bool                    `json:"success"`
		Results []result.QuestionResult `json:"results"`
		Summary result.Summary          `json:"summary"`
	}{Success: true, Results: results, Summary: result.Summarize(results)})
}

func (h *handler) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	handoff, ok := h.handoff.get()
	if !ok {
		writeError(w, http.StatusNotFound, missingResultsMessage)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Questions []form.Question         `json:"questions"`
		Results   []result.QuestionResult `json:"results"`
		Summary   result.Summary          `json:"summary"`
		Runs      []result.RunGroup       `json:"runs"`
	}{
		Questions: handoff.Questions,
		Results:   handoff.Results,
		Summary:   result.Summarize(handoff.Results),
		Runs:      result.GroupByRun(handoff.Results),
	})
}

func (h *handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if h.archive == nil {
		writeError(w, http.StatusNotFound, "archive is not configured")
		return
	}
	summaries, err := h.archive.Summaries(r.Context())
	if err != nil {
		h.logger.Error("list archived runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list archived runs")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Runs []archiveRunView `json:"runs"`
	}{Runs: toArchiveViews(summaries)})
}

func (h *handler) handleArchiveRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if h.archive == nil {
		writeError(w, http.StatusNotFound, "archive is not configured")
		return
	}
	runID := strings.TrimPrefix(r.URL.Path, "/api/archive/")
	if runID == "" {
		writeError(w, http.StatusNotFound, "run id is required")
		return
	}
	results, err := h.archive.RunResults(r.Context(), runID)
	if err != nil {
		h.logger.Error("load archived run", zap.String("run_id", runID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load archived run")
		return
	}
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ID      string                  `json:"id"`
		Results []result.QuestionResult `json:"results"`
		Summary result.Summary          `json:"summary"`
		Runs    []result.RunGroup       `json:"runs"`
	}{
		ID:      runID,
		Results: results,
		Summary: result.Summarize(results),
		Runs:    result.GroupByRun(results),
	})
}

func (h *handler) archiveRun(r *http.Request, state form.FormState, results []result.QuestionResult) {
	if h.archive == nil {
		return
	}
	runID, err := archive.NewRunID()
	if err != nil {
		h.logger.Warn("generate archive run id", zap.Error(err))
		return
	}
	run := archive.Run{
		ID:          runID,
		SubmittedAt: h.nowFn(),
		BotName:     h.botName,
		Results:     results,
	}
	if err := h.archive.InsertRun(r.Context(), run); err != nil {
		h.logger.Warn("archive test run", zap.String("run_id", runID), zap.Error(err))
	}
}

func (h *handler) beginSubmit() bool {
	h.submitMu.Lock()
	defer h.submitMu.Unlock()
	if h.inFlight {
		return false
	}
	h.inFlight = true
	return true
}

func (h *handler) endSubmit() {
	h.submitMu.Lock()
	h.inFlight = false
	h.submitMu.Unlock()
}

type archiveRunView struct {
	ID          string         `json:"id"`
	SubmittedAt time.Time      `json:"submittedAt"`
	BotName     string         `json:"botName"`
	Summary     result.Summary `json:"summary"`
}

func toArchiveViews(summaries []archive.RunSummary) []archiveRunView {
	out := make([]archiveRunView, len(summaries))
	for i, s := range summaries {
		out[i] = archiveRunView{ID: s.ID, SubmittedAt: s.SubmittedAt, BotName: s.BotName, Summary: s.Summary}
	}
	return out
}

func toWireQuestions(questions []form.Question) []evaluator.Question {
	out := make([]evaluator.Question, len(questions))
	for i, q := range questions {
		out[i] = evaluator.Question{
			Text:               q.Text,
			ExpectedAnswer:     q.ExpectedAnswer,
			ExpectedObjectives: q.Objectives,
			ExpectedTools:      q.Tools,
		}
	}
	return out
}

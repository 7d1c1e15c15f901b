package dashboard

import (
	"sync"

	"github.com/Akash-N-Exotel/botcepter/internal/form"
	"github.com/Akash-N-Exotel/botcepter/internal/result"
)

// Handoff is the in-memory transfer from a completed submission to the
// results view. It has no durable fallback: when absent, the results
// endpoint must answer with an explicit error state, never an empty table.
type Handoff struct {
	Questions []form.Question         `json:"questions"`
	Results   []result.QuestionResult `json:"results"`
}

// handoffState guards the latest hand-off. A failed submission leaves any
// prior hand-off untouched.
type handoffState struct {
	mu      sync.Mutex
	current *Handoff
}

func (h *handoffState) set(questions []form.Question, results []result.QuestionResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = &Handoff{Questions: questions, Results: results}
}

func (h *handoffState) get() (Handoff, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return Handoff{}, false
	}
	return *h.current, true
}

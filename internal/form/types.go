package form

import "github.com/Akash-N-Exotel/botcepter/internal/bots"

const (
	// MinQuestions and MaxQuestions bound the configurable question list.
	MinQuestions = 1
	MaxQuestions = 10
)

// Question is one configured test question with its expected outcome.
type Question struct {
	Text           string   `json:"question"`
	ExpectedAnswer string   `json:"expectedAnswer"`
	Objectives     []string `json:"objectives"`
	Tools          []string `json:"tools"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	out.Objectives = append([]string(nil), q.Objectives...)
	out.Tools = append([]string(nil), q.Tools...)
	return out
}

// FormState is the full test-configuration form, persisted as one JSON blob.
//
// Invariant: NumQuestions == len(Questions) after any mutation settles.
type FormState struct {
	BotKind       bots.Kind  `json:"selectedBotType"`
	SelectedBotID string     `json:"selectedBotId"`
	TestRunCount  int        `json:"testCount"`
	NumQuestions  int        `json:"numQuestions"`
	Questions     []Question `json:"questions"`
}

// Clone returns a deep copy of the form state.
func (s FormState) Clone() FormState {
	out := s
	out.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

// SetQuestionCount returns the state resized to n questions, clamped to
// [MinQuestions, MaxQuestions]. Growing appends seed questions by position
// and blank questions once the seed is exhausted; shrinking truncates from
// the end. Questions outside the changed range are left untouched.
func SetQuestionCount(state FormState, n int) FormState {
	if n < MinQuestions {
		n = MinQuestions
	}
	if n > MaxQuestions {
		n = MaxQuestions
	}
	out := state.Clone()
	if n <= len(out.Questions) {
		out.Questions = out.Questions[:n]
		out.NumQuestions = n
		return out
	}
	seed := seedQuestions()
	for i := len(out.Questions); i < n; i++ {
		if i < len(seed) {
			out.Questions = append(out.Questions, seed[i].Clone())
			continue
		}
		out.Questions = append(out.Questions, Question{Objectives: []string{}, Tools: []string{}})
	}
	out.NumQuestions = n
	return out
}

package form

import (
	"reflect"
	"testing"
)

func TestSeedStateIsIsolated(t *testing.T) {
	first := SeedState()
	first.Questions[0].Text = "mutated"
	first.Questions[0].Objectives[0] = "mutated"

	second := SeedState()
	if second.Questions[0].Text == "mutated" {
		t.Fatalf("mutating a seed copy leaked into the shared seed")
	}
	if second.Questions[0].Objectives[0] == "mutated" {
		t.Fatalf("mutating a seed copy's objectives leaked into the shared seed")
	}
}

func TestSetQuestionCountClamps(t *testing.T) {
	state := SeedState()

	small := SetQuestionCount(state, 0)
	if small.NumQuestions != MinQuestions || len(small.Questions) != MinQuestions {
		t.Fatalf("count 0 should clamp to %d, got %d questions", MinQuestions, len(small.Questions))
	}

	big := SetQuestionCount(state, 25)
	if big.NumQuestions != MaxQuestions || len(big.Questions) != MaxQuestions {
		t.Fatalf("count 25 should clamp to %d, got %d questions", MaxQuestions, len(big.Questions))
	}
}

func TestSetQuestionCountShrinkKeepsPrefix(t *testing.T) {
	state := SeedState()
	state.Questions[1].Text = "edited second question"

	out := SetQuestionCount(state, 2)
	if len(out.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(out.Questions))
	}
	if out.Questions[0].Text != state.Questions[0].Text {
		t.Fatalf("first question changed on shrink")
	}
	if out.Questions[1].Text != "edited second question" {
		t.Fatalf("edited question lost on shrink: %q", out.Questions[1].Text)
	}
}

func TestSetQuestionCountGrowsFromSeedByPosition(t *testing.T) {
	state := SetQuestionCount(SeedState(), 2)

	out := SetQuestionCount(state, 4)
	seed := SeedState()
	if out.Questions[2].Text != seed.Questions[2].Text {
		t.Fatalf("position 2 should refill from the seed, got %q", out.Questions[2].Text)
	}
	if out.Questions[3].Text != seed.Questions[3].Text {
		t.Fatalf("position 3 should refill from the seed, got %q", out.Questions[3].Text)
	}
}

func TestSetQuestionCountBlankBeyondSeed(t *testing.T) {
	out := SetQuestionCount(SeedState(), 7)
	for i := 5; i < 7; i++ {
		q := out.Questions[i]
		if q.Text != "" || q.ExpectedAnswer != "" {
			t.Fatalf("question %d beyond the seed should be blank, got %+v", i, q)
		}
		if q.Objectives == nil || q.Tools == nil {
			t.Fatalf("question %d should carry empty tag slices, not nil", i)
		}
	}
}

func TestSetQuestionCountDoesNotAliasInput(t *testing.T) {
	state := SeedState()
	out := SetQuestionCount(state, 3)
	out.Questions[0].Text = "mutated"
	out.Questions[0].Objectives[0] = "mutated"

	if state.Questions[0].Text == "mutated" || state.Questions[0].Objectives[0] == "mutated" {
		t.Fatalf("resized state aliases the input state")
	}
}

func TestSetQuestionCountIdempotent(t *testing.T) {
	state := SeedState()
	once := SetQuestionCount(state, 5)
	twice := SetQuestionCount(once, 5)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("resize to the current count should be a no-op:\n%+v\nvs\n%+v", once, twice)
	}
}

func TestFormStateCloneIsDeep(t *testing.T) {
	state := SeedState()
	clone := state.Clone()
	clone.Questions[0].Tools[0] = "mutated"
	if state.Questions[0].Tools[0] == "mutated" {
		t.Fatalf("Clone shares tool slices with the original")
	}
}

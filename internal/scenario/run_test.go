package scenario

import (
	"errors"
	"slices"
	"testing"

	"github.com/abhisek/detective/internal/cases"
)

func makeScenario(id string, correct ...int) cases.Scenario {
	s := cases.Scenario{Header: cases.Header{ID: id, Title: "Scenario " + id}}
	for _, c := range correct {
		s.Steps = append(s.Steps, cases.Step{
			Prompt:       "step",
			Options:      []string{"a", "b", "c"},
			CorrectIndex: c,
			Feedback:     []string{"fa", "fb", "fc"},
		})
	}
	return s
}

func TestAdvance_TwoStepExample(t *testing.T) {
	s := makeScenario("two", 1, 0)
	r := NewRun(s)
	if r.State() != InProgress || r.CurrentStep() != 0 {
		t.Fatalf("new run: state %s step %d", r.State(), r.CurrentStep())
	}

	res, err := r.Advance(s, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Correct || res.Feedback != "fb" || res.State != InProgress || res.Summary != nil {
		t.Errorf("step 0 result = %+v", res)
	}

	res, err = r.Advance(s, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.State != Completed || r.State() != Completed {
		t.Errorf("state = %s, want completed", res.State)
	}
	if r.Score() != 20 {
		t.Errorf("Score = %d, want 20", r.Score())
	}
	if !slices.Equal(r.History(), []int{1, 0}) {
		t.Errorf("History = %v, want [1 0]", r.History())
	}
	if res.Summary == nil || res.Summary.Score != 20 || res.Summary.Outcome != Flawless {
		t.Errorf("Summary = %+v", res.Summary)
	}
}

func TestAdvance_IncorrectStep(t *testing.T) {
	s := makeScenario("s", 2, 2)
	r := NewRun(s)
	res, err := r.Advance(s, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Correct || res.Feedback != "fa" || res.CorrectChoice != 2 {
		t.Errorf("result = %+v", res)
	}
	if r.Score() != 0 || r.CurrentStep() != 1 {
		t.Errorf("score %d step %d, want 0 1", r.Score(), r.CurrentStep())
	}
}

func TestAdvance_InvalidChoiceLeavesRunUntouched(t *testing.T) {
	s := makeScenario("s", 0, 0)
	r := NewRun(s)
	for _, k := range []int{-1, 3, 99} {
		_, err := r.Advance(s, k)
		if !errors.Is(err, cases.ErrInvalidChoice) {
			t.Errorf("Advance(%d) err = %v, want ErrInvalidChoice", k, err)
		}
		var ice *cases.InvalidChoiceError
		if !errors.As(err, &ice) || ice.Options != 3 {
			t.Errorf("Advance(%d) err = %v, want InvalidChoiceError with 3 options", k, err)
		}
	}
	if r.CurrentStep() != 0 || len(r.History()) != 0 || r.Score() != 0 {
		t.Errorf("run mutated: step %d history %v score %d", r.CurrentStep(), r.History(), r.Score())
	}
}

func TestAdvance_AfterCompletion(t *testing.T) {
	s := makeScenario("s", 0)
	r := NewRun(s)
	if _, err := r.Advance(s, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Advance(s, 0); !errors.Is(err, ErrRunCompleted) {
		t.Errorf("err = %v, want ErrRunCompleted", err)
	}
	if !slices.Equal(r.History(), []int{0}) {
		t.Errorf("History = %v, want [0]", r.History())
	}
}

func TestAdvance_WrongScenario(t *testing.T) {
	r := NewRun(makeScenario("a", 0))
	_, err := r.Advance(makeScenario("b", 0), 0)
	if !errors.Is(err, cases.ErrUnknownScenario) {
		t.Errorf("err = %v, want ErrUnknownScenario", err)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name    string
		correct []int // correct index per step
		answers []int
		score   int
		want    Outcome
	}{
		{"3 of 3", []int{0, 0, 0}, []int{0, 0, 0}, 30, Flawless},
		{"2 of 3", []int{0, 0, 0}, []int{0, 0, 1}, 20, NeedsImprovement},
		{"3 of 4", []int{0, 0, 0, 0}, []int{0, 1, 0, 0}, 30, Strong},
		{"7 of 10 tie", []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, []int{0, 0, 0, 0, 0, 0, 0, 1, 1, 1}, 70, Strong},
		{"0 of 2", []int{0, 0}, []int{1, 1}, 0, NeedsImprovement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeScenario("s", tt.correct...)
			r := NewRun(s)
			var res StepResult
			for _, k := range tt.answers {
				var err error
				res, err = r.Advance(s, k)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if res.Summary == nil {
				t.Fatal("expected summary on final step")
			}
			if res.Summary.Score != tt.score {
				t.Errorf("Score = %d, want %d", res.Summary.Score, tt.score)
			}
			if res.Summary.Outcome != tt.want {
				t.Errorf("Outcome = %s, want %s", res.Summary.Outcome, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score, max int
		want       Outcome
	}{
		{40, 40, Flawless},
		{30, 40, Strong},
		{28, 40, Strong},
		{27, 40, NeedsImprovement},
		{21, 30, Strong},
		{20, 30, NeedsImprovement},
	}
	for _, tt := range tests {
		if got := Classify(tt.score, tt.max); got != tt.want {
			t.Errorf("Classify(%d, %d) = %s, want %s", tt.score, tt.max, got, tt.want)
		}
	}
}

func TestRestart(t *testing.T) {
	s := makeScenario("s", 0, 0, 0)
	r := NewRun(s)
	r.Advance(s, 0)
	r.Advance(s, 1)

	r.Restart()
	if r.State() != InProgress || r.CurrentStep() != 0 || r.Score() != 0 || len(r.History()) != 0 {
		t.Errorf("after restart: state %s step %d score %d history %v", r.State(), r.CurrentStep(), r.Score(), r.History())
	}

	// A completed run can be restarted and replayed.
	for range 3 {
		r.Advance(s, 0)
	}
	r.Restart()
	if _, err := r.Advance(s, 0); err != nil {
		t.Errorf("advance after restart: %v", err)
	}
}

func TestResumeContinuesFromCurrentStep(t *testing.T) {
	s := makeScenario("s", 0, 1, 2)
	r := NewRun(s)
	r.Advance(s, 0)

	// Abandoned and resumed later: same run, next step.
	res, err := r.Advance(s, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Step != 1 || !res.Correct {
		t.Errorf("resumed at step %d correct=%v, want step 1 correct", res.Step, res.Correct)
	}
}

func TestSummary(t *testing.T) {
	s := makeScenario("s", 0, 1)
	r := NewRun(s)
	if _, ok := r.Summary(s); ok {
		t.Error("in-progress run should have no summary")
	}
	r.Advance(s, 0)
	r.Advance(s, 2)

	sum, ok := r.Summary(s)
	if !ok {
		t.Fatal("completed run should have a summary")
	}
	if sum.Correct != 1 || sum.MaxScore != 20 || len(sum.Steps) != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Steps[1].Choice != "c" || sum.Steps[1].Correct || sum.Steps[1].Feedback != "fc" {
		t.Errorf("step review = %+v", sum.Steps[1])
	}
}

func TestHistoryIsCopy(t *testing.T) {
	s := makeScenario("s", 0, 0)
	r := NewRun(s)
	r.Advance(s, 0)
	h := r.History()
	h[0] = 2
	if r.History()[0] != 0 {
		t.Error("History exposes internal storage")
	}
}

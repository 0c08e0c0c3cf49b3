// Package scenario implements the step-by-step state machine for decision
// scenarios.
package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/detective/internal/cases"
)

// StepReward is the score for one correct step.
const StepReward = 10

// ErrRunCompleted is returned when advancing a run that has already ended.
var ErrRunCompleted = errors.New("scenario run already completed")

// State is the lifecycle state of a run.
type State int

const (
	InProgress State = iota
	Completed
)

func (s State) String() string {
	if s == Completed {
		return "completed"
	}
	return "in_progress"
}

// Run is the ephemeral progress through one scenario. The scenario itself
// is referenced by ID and passed to each call.
type Run struct {
	scenarioID string
	steps      int
	current    int
	score      int
	history    []int
}

// NewRun starts a run at step 0.
func NewRun(s cases.Scenario) *Run {
	return &Run{scenarioID: s.ID, steps: len(s.Steps)}
}

func (r *Run) ScenarioID() string { return r.scenarioID }
func (r *Run) CurrentStep() int   { return r.current }
func (r *Run) Score() int         { return r.score }
func (r *Run) TotalSteps() int    { return r.steps }

// History returns the selected option indices, one per completed step.
func (r *Run) History() []int { return slices.Clone(r.history) }

// State returns Completed once every step has been answered.
func (r *Run) State() State {
	if r.current >= r.steps {
		return Completed
	}
	return InProgress
}

// StepResult is the outcome of one Advance.
type StepResult struct {
	Step          int
	Choice        int
	CorrectChoice int
	Correct       bool
	Feedback      string
	State         State
	Summary       *Summary // set when the run completes
}

// Advance answers the current step with option k. All checks run before
// the run is modified.
func (r *Run) Advance(s cases.Scenario, k int) (StepResult, error) {
	if s.ID != r.scenarioID || len(s.Steps) != r.steps {
		return StepResult{}, fmt.Errorf("%w: run is for %q, got %q", cases.ErrUnknownScenario, r.scenarioID, s.ID)
	}
	if r.State() == Completed {
		return StepResult{}, ErrRunCompleted
	}
	step := s.Steps[r.current]
	if err := step.CheckChoice(k); err != nil {
		return StepResult{}, err
	}

	res := StepResult{
		Step:          r.current,
		Choice:        k,
		CorrectChoice: step.CorrectIndex,
		Correct:       k == step.CorrectIndex,
		Feedback:      step.Feedback[k],
	}
	r.history = append(r.history, k)
	if res.Correct {
		r.score += StepReward
	}
	r.current++

	res.State = r.State()
	if res.State == Completed {
		sum := r.summary(s)
		res.Summary = &sum
	}
	return res, nil
}

// Restart discards all progress and returns the run to step 0.
func (r *Run) Restart() {
	r.current = 0
	r.score = 0
	r.history = nil
}

// Summary returns the summary of a completed run.
func (r *Run) Summary(s cases.Scenario) (Summary, bool) {
	if r.State() != Completed || s.ID != r.scenarioID {
		return Summary{}, false
	}
	return r.summary(s), true
}

// Summary describes a completed run.
type Summary struct {
	ScenarioID string
	Title      string
	Score      int
	MaxScore   int
	Correct    int
	Steps      []StepReview
	Outcome    Outcome
}

// StepReview is one answered step in a summary.
type StepReview struct {
	Prompt   string
	Choice   string
	Correct  bool
	Feedback string
}

func (r *Run) summary(s cases.Scenario) Summary {
	sum := Summary{
		ScenarioID: s.ID,
		Title:      s.Title,
		Score:      r.score,
		MaxScore:   s.MaxScore(StepReward),
	}
	for i, k := range r.history {
		st := s.Steps[i]
		ok := k == st.CorrectIndex
		if ok {
			sum.Correct++
		}
		sum.Steps = append(sum.Steps, StepReview{
			Prompt:   st.Prompt,
			Choice:   st.Options[k],
			Correct:  ok,
			Feedback: st.Feedback[k],
		})
	}
	sum.Outcome = Classify(sum.Score, sum.MaxScore)
	return sum
}

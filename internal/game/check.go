// Package game connects the case catalog, the scenario state machine and
// the scoring engine. The free functions operate on records and runs passed
// in explicitly; Session bundles them for the presentation layer.
package game

import (
	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/scenario"
)

// GenericHint is shown after a wrong answer in place of the explanation.
const GenericHint = "Not quite. Re-examine the calculation base: what is in the numerator, " +
	"what is in the denominator, and are the groups being compared really comparable?"

// Gain is what a scoring event changed in the progression record.
type Gain struct {
	PointsAwarded   int
	LevelUp         *progress.LevelUp
	NewAchievements []progress.Achievement
}

func gainFrom(a progress.Award) Gain {
	return Gain{
		PointsAwarded:   a.PointsAwarded,
		LevelUp:         a.LevelUp,
		NewAchievements: a.NewAchievements,
	}
}

// CheckResult is the outcome of checking an analysis case answer.
type CheckResult struct {
	Gain
	CaseID        string
	Choice        int
	CorrectChoice int
	Correct       bool
	// Repeat is set when a correct answer re-solves an already solved case.
	// It keeps the streak but awards no points.
	Repeat      bool
	Explanation string // set when correct
	Hint        string // set when incorrect
}

// CheckAnswer evaluates option k of c. A correct answer awards the case
// points (none on a repeat solve) and reveals the explanation; a wrong one
// resets the streak and reveals the generic hint. An out-of-range k fails
// before rec is touched.
func CheckAnswer(rec *progress.Record, c cases.AnalysisCase, k int) (CheckResult, error) {
	if err := c.CheckChoice(k); err != nil {
		return CheckResult{}, err
	}

	res := CheckResult{
		CaseID:        c.ID,
		Choice:        k,
		CorrectChoice: c.CorrectIndex,
	}
	if !c.IsCorrect(k) {
		progress.ResetStreak(rec)
		res.Hint = GenericHint
		return res, nil
	}

	res.Correct = true
	res.Explanation = c.Explanation
	res.Repeat = rec.IsSolved(c.ID)
	points := c.Points
	if res.Repeat {
		points = 0
	}
	award, err := progress.AwardPoints(rec, points, c.ID)
	if err != nil {
		return CheckResult{}, err
	}
	res.Gain = gainFrom(award)
	return res, nil
}

// RevealBias returns the revelation of a bias case. It changes nothing.
func RevealBias(c cases.BiasCase) string {
	return c.Revelation
}

// NextHint returns the hint following the shown ones, if any remain.
func NextHint(c cases.BiasCase, shown int) (string, bool) {
	return c.Hint(shown)
}

// BiasResult is the outcome of self-reporting a bias case.
type BiasResult struct {
	Gain
	CaseID     string
	Understood bool
	Repeat     bool
}

// CompleteBias records the player's self-report for c. Only an affirmed
// understanding awards the flat bias reward; otherwise nothing changes.
func CompleteBias(rec *progress.Record, c cases.BiasCase, understood bool) (BiasResult, error) {
	res := BiasResult{CaseID: c.ID, Understood: understood}
	if !understood {
		return res, nil
	}

	res.Repeat = rec.IsSolved(c.ID)
	points := c.Reward()
	if res.Repeat {
		points = 0
	}
	award, err := progress.AwardPoints(rec, points, c.ID)
	if err != nil {
		return BiasResult{}, err
	}
	res.Gain = gainFrom(award)
	return res, nil
}

// AdvanceResult is the outcome of one scenario step.
type AdvanceResult struct {
	scenario.StepResult
	Gain
}

// AdvanceScenario answers the current step of run with option k. A correct
// step awards the step reward and extends the streak; a wrong one resets the
// streak. Completing the run marks the scenario completed.
func AdvanceScenario(rec *progress.Record, run *scenario.Run, s cases.Scenario, k int) (AdvanceResult, error) {
	step, err := run.Advance(s, k)
	if err != nil {
		return AdvanceResult{}, err
	}

	res := AdvanceResult{StepResult: step}
	if step.Correct {
		award, err := progress.AwardPoints(rec, scenario.StepReward, "")
		if err != nil {
			return AdvanceResult{}, err
		}
		res.Gain = gainFrom(award)
	} else {
		progress.ResetStreak(rec)
	}

	if step.State == scenario.Completed {
		progress.MarkScenarioCompleted(rec, s.ID)
	}
	return res, nil
}

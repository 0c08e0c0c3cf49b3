package cases

import (
	"fmt"
	"strings"
)

// Family identifies a case family. Analysis and bias cases share one ID
// namespace; scenarios have their own.
type Family string

const (
	FamilyAnalysis Family = "analysis"
	FamilyBias     Family = "bias"
)

// AllFamilies returns the case families in display order.
func AllFamilies() []Family {
	return []Family{FamilyAnalysis, FamilyBias}
}

// DisplayName returns a human-readable label for the family.
func (f Family) DisplayName() string {
	switch f {
	case FamilyAnalysis:
		return "Find the Error"
	case FamilyBias:
		return "Catch the Bias"
	default:
		return string(f)
	}
}

// Difficulty is an ordered difficulty tier.
type Difficulty int

const (
	Novice Difficulty = iota
	Analyst
	Expert
)

// AllDifficulties returns all difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{Novice, Analyst, Expert}
}

func (d Difficulty) String() string {
	switch d {
	case Novice:
		return "novice"
	case Analyst:
		return "analyst"
	case Expert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// DisplayName returns the capitalized label.
func (d Difficulty) DisplayName() string {
	switch d {
	case Novice:
		return "Novice"
	case Analyst:
		return "Analyst"
	case Expert:
		return "Expert"
	default:
		return d.String()
	}
}

// Stars renders the difficulty as a star rating.
func (d Difficulty) Stars() string {
	return strings.Repeat("★", int(d)+1) + strings.Repeat("☆", int(Expert-d))
}

// ParseDifficulty parses a difficulty name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "novice":
		return Novice, nil
	case "analyst":
		return Analyst, nil
	case "expert":
		return Expert, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (want novice, analyst or expert)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Header holds the display fields shared by every catalog entry.
type Header struct {
	ID          string     `json:"id"`
	Difficulty  Difficulty `json:"difficulty"`
	Domain      string     `json:"domain,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// Info returns the entry header.
func (h Header) Info() Header { return h }

// Case is either an AnalysisCase or a BiasCase.
type Case interface {
	Info() Header
	Family() Family
	Reward() int
	isCase()
}

// BiasPoints is the flat reward for completing any bias case.
const BiasPoints = 20

// AnalysisCase is a single-shot case with exactly one correct option.
type AnalysisCase struct {
	Header
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Points       int      `json:"points"`
}

func (AnalysisCase) Family() Family { return FamilyAnalysis }
func (c AnalysisCase) Reward() int  { return c.Points }
func (AnalysisCase) isCase()        {}

// CheckChoice returns an InvalidChoiceError if k is not an offered option.
func (c AnalysisCase) CheckChoice(k int) error {
	return checkChoice(k, len(c.Options))
}

// IsCorrect reports whether k is the correct option.
func (c AnalysisCase) IsCorrect(k int) bool {
	return k == c.CorrectIndex
}

// BiasCase is an open-ended case: the player answers the questions freely,
// then asks for the revelation and self-reports understanding.
type BiasCase struct {
	Header
	Questions  []string `json:"questions"`
	Hints      []string `json:"hints"`
	Revelation string   `json:"revelation"`
}

func (BiasCase) Family() Family { return FamilyBias }
func (BiasCase) Reward() int    { return BiasPoints }
func (BiasCase) isCase()        {}

// Hint returns the i-th hint and whether it exists.
func (c BiasCase) Hint(i int) (string, bool) {
	if i < 0 || i >= len(c.Hints) {
		return "", false
	}
	return c.Hints[i], true
}

// Step is one decision point of a scenario. Feedback has one entry per option.
type Step struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Feedback     []string `json:"feedback"`
}

// CheckChoice returns an InvalidChoiceError if k is not an offered option.
func (s Step) CheckChoice(k int) error {
	return checkChoice(k, len(s.Options))
}

// Scenario is a multi-step branching decision exercise.
type Scenario struct {
	Header
	Steps []Step `json:"steps"`
}

// MaxScore is the score of a flawless run.
func (s Scenario) MaxScore(stepReward int) int {
	return stepReward * len(s.Steps)
}

func checkChoice(k, options int) error {
	if k < 0 || k >= options {
		return &InvalidChoiceError{Index: k, Options: options}
	}
	return nil
}

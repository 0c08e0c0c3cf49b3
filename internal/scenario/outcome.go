package scenario

// Outcome classifies a completed run.
type Outcome int

const (
	NeedsImprovement Outcome = iota
	Strong
	Flawless
)

// Strong threshold as a fraction of the maximum score.
const (
	strongNum = 7
	strongDen = 10
)

// Classify maps a final score to an outcome. Flawless needs every step
// right; Strong needs at least 70% of the maximum, ties included.
func Classify(score, maxScore int) Outcome {
	switch {
	case score >= maxScore:
		return Flawless
	case strongDen*score >= strongNum*maxScore:
		return Strong
	default:
		return NeedsImprovement
	}
}

func (o Outcome) String() string {
	switch o {
	case Flawless:
		return "flawless"
	case Strong:
		return "strong"
	default:
		return "needs_improvement"
	}
}

// DisplayName returns a human-readable label for the outcome.
func (o Outcome) DisplayName() string {
	switch o {
	case Flawless:
		return "Flawless analysis"
	case Strong:
		return "Strong performance"
	default:
		return "Needs improvement"
	}
}

// Icon returns the display icon for the outcome.
func (o Outcome) Icon() string {
	switch o {
	case Flawless:
		return "🏆"
	case Strong:
		return "✅"
	default:
		return "📚"
	}
}

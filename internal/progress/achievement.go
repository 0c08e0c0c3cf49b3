package progress

// Achievement identifies a one-time unlockable badge.
type Achievement string

const (
	FirstSteps      Achievement = "first_steps"
	StreakDetective Achievement = "streak_detective"
	SeasonedSleuth  Achievement = "seasoned_sleuth"
)

// Unlock thresholds.
const (
	FirstStepsScore     = 10
	StreakDetectiveRun  = 5
	SeasonedSleuthLevel = 3
)

// AllAchievements returns all achievements in evaluation order.
func AllAchievements() []Achievement {
	return []Achievement{FirstSteps, StreakDetective, SeasonedSleuth}
}

// DisplayName returns a human-readable label for the achievement.
func (a Achievement) DisplayName() string {
	switch a {
	case FirstSteps:
		return "First Steps"
	case StreakDetective:
		return "Streak Detective"
	case SeasonedSleuth:
		return "Seasoned Sleuth"
	default:
		return string(a)
	}
}

// Description explains how the achievement is earned.
func (a Achievement) Description() string {
	switch a {
	case FirstSteps:
		return "Earn your first 10 points"
	case StreakDetective:
		return "Answer 5 in a row correctly"
	case SeasonedSleuth:
		return "Reach level 3"
	default:
		return ""
	}
}

// Icon returns the display icon for the achievement.
func (a Achievement) Icon() string {
	switch a {
	case FirstSteps:
		return "🔍"
	case StreakDetective:
		return "⚡"
	case SeasonedSleuth:
		return "🕵️"
	default:
		return "✦"
	}
}

// unlocked reports whether the achievement predicate holds for rec.
func (a Achievement) unlocked(rec *Record) bool {
	switch a {
	case FirstSteps:
		return rec.score >= FirstStepsScore
	case StreakDetective:
		return rec.currentStreak >= StreakDetectiveRun
	case SeasonedSleuth:
		return rec.Level() >= SeasonedSleuthLevel
	default:
		return false
	}
}

package progress

import "time"

// recentAchievements is how many achievements Snapshot.Recent holds.
const recentAchievements = 3

// Snapshot is a read-only projection of a Record for rendering.
type Snapshot struct {
	Score              int
	Level              int
	CurrentStreak      int
	BestStreak         int
	SolvedCount        int
	CompletedScenarios int
	Achievements       []Achievement
	Recent             []Achievement // latest first
	LevelProgress      int           // points into the current level
	ToNextLevel        int
	PlayTime           time.Duration
}

// Snapshot projects the record at time now.
func (r *Record) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Score:              r.score,
		Level:              r.Level(),
		CurrentStreak:      r.currentStreak,
		BestStreak:         r.bestStreak,
		SolvedCount:        len(r.solved),
		CompletedScenarios: len(r.completed),
		Achievements:       r.Achievements(),
		LevelProgress:      r.score % PointsPerLevel,
		ToNextLevel:        PointsPerLevel - r.score%PointsPerLevel,
		PlayTime:           max(now.Sub(r.startedAt), 0).Truncate(time.Second),
	}
	for i := len(r.achievements) - 1; i >= 0 && len(s.Recent) < recentAchievements; i-- {
		s.Recent = append(s.Recent, r.achievements[i])
	}
	return s
}

// LevelFraction returns progress through the current level in [0, 1).
func (s Snapshot) LevelFraction() float64 {
	return float64(s.LevelProgress) / PointsPerLevel
}

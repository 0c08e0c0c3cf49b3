package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded sessions, accuracy and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		repo := st.EventRepo()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet. Run `detective play` to open your first case.")
			return nil
		}

		fmt.Printf("%-17s %-9s %-6s %-4s %-7s %s\n", "STARTED", "DURATION", "PTS", "LV", "SOLVED", "ANSWERS")
		fmt.Println(strings.Repeat("─", 64))
		for _, s := range sessions {
			fmt.Printf("%-17s %-9s %-6d %-4d %-7d %d/%d\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				time.Duration(s.DurationSecs)*time.Second,
				s.Score, s.Level, s.SolvedCount, s.CorrectAnswers, s.Answers)
		}
		fmt.Printf("\n%d sessions\n\n", len(sessions))

		answerStats, err := repo.AnswerStats(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query answer stats: %w", err)
		}
		fmt.Printf("%-18s %-8s %-8s %-9s %s\n", "FAMILY", "ANSWERS", "CORRECT", "ACCURACY", "POINTS")
		fmt.Println(strings.Repeat("─", 56))
		for _, a := range answerStats {
			fmt.Printf("%-18s %-8d %-8d %-9s %d\n",
				familyName(a.Family), a.Total, a.Correct, accuracy(a.Correct, a.Total), a.Points)
		}

		unlocks, err := repo.QueryAchievements(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query achievements: %w", err)
		}
		fmt.Printf("\nAchievements unlocked: %d\n", len(unlocks))
		seen := make(map[string]bool)
		for _, u := range unlocks {
			if seen[u.Achievement] {
				continue
			}
			seen[u.Achievement] = true
			a := progress.Achievement(u.Achievement)
			fmt.Printf("  %s %-20s last at %s\n", a.Icon(), a.DisplayName(), u.Timestamp.Local().Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to show")
}

func familyName(f string) string {
	switch f {
	case store.FamilyAnalysis:
		return "Find the Error"
	case store.FamilyBias:
		return "Catch the Bias"
	case store.FamilyScenario:
		return "Scenario steps"
	}
	return f
}

func accuracy(correct, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(correct)/float64(total))
}

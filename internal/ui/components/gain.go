package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/ui/theme"
)

// RenderGain renders the points, level-up and achievement lines of a
// scoring event. It returns "" when nothing changed.
func RenderGain(g game.Gain, repeat bool) string {
	var lines []string

	switch {
	case g.PointsAwarded > 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("+%d points", g.PointsAwarded)))
	case repeat:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Already solved: no new points, but the streak counts."))
	}

	if g.LevelUp != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
			Render(fmt.Sprintf("▲ Level up! %d → %d", g.LevelUp.From, g.LevelUp.To)))
	}

	for _, a := range g.NewAchievements {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("%s Achievement unlocked: %s", a.Icon(), a.DisplayName())))
	}

	return strings.Join(lines, "\n")
}

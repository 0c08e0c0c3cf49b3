package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/ui/theme"
)

// DifficultyBadge renders the star rating colored by difficulty.
func DifficultyBadge(d cases.Difficulty) string {
	return theme.DifficultyStyle(int(d)).Render(d.Stars() + " " + d.DisplayName())
}

// CaseHeader renders the title line, badges and wrapped description of a
// catalog entry.
func CaseHeader(h cases.Header, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(h.Title))
	b.WriteString("\n")

	badges := DifficultyBadge(h.Difficulty)
	if h.Domain != "" {
		badges += lipgloss.NewStyle().Foreground(theme.TextDim).Render("   #" + h.Domain)
	}
	b.WriteString(badges)
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(h.Description))
	return b.String()
}

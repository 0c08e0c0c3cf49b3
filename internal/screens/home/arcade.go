package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/ui/theme"
)

// Block-letter title (same art as the welcome banner).
const arcadeTitleFull = ` ██████╗ ███████╗████████╗███████╗ ██████╗████████╗██╗██╗   ██╗███████╗
 ██╔══██╗██╔════╝╚══██╔══╝██╔════╝██╔════╝╚══██╔══╝██║██║   ██║██╔════╝
 ██║  ██║█████╗     ██║   █████╗  ██║        ██║   ██║██║   ██║█████╗
 ██║  ██║██╔══╝     ██║   ██╔══╝  ██║        ██║   ██║╚██╗ ██╔╝██╔══╝
 ██████╔╝███████╗   ██║   ███████╗╚██████╗   ██║   ██║ ╚████╔╝ ███████╗
 ╚═════╝ ╚══════╝   ╚═╝   ╚══════╝ ╚═════╝   ╚═╝   ╚═╝  ╚═══╝  ╚══════╝`

const arcadeTitleCompact = "D · E · T · E · C · T · I · V · E"

// arcadeTitleWidth is the column width of arcadeTitleFull.
const arcadeTitleWidth = 71

// newsItem is a bureau bulletin shown under the stats bar.
type newsItem struct {
	Date  string
	Title string
}

var newsItems = []newsItem{
	{Date: "2025-05-23", Title: "New A/B testing cases: multiple testing and practical significance"},
	{Date: "2025-05-20", Title: "Achievements updated for marketing, product and web analytics"},
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact || cw < arcadeTitleWidth {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders score, level and streak in a double-bordered box.
func renderStatsBar(snap progress.Snapshot, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			scoreStyle.Render(fmt.Sprintf("◆%d", snap.Score)),
			levelStyle.Render(fmt.Sprintf("Lv%d", snap.Level)),
			streakStyle.Render(fmt.Sprintf("🔥%d", snap.CurrentStreak)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			scoreStyle.Render(fmt.Sprintf("◆ %d POINTS", snap.Score)),
			levelStyle.Render(fmt.Sprintf("LEVEL %d", snap.Level)),
			streakStyle.Render(fmt.Sprintf("🔥 %d STREAK", snap.CurrentStreak)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderNews renders the latest bulletin as one dim line.
func renderNews(cw int) string {
	if len(newsItems) == 0 {
		return ""
	}
	n := newsItems[0]
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("📰 %s · %s", n.Date, n.Title))
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

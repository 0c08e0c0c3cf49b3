package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all arcade sections,
// so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	return min(max(w, 20), 72)
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeButtonWidth is the fixed width of menu buttons.
const ArcadeButtonWidth = 24

// ArcadeButton renders a fixed-width bordered button.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}

// ArcadeMenu renders the labels as a centered column of buttons. When compact
// is set, the buttons collapse to single text lines.
func ArcadeMenu(labels []string, selected, cw int, compact bool) string {
	var rows []string
	for i, label := range labels {
		if compact {
			if i == selected {
				rows = append(rows, lipgloss.NewStyle().
					Foreground(theme.BgDark).
					Background(theme.ArcadeYellow).
					Bold(true).
					Render(" ▸ "+label+" "))
			} else {
				rows = append(rows, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
			}
			continue
		}
		rows = append(rows, ArcadeButton(label, i == selected, ArcadeButtonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

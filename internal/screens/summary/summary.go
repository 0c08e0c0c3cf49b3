// Package summary shows the debrief of a completed decision scenario.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/scenario"
	"github.com/abhisek/detective/internal/screen"
	"github.com/abhisek/detective/internal/ui/layout"
	"github.com/abhisek/detective/internal/ui/theme"
)

// SummaryScreen displays the scenario summary.
type SummaryScreen struct {
	summary scenario.Summary
	restart func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. restart builds the screen that replays the
// scenario from the first step; it may be nil.
func New(summary scenario.Summary, restart func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: summary, restart: restart}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Case Debrief"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
	}
	if s.restart != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Replay"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			if s.restart == nil {
				return s, nil
			}
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Case closed: %s", sum.Title)))
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(outcomeColor(sum.Outcome)).Bold(true).
		Render(fmt.Sprintf("%s %s", sum.Outcome.Icon(), sum.Outcome.DisplayName())))
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Score: %d/%d        Correct decisions: %d of %d",
			sum.Score, sum.MaxScore, sum.Correct, len(sum.Steps))))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your decisions"))
	center(divider)
	b.WriteString("\n")

	cw := max(min(width-8, 70), 20)
	for i, st := range sum.Steps {
		mark := theme.Correct.Render("✓")
		if !st.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		step := fmt.Sprintf("%s %d. %s\n   → %s\n   %s", mark, i+1, st.Prompt, st.Choice,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(st.Feedback))
		center(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(step))
		b.WriteString("\n")
	}

	return b.String()
}

// outcomeColor returns the theme color for an outcome.
func outcomeColor(o scenario.Outcome) color.Color {
	switch o {
	case scenario.Flawless:
		return theme.ArcadeYellow
	case scenario.Strong:
		return theme.Success
	default:
		return theme.Accent
	}
}

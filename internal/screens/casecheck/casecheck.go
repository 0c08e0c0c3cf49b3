// Package casecheck is the screen for a single-answer "find the error" case.
package casecheck

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/screen"
	"github.com/abhisek/detective/internal/ui/components"
	"github.com/abhisek/detective/internal/ui/layout"
	"github.com/abhisek/detective/internal/ui/theme"
)

// CaseScreen shows an analysis case, takes one answer and reveals the result.
type CaseScreen struct {
	sess   *game.Session
	c      cases.AnalysisCase
	choice components.MultiChoice
	result *game.CheckResult
	errMsg string
}

var _ screen.Screen = (*CaseScreen)(nil)
var _ screen.KeyHintProvider = (*CaseScreen)(nil)

// New creates a CaseScreen for c.
func New(sess *game.Session, c cases.AnalysisCase) *CaseScreen {
	return &CaseScreen{
		sess:   sess,
		c:      c,
		choice: components.NewMultiChoice("Where is the error?", c.Options),
	}
}

func (s *CaseScreen) Init() tea.Cmd {
	return nil
}

func (s *CaseScreen) Title() string {
	return cases.FamilyAnalysis.DisplayName()
}

func (s *CaseScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.result == nil:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter/A-" + components.OptionLabel(len(s.c.Options)-1), Description: "Answer"},
			{Key: "Esc", Description: "Back"},
		}
	case s.result.Correct:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to cases"},
		}
	default:
		return []layout.KeyHint{
			{Key: "r", Description: "Try again"},
			{Key: "Enter", Description: "Back to cases"},
		}
	}
}

func (s *CaseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.result != nil {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			if !s.result.Correct {
				s.result = nil
				s.choice.Reset()
			}
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Submitted {
		return s, nil
	}

	res, err := s.sess.Check(s.c, s.choice.ChosenIndex)
	if err != nil {
		s.errMsg = err.Error()
		s.choice.Reset()
		return s, nil
	}
	s.errMsg = ""
	s.result = &res
	if res.Correct {
		s.choice.Reveal(res.CorrectChoice)
	} else {
		s.choice.Reveal(-1)
	}
	return s, nil
}

func (s *CaseScreen) View(width, height int) string {
	cw := min(width-8, 76)
	s.choice.SetWidth(cw)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.CaseHeader(s.c.Header, cw))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n")
	}

	if s.result != nil {
		b.WriteString("\n")
		b.WriteString(renderResult(*s.result, cw))
	}

	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String())
}

func renderResult(res game.CheckResult, width int) string {
	var b strings.Builder
	if res.Correct {
		b.WriteString(theme.Correct.Render("✓ Case solved!"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(res.Explanation))
		if gain := components.RenderGain(res.Gain, res.Repeat); gain != "" {
			b.WriteString("\n\n")
			b.WriteString(gain)
		}
		return b.String()
	}

	b.WriteString(theme.Incorrect.Render("✗ That's not the flaw."))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(width).Render(res.Hint))
	return b.String()
}

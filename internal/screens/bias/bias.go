// Package bias runs an open-ended "catch the bias" investigation.
package bias

import (
	"fmt"
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

type phase int

const (
	phaseQuestions phase = iota // answering the open questions
	phaseReady                  // all answered, revelation on demand
	phaseRevealed               // revelation shown, awaiting self-report
	phaseDone                   // self-report recorded
)

// BiasScreen asks the case questions, collects free-text notes, then shows
// the revelation and records whether the player saw the bias.
type BiasScreen struct {
	sess       *game.Session
	c          cases.BiasCase
	phase      phase
	question   int
	notes      []string
	input      components.TextInput
	hints      []string
	revelation string
	verdict    components.Menu
	result     *game.BiasResult
	errMsg     string
}

var _ screen.Screen = (*BiasScreen)(nil)
var _ screen.KeyHintProvider = (*BiasScreen)(nil)

// New creates a BiasScreen for c.
func New(sess *game.Session, c cases.BiasCase) *BiasScreen {
	s := &BiasScreen{
		sess:  sess,
		c:     c,
		input: components.NewTextInput("Your reasoning...", 200),
	}
	s.verdict = components.NewMenu([]components.MenuItem{
		{Label: "I see the bias now", Action: func() tea.Cmd { return s.report(true) }},
		{Label: "Not yet, I'll come back to it", Action: func() tea.Cmd { return s.report(false) }},
	})
	return s
}

func (s *BiasScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *BiasScreen) Title() string {
	return cases.FamilyBias.DisplayName()
}

func (s *BiasScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuestions:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Tab", Description: "Hint"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseReady:
		return []layout.KeyHint{
			{Key: "v", Description: "Reveal the bias"},
			{Key: "h", Description: "Hint"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseRevealed:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Confirm"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to cases"},
		}
	}
}

func (s *BiasScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.phase == phaseQuestions {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch s.phase {
	case phaseQuestions:
		switch kmsg.String() {
		case "enter":
			s.notes = append(s.notes, s.input.Value())
			s.input.Reset()
			s.question++
			if s.question >= len(s.c.Questions) {
				s.phase = phaseReady
			}
			return s, nil
		case "tab":
			s.nextHint()
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseReady:
		switch kmsg.String() {
		case "v", "enter":
			s.revelation = game.RevealBias(s.c)
			s.phase = phaseRevealed
		case "h", "tab":
			s.nextHint()
		}
		return s, nil

	case phaseRevealed:
		var cmd tea.Cmd
		s.verdict, cmd = s.verdict.Update(msg)
		return s, cmd

	default:
		if kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *BiasScreen) nextHint() {
	if hint, ok := game.NextHint(s.c, len(s.hints)); ok {
		s.hints = append(s.hints, hint)
	}
}

func (s *BiasScreen) report(understood bool) tea.Cmd {
	res, err := s.sess.CompleteBias(s.c, understood)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.result = &res
	s.phase = phaseDone
	return nil
}

func (s *BiasScreen) View(width, height int) string {
	cw := min(width-8, 76)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.CaseHeader(s.c.Header, cw))
	b.WriteString("\n\n")

	for i, q := range s.c.Questions {
		if i > s.question {
			break
		}
		label := fmt.Sprintf("Q%d. ", i+1)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(label + q))
		b.WriteString("\n")
		switch {
		case i < len(s.notes):
			note := s.notes[i]
			if note == "" {
				note = "(no notes)"
			}
			b.WriteString(dim.Width(cw).Render("   " + note))
			b.WriteString("\n")
		case s.phase == phaseQuestions:
			b.WriteString("   " + s.input.View())
			b.WriteString("\n")
		}
	}

	if len(s.hints) > 0 {
		b.WriteString("\n")
		for i, h := range s.hints {
			b.WriteString(theme.Hint.Width(cw).Render(fmt.Sprintf("💡 Hint %d: %s", i+1, h)))
			b.WriteString("\n")
		}
		if len(s.hints) == len(s.c.Hints) {
			b.WriteString(dim.Render("   No more hints."))
			b.WriteString("\n")
		}
	}

	if s.phase == phaseReady {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("Ready? Press v to reveal the bias."))
		b.WriteString("\n")
	}

	if s.revelation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Foreground(theme.Text).
			Width(cw).
			Padding(0, 1).
			Render("🔎 " + s.revelation))
		b.WriteString("\n\n")
	}

	if s.phase == phaseRevealed {
		b.WriteString(s.verdict.View())
	}

	if s.result != nil {
		b.WriteString(renderResult(*s.result))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String())
}

func renderResult(res game.BiasResult) string {
	if !res.Understood {
		return theme.Hint.Render("No problem. The case stays open; come back any time.")
	}
	out := theme.Correct.Render("✓ Bias exposed!")
	if gain := components.RenderGain(res.Gain, res.Repeat); gain != "" {
		out += "\n\n" + gain
	}
	return out
}

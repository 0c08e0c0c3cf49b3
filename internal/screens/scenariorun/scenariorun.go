// Package scenariorun walks the player through a multi-step decision scenario.
package scenariorun

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/scenario"
	"github.com/abhisek/detective/internal/screen"
	"github.com/abhisek/detective/internal/screens/summary"
	"github.com/abhisek/detective/internal/ui/components"
	"github.com/abhisek/detective/internal/ui/layout"
	"github.com/abhisek/detective/internal/ui/theme"
)

// autoAdvanceMsg fires after the feedback pause of the given step.
type autoAdvanceMsg struct {
	scenarioID string
	step       int
}

// RunScreen plays one scenario run. Leaving the screen keeps the run in the
// session, so reopening the scenario resumes at the same step.
type RunScreen struct {
	sess        *game.Session
	sc          cases.Scenario
	run         *scenario.Run
	autoAdvance time.Duration
	choice      components.MultiChoice
	last        *game.AdvanceResult // answered step awaiting acknowledgement
	errMsg      string
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)

// New creates a RunScreen for sc. A non-zero autoAdvance moves on from the
// step feedback by itself after that pause.
func New(sess *game.Session, sc cases.Scenario, autoAdvance time.Duration) *RunScreen {
	s := &RunScreen{
		sess:        sess,
		sc:          sc,
		run:         sess.Run(sc),
		autoAdvance: autoAdvance,
	}
	s.resetChoice()
	return s
}

func (s *RunScreen) resetChoice() {
	if s.run.State() == scenario.Completed {
		return
	}
	step := s.sc.Steps[s.run.CurrentStep()]
	s.choice = components.NewMultiChoice(step.Prompt, step.Options)
}

// Init jumps straight to the debrief when the run was already completed.
func (s *RunScreen) Init() tea.Cmd {
	if sum, ok := s.run.Summary(s.sc); ok {
		return s.showSummary(sum)
	}
	return nil
}

func (s *RunScreen) Title() string {
	return s.sc.Title
}

func (s *RunScreen) KeyHints() []layout.KeyHint {
	if s.last != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Pause"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Decide"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Pause"},
	}
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case autoAdvanceMsg:
		if s.last != nil && msg.scenarioID == s.sc.ID && msg.step == s.last.Step {
			return s, s.next()
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "R" {
			s.restart()
			return s, nil
		}
		if s.last != nil {
			switch msg.String() {
			case "enter", "space":
				return s, s.next()
			}
			return s, nil
		}
		return s, s.answer(msg)
	}
	return s, nil
}

func (s *RunScreen) answer(msg tea.Msg) tea.Cmd {
	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Submitted {
		return nil
	}

	res, err := s.sess.Advance(s.sc, s.choice.ChosenIndex)
	if err != nil {
		s.errMsg = err.Error()
		s.choice.Reset()
		return nil
	}
	s.errMsg = ""
	s.last = &res
	s.choice.Reveal(res.CorrectChoice)

	if s.autoAdvance <= 0 {
		return nil
	}
	id, step := s.sc.ID, res.Step
	return tea.Tick(s.autoAdvance, func(time.Time) tea.Msg {
		return autoAdvanceMsg{scenarioID: id, step: step}
	})
}

// next leaves the feedback of the last step: on to the following step, or
// to the debrief once the run is complete.
func (s *RunScreen) next() tea.Cmd {
	last := s.last
	s.last = nil
	if last.Summary != nil {
		return s.showSummary(*last.Summary)
	}
	s.resetChoice()
	return nil
}

func (s *RunScreen) restart() {
	s.run = s.sess.RestartScenario(s.sc)
	s.last = nil
	s.errMsg = ""
	s.resetChoice()
}

func (s *RunScreen) showSummary(sum scenario.Summary) tea.Cmd {
	sess, sc, pause := s.sess, s.sc, s.autoAdvance
	debrief := summary.New(sum, func() screen.Screen {
		sess.RestartScenario(sc)
		return New(sess, sc, pause)
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: debrief} }
}

func (s *RunScreen) View(width, height int) string {
	cw := min(width-8, 76)
	s.choice.SetWidth(cw)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.CaseHeader(s.sc.Header, cw))
	b.WriteString("\n\n")

	total := s.run.TotalSteps()
	shown := min(s.run.CurrentStep()+1, total)
	if s.last != nil {
		shown = s.last.Step + 1
	}
	bar := components.NewProgressBar(fmt.Sprintf("Step %d of %d", shown, total),
		float64(s.run.CurrentStep())/float64(total), cw)
	bar.Caption = fmt.Sprintf("%d pts", s.run.Score())
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if s.run.State() == scenario.InProgress || s.last != nil {
		b.WriteString(s.choice.View())
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n")
	}

	if s.last != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(*s.last, cw))
		b.WriteString("\n\n")
		prompt := "Enter for the next decision"
		if s.last.Summary != nil {
			prompt = "Enter for the debrief"
		}
		b.WriteString(theme.Hint.Render(prompt))
	}

	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String())
}

func renderFeedback(res game.AdvanceResult, width int) string {
	var b strings.Builder
	if res.Correct {
		b.WriteString(theme.Correct.Render("✓ Sound decision"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Risky call"))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(res.Feedback))
	if gain := components.RenderGain(res.Gain, false); gain != "" {
		b.WriteString("\n\n")
		b.WriteString(gain)
	}
	return b.String()
}

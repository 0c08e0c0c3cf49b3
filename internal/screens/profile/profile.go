// Package profile shows the detective's progression and achievements.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/screen"
	"github.com/abhisek/detective/internal/screens/history"
	"github.com/abhisek/detective/internal/store"
	"github.com/abhisek/detective/internal/ui/components"
	"github.com/abhisek/detective/internal/ui/layout"
	"github.com/abhisek/detective/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats []store.AnswerStat
	Err   error
}

// ProfileScreen renders the progression snapshot of the session.
type ProfileScreen struct {
	sess         *game.Session
	stats        []store.AnswerStat
	statsErr     string
	confirmReset bool
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(sess *game.Session) *ProfileScreen {
	return &ProfileScreen{sess: sess}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.loadStats()
}

func (s *ProfileScreen) loadStats() tea.Cmd {
	events := s.sess.History()
	if events == nil {
		return nil
	}
	id := s.sess.ID()
	return func() tea.Msg {
		stats, err := events.AnswerStats(context.Background(), store.QueryOpts{SessionID: id})
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile & Stats"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "y", Description: "Yes, start over"},
			{Key: "n", Description: "Keep progress"},
		}
	}
	hints := []layout.KeyHint{}
	if s.sess.History() != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "Case log"})
	}
	return append(hints,
		layout.KeyHint{Key: "x", Description: "Reset progress"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.statsErr = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.statsErr = ""
		}
		return s, nil

	case tea.KeyMsg:
		if s.confirmReset {
			s.confirmReset = false
			if msg.String() == "y" {
				s.sess.ResetProgression()
				s.stats = nil
				return s, s.loadStats()
			}
			return s, nil
		}
		switch msg.String() {
		case "x":
			s.confirmReset = true
		case "h":
			if events := s.sess.History(); events != nil {
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: history.New(events)} }
			}
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	snap := s.sess.Snapshot()
	cw := min(width-8, 72)

	var sections []string
	sections = append(sections, s.renderRank(snap, cw))
	sections = append(sections, renderAchievements(snap, cw))
	if table := s.renderAnswers(); table != "" {
		sections = append(sections, table)
	}
	if s.confirmReset {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render("Reset score, level, streaks and achievements? (y/n)"))
	}

	return lipgloss.NewStyle().PaddingLeft(4).Render("\n" + strings.Join(sections, "\n\n"))
}

func (s *ProfileScreen) renderRank(snap progress.Snapshot, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	row := func(k, v string) string {
		return label.Width(18).Render(k) + value.Render(v)
	}

	analysis, bias, scenarios := s.sess.Repo().Counts()

	bar := components.NewProgressBar(fmt.Sprintf("Level %d", snap.Level), snap.LevelFraction(), cw)
	bar.Caption = fmt.Sprintf("%d pts to level %d", snap.ToNextLevel, snap.Level+1)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("Detective profile"),
		"",
		bar.View(),
		"",
		row("Score", fmt.Sprintf("%d", snap.Score)),
		row("Cases solved", fmt.Sprintf("%d of %d", snap.SolvedCount, analysis+bias)),
		row("Scenarios closed", fmt.Sprintf("%d of %d", snap.CompletedScenarios, scenarios)),
		row("Current streak", fmt.Sprintf("%d", snap.CurrentStreak)),
		row("Best streak", fmt.Sprintf("%d", snap.BestStreak)),
		row("Time on the case", formatDuration(snap.PlayTime)),
	}
	return strings.Join(lines, "\n")
}

func renderAchievements(snap progress.Snapshot, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("Achievements"))
	b.WriteString("\n\n")

	unlocked := make(map[progress.Achievement]bool, len(snap.Achievements))
	for _, a := range snap.Achievements {
		unlocked[a] = true
	}
	for _, a := range progress.AllAchievements() {
		icon, style := a.Icon(), lipgloss.NewStyle().Foreground(theme.ArcadeYellow)
		if !unlocked[a] {
			icon, style = "🔒", lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s  %-18s %s", icon, a.DisplayName(), a.Description())))
		b.WriteString("\n")
	}

	if len(snap.Recent) > 0 {
		names := make([]string, len(snap.Recent))
		for i, a := range snap.Recent {
			names[i] = a.DisplayName()
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(cw).Render("Latest: " + strings.Join(names, ", ")))
	}
	return b.String()
}

func (s *ProfileScreen) renderAnswers() string {
	if s.statsErr != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("History unavailable: " + s.statsErr)
	}
	if len(s.stats) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("This session"))
	b.WriteString("\n\n")
	for _, st := range s.stats {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(
			"%-20s %3d answered  %3d correct  %4d pts", familyLabel(st.Family), st.Total, st.Correct, st.Points)))
		b.WriteString("\n")
	}
	return b.String()
}

func familyLabel(f string) string {
	switch f {
	case store.FamilyAnalysis:
		return cases.FamilyAnalysis.DisplayName()
	case store.FamilyBias:
		return cases.FamilyBias.DisplayName()
	case store.FamilyScenario:
		return "Decision Scenarios"
	default:
		return f
	}
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Package history lists past play sessions from the event store.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/screen"
	"github.com/abhisek/detective/internal/store"
	"github.com/abhisek/detective/internal/ui/layout"
	"github.com/abhisek/detective/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions     []store.SessionSummaryRecord
	Achievements map[string][]store.AchievementRecord // sessionID → unlocks
	Err          error
}

// HistoryScreen displays past sessions and their achievement unlocks.
type HistoryScreen struct {
	eventRepo    store.EventRepo
	sessions     []store.SessionSummaryRecord
	achievements map[string][]store.AchievementRecord
	selected     int
	expanded     map[int]bool
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := s.eventRepo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		bySession := make(map[string][]store.AchievementRecord)
		unlocks, err := s.eventRepo.QueryAchievements(ctx, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Achievements: bySession}
		}
		for _, a := range unlocks {
			bySession[a.SessionID] = append(bySession[a.SessionID], a)
		}

		return historyLoadedMsg{Sessions: sessions, Achievements: bySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "Case Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.achievements = msg.Achievements
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Opening the case log...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No closed sessions yet. Solve a few cases first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Timestamp.Format("Jan 02, 2006")
		durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

		var accuracy float64
		if sess.Answers > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.Answers) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d pts  Lv %d  %d answers  %.0f%% correct",
			prefix, dateStr, durationStr, sess.Score, sess.Level, sess.Answers, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(sess, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(sess store.SessionSummaryRecord, width int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(
		fmt.Sprintf("    %d cases solved · best streak %d", sess.SolvedCount, sess.BestStreak))))
	b.WriteString("\n")

	unlocks := s.achievements[sess.SessionID]
	if len(unlocks) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Italic(true).Render("    No achievements this session")))
		b.WriteString("\n")
		return b.String()
	}
	for _, u := range unlocks {
		a := progress.Achievement(u.Achievement)
		line := fmt.Sprintf("    %s %s at %d pts", a.Icon(), a.DisplayName(), u.Score)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

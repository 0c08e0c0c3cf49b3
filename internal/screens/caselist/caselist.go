// Package caselist lists the cases of one family, or the decision
// scenarios, with a difficulty filter and title search.
package caselist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/screen"
	"github.com/abhisek/detective/internal/screens/bias"
	"github.com/abhisek/detective/internal/screens/casecheck"
	"github.com/abhisek/detective/internal/screens/scenariorun"
	"github.com/abhisek/detective/internal/ui/components"
	"github.com/abhisek/detective/internal/ui/layout"
	"github.com/abhisek/detective/internal/ui/theme"
)

// Kind selects what the list shows.
type Kind int

const (
	KindAnalysis Kind = iota
	KindBias
	KindScenarios
)

func (k Kind) title() string {
	switch k {
	case KindAnalysis:
		return cases.FamilyAnalysis.DisplayName()
	case KindBias:
		return cases.FamilyBias.DisplayName()
	default:
		return "Decision Scenarios"
	}
}

// entry is one row of the list.
type entry struct {
	header cases.Header
	status string
	open   func() screen.Screen
}

func (e entry) Info() cases.Header { return e.header }

// ListScreen lists catalog entries of one kind.
type ListScreen struct {
	sess        *game.Session
	kind        Kind
	autoAdvance time.Duration
	filter      *cases.Difficulty
	entries     []entry
	menu        components.Menu
	searching   bool
	search      components.TextInput
	notice      string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)
var _ screen.InputCapturer = (*ListScreen)(nil)
var _ router.Refresher = (*ListScreen)(nil)

// New creates a ListScreen. autoAdvance is handed to scenario runs.
func New(sess *game.Session, kind Kind, autoAdvance time.Duration) *ListScreen {
	s := &ListScreen{
		sess:        sess,
		kind:        kind,
		autoAdvance: autoAdvance,
		search:      components.NewTextInput("Exact case title", 80),
	}
	s.load()
	return s
}

func (s *ListScreen) Init() tea.Cmd {
	return nil
}

// Refresh rebuilds the status column after returning from a case.
func (s *ListScreen) Refresh() tea.Cmd {
	selected := s.menu.Selected
	s.load()
	if selected < len(s.menu.Items) {
		s.menu.Selected = selected
	}
	return nil
}

func (s *ListScreen) Title() string {
	return s.kind.title()
}

func (s *ListScreen) CapturingInput() bool {
	return s.searching
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "f", Description: "Difficulty"},
		{Key: "/", Description: "Find by title"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) load() {
	repo := s.sess.Repo()
	rec := s.sess.Record()
	s.entries = nil

	switch s.kind {
	case KindScenarios:
		for _, sc := range repo.ScenariosByDifficulty(s.filter) {
			status := ""
			if rec.IsScenarioCompleted(sc.ID) {
				status = "✓ closed"
			} else if run, ok := s.sess.ExistingRun(sc.ID); ok && run.CurrentStep() > 0 {
				status = fmt.Sprintf("▶ step %d/%d", run.CurrentStep()+1, run.TotalSteps())
			}
			s.entries = append(s.entries, entry{
				header: sc.Header,
				status: status,
				open:   func() screen.Screen { return scenariorun.New(s.sess, sc, s.autoAdvance) },
			})
		}
	default:
		family := cases.FamilyAnalysis
		if s.kind == KindBias {
			family = cases.FamilyBias
		}
		for _, c := range repo.Filter(family, s.filter) {
			status := ""
			if rec.IsSolved(c.Info().ID) {
				status = "✓ solved"
			}
			s.entries = append(s.entries, entry{
				header: c.Info(),
				status: status,
				open:   func() screen.Screen { return Open(s.sess, c, s.autoAdvance) },
			})
		}
	}

	items := make([]components.MenuItem, len(s.entries))
	for i, e := range s.entries {
		items[i] = components.MenuItem{
			Label:  e.header.Title,
			Detail: detail(e),
			Action: pushAction(e.open),
		}
	}
	s.menu = components.NewMenu(items)
}

// Open returns the screen that plays c.
func Open(sess *game.Session, c cases.Case, autoAdvance time.Duration) screen.Screen {
	switch c := c.(type) {
	case cases.BiasCase:
		return bias.New(sess, c)
	case cases.AnalysisCase:
		return casecheck.New(sess, c)
	}
	panic(fmt.Sprintf("caselist: unexpected case type %T", c))
}

func pushAction(open func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: open()} }
	}
}

func detail(e entry) string {
	parts := []string{e.header.Difficulty.Stars()}
	if e.header.Domain != "" {
		parts = append(parts, "#"+e.header.Domain)
	}
	if e.status != "" {
		parts = append(parts, e.status)
	}
	return strings.Join(parts, "  ")
}

// nextFilter cycles All → Novice → Analyst → Expert → All.
func nextFilter(f *cases.Difficulty) *cases.Difficulty {
	var next cases.Difficulty
	switch {
	case f == nil:
		next = cases.Novice
	case *f == cases.Expert:
		return nil
	default:
		next = *f + 1
	}
	return &next
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.searching {
		return s, s.updateSearch(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "f":
			s.filter = nextFilter(s.filter)
			s.notice = ""
			s.load()
			return s, nil
		case "/":
			s.searching = true
			s.notice = ""
			s.search.Reset()
			return s, s.search.Init()
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ListScreen) updateSearch(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.searching = false
			return nil
		case "enter":
			s.searching = false
			found, err := cases.FindByTitle(s.entries, s.search.Value())
			if err != nil {
				s.notice = searchNotice(err)
				return nil
			}
			return pushAction(found.open)()
		}
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return cmd
}

func searchNotice(err error) string {
	var nf *cases.TitleNotFoundError
	if !errors.As(err, &nf) {
		return err.Error()
	}
	if len(nf.Suggestions) == 0 {
		return fmt.Sprintf("No case titled %q in this list.", nf.Title)
	}
	return fmt.Sprintf("No case titled %q. Did you mean %q?", nf.Title, nf.Suggestions[0])
}

func (s *ListScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	filterLabel := "All difficulties"
	if s.filter != nil {
		filterLabel = s.filter.DisplayName() + " only"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(s.kind.title()))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("   %s · %d entries", filterLabel, len(s.entries))))
	b.WriteString("\n\n")

	if len(s.entries) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No cases at this difficulty. Press f to broaden the filter."))
		b.WriteString("\n")
	} else {
		b.WriteString(s.menu.View())
	}

	if s.searching {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("Find: "))
		b.WriteString(s.search.View())
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String())
}

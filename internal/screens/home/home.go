// Package home is the main menu of the game.
package home

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/screen"
	"github.com/abhisek/detective/internal/screens/caselist"
	"github.com/abhisek/detective/internal/screens/profile"
	"github.com/abhisek/detective/internal/ui/components"
	"github.com/abhisek/detective/internal/ui/layout"
)

// Deps are the collaborators of the home screen.
type Deps struct {
	Session     *game.Session
	Rand        *rand.Rand
	AutoAdvance time.Duration
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	h := &HomeScreen{deps: deps}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}
	list := func(kind caselist.Kind) func() screen.Screen {
		return func() screen.Screen { return caselist.New(deps.Session, kind, deps.AutoAdvance) }
	}

	h.menuLabels = []string{"FIND THE ERROR", "DECISION SCENARIOS", "CATCH THE BIAS", "RANDOM CASE", "PROFILE & STATS", "EXIT"}
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: push(list(caselist.KindAnalysis))},
		{Label: h.menuLabels[1], Action: push(list(caselist.KindScenarios))},
		{Label: h.menuLabels[2], Action: push(list(caselist.KindBias))},
		{Label: h.menuLabels[3], Action: h.randomCase},
		{Label: h.menuLabels[4], Action: push(func() screen.Screen { return profile.New(deps.Session) })},
		{Label: h.menuLabels[5], Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

// randomCase opens a case drawn from both families.
func (h *HomeScreen) randomCase() tea.Cmd {
	c, ok := h.deps.Session.Repo().Random(h.deps.Rand, "")
	if !ok {
		return nil
	}
	next := caselist.Open(h.deps.Session, c, h.deps.AutoAdvance)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)
	snap := h.deps.Session.Snapshot()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(snap), cw))
	}
	sections = append(sections, renderStatsBar(snap, cw, compact))
	if !compact {
		sections = append(sections, renderNews(cw))
	}
	sections = append(sections, components.ArcadeMenu(h.menuLabels, h.menu.Selected, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/scenario"
	"github.com/abhisek/detective/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "stub" }

func testSummary() scenario.Summary {
	return scenario.Summary{
		ScenarioID: "scenario_churn_spike",
		Title:      "The Churn Spike",
		Score:      30,
		MaxScore:   40,
		Correct:    3,
		Outcome:    scenario.Strong,
		Steps: []scenario.StepReview{
			{Prompt: "First?", Choice: "Check the data", Correct: true, Feedback: "Good."},
			{Prompt: "Second?", Choice: "Panic", Correct: false, Feedback: "No."},
			{Prompt: "Third?", Choice: "Segment", Correct: true, Feedback: "Yes."},
			{Prompt: "Fourth?", Choice: "Report", Correct: true, Feedback: "Done."},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Case Debrief" {
		t.Errorf("Title = %q, want %q", s.Title(), "Case Debrief")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), nil)
	view := s.View(100, 30)
	for _, want := range []string{"The Churn Spike", "Strong performance", "30/40", "Panic"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Replay(t *testing.T) {
	calls := 0
	s := New(testSummary(), func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r (replay)")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if calls != 1 {
		t.Errorf("restart called %d times, want 1", calls)
	}
}

func TestSummaryScreen_ReplayWithoutRestartIsNoop(t *testing.T) {
	s := New(testSummary(), nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("expected no command without a restart factory")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if got := len(New(testSummary(), nil).KeyHints()); got != 2 {
		t.Errorf("KeyHints length = %d, want 2", got)
	}
	if got := len(New(testSummary(), func() screen.Screen { return &stubScreen{} }).KeyHints()); got != 3 {
		t.Errorf("KeyHints length with replay = %d, want 3", got)
	}
}

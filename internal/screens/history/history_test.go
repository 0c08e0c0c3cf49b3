package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/router"
	"github.com/abhisek/detective/internal/store"
)

// fakeRepo serves canned history.
type fakeRepo struct {
	store.EventRepo
	sessions     []store.SessionSummaryRecord
	achievements []store.AchievementRecord
	err          error
}

func (f *fakeRepo) QuerySessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return f.sessions, f.err
}

func (f *fakeRepo) QueryAchievements(context.Context, store.QueryOpts) ([]store.AchievementRecord, error) {
	return f.achievements, nil
}

func loaded(t *testing.T, repo store.EventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &fakeRepo{})
	if !strings.Contains(s.View(100, 30), "No closed sessions") {
		t.Error("expected the empty message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &fakeRepo{err: errors.New("disk gone")})
	if !strings.Contains(s.View(100, 30), "disk gone") {
		t.Error("expected the error in the view")
	}
}

func TestHistoryScreen_ListAndExpand(t *testing.T) {
	repo := &fakeRepo{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "aaaa1111", Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Score: 40, Level: 1, Answers: 5, CorrectAnswers: 4, DurationSecs: 125},
			{SessionID: "bbbb2222", Timestamp: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), Score: 10, Level: 1, Answers: 2, CorrectAnswers: 1},
		},
		achievements: []store.AchievementRecord{
			{SessionID: "aaaa1111", Achievement: string(progress.FirstSteps), Score: 10},
		},
	}
	s := loaded(t, repo)

	view := s.View(120, 30)
	if !strings.Contains(view, "80% correct") || !strings.Contains(view, "2:05") {
		t.Errorf("unexpected session line:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "First Steps") {
		t.Error("expected the achievement after expanding")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected moved past the end: %d", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "No achievements this session") {
		t.Error("expected the no-achievements line for the second session")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(&fakeRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

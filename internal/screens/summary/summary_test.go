package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"pharmlet/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Title:      "Drug Practice",
		Score:      8,
		Total:      10,
		Accuracy:   0.8,
		BestStreak: 5,
		Duration:   4 * time.Minute,
		Marked:     1,
		Missed:     2,
		Hot:        true,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), Actions{})
	if s.Title() != "Quiz Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), Actions{})
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
}

func TestSummaryScreen_CursorNavigation(t *testing.T) {
	s := New(testSummary(), Actions{})

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.cursor != 1 {
		t.Errorf("cursor = %d after right, want 1", s.cursor)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want clamped at 0", s.cursor)
	}
}

func TestSummaryScreen_EnterRoutesToAction(t *testing.T) {
	called := false
	actions := Actions{
		Review: func() tea.Cmd {
			called = true
			return nil
		},
	}
	s := New(testSummary(), actions)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !called {
		t.Error("expected the review action on Enter at cursor 0")
	}
}

func TestSummaryScreen_EscGoesHome(t *testing.T) {
	s := New(testSummary(), Actions{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop to home)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary(), Actions{})
	if hints := s.KeyHints(); len(hints) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(hints))
	}
}

package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"pharmlet/internal/router"
	"pharmlet/internal/screen"
	"pharmlet/internal/store"
	"pharmlet/internal/ui/layout"
	"pharmlet/internal/ui/theme"
)

type historyLoadedMsg struct {
	Entries []store.HistoryEntry
	Queue   int
	Err     error
}

// HistoryScreen lists recent completed quiz runs.
type HistoryScreen struct {
	repo     store.SessionRepo
	entries  []store.HistoryEntry
	queue    int
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		entries, err := repo.RecentHistory(ctx, store.HistoryCap)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		queue, _ := repo.ReviewQueue(ctx, 0)
		return historyLoadedMsg{Entries: entries, Queue: len(queue)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
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
			s.entries = msg.Entries
			s.queue = msg.Queue
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
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
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
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.queue > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).
				Render(fmt.Sprintf("%d missed questions waiting in the review queue", s.queue))))
		b.WriteString("\n\n")
	}

	for i, e := range s.entries {
		dateStr := e.FinishedAt.Format("Jan 02, 2006")
		mins := e.ElapsedSecs / 60
		secs := e.ElapsedSecs % 60

		var accuracy float64
		if e.Total > 0 {
			accuracy = float64(e.Score) / float64(e.Total) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s · %s  %d/%d  %.0f%%  streak %d  %d:%02d",
			prefix, dateStr, e.QuizID, e.Mode, e.Score, e.Total, accuracy, e.BestStreak, mins, secs)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

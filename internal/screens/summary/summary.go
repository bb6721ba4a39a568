package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"pharmlet/internal/router"
	"pharmlet/internal/screen"
	"pharmlet/internal/session"
	"pharmlet/internal/ui/components"
	"pharmlet/internal/ui/layout"
	"pharmlet/internal/ui/theme"
)

// Actions route summary choices back to the quiz screen underneath.
type Actions struct {
	Review  func() tea.Cmd
	Restart func() tea.Cmd
}

// SummaryScreen displays the end-of-quiz results.
type SummaryScreen struct {
	summary *session.Summary
	actions Actions
	choices []string
	cursor  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(sum *session.Summary, actions Actions) *SummaryScreen {
	return &SummaryScreen{
		summary: sum,
		actions: actions,
		choices: []string{"Review answers", "Play again", "Home"},
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		return s, s.choose()
	case "esc":
		return s, goHome()
	}
	return s, nil
}

func (s *SummaryScreen) choose() tea.Cmd {
	switch s.cursor {
	case 0:
		if s.actions.Review != nil {
			return s.actions.Review()
		}
	case 1:
		if s.actions.Restart != nil {
			return s.actions.Restart()
		}
	case 2:
		return goHome()
	}
	return nil
}

// goHome pops both the summary and the quiz screen beneath it.
func goHome() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return router.PopScreenMsg{} },
	)
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Quiz complete!"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(sum.Title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	statsLine := fmt.Sprintf("Score: %d/%d        Accuracy: %.0f%%        Time: %d:%02d",
		sum.Score, sum.Total, sum.Accuracy*100, mins, secs)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")

	extras := fmt.Sprintf("Best streak: %d", sum.BestStreak)
	if sum.Marked > 0 {
		extras += fmt.Sprintf("        Marked: %d", sum.Marked)
	}
	if sum.Missed > 0 {
		extras += fmt.Sprintf("        Missed: %d", sum.Missed)
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(extras))
	b.WriteString("\n\n")

	if sum.Hot {
		b.WriteString(center.Foreground(theme.Flame).Bold(true).Render("🔥 Hot streak!"))
		b.WriteString("\n\n")
	}

	bar := components.NewProgressBar("", sum.Accuracy, true, minInt(width-16, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Action pills.
	var pills []string
	for i, label := range s.choices {
		pills = append(pills, components.PillButton(label, i == s.cursor, 20))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, pills...)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))

	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

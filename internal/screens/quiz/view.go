package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"pharmlet/internal/ui/components"
	"pharmlet/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.state.Review {
		return s.renderReview(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question display.
func (s *QuizScreen) renderQuestion(width int) string {
	state := s.state
	q, qs := state.Current()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	// Progress and timer line.
	mins := state.ElapsedSeconds / 60
	secs := state.ElapsedSeconds % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", state.Index+1, len(state.Questions)))

	marked := ""
	if qs.Marked {
		marked = theme.Marked.Render("⚑ marked") + "  "
	}
	infoRight := marked + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("⏱ %d:%02d", mins, secs))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(state.Answered())/float64(len(state.Questions)), false, width-8)
	b.WriteString("    " + bar.View())
	b.WriteString("\n\n")

	// Question text (centered).
	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	// Input area.
	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Select (1-4) or use arrows + Enter"))
	} else {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
		b.WriteString(answerLine)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(`Type "reveal" to give up`))
	}

	if s.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Italic(true).
			Render("Hint: " + s.hint))
	}

	return b.String()
}

// renderFeedback renders the post-answer overlay.
func (s *QuizScreen) renderFeedback(width int) string {
	state := s.state
	q, qs := state.Current()

	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case qs != nil && qs.Revealed:
		b.WriteString(center.Foreground(theme.Accent).Bold(true).Render("Revealed"))
	case s.lastVerdict != nil && s.lastVerdict.Correct:
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
		if state.Hot() {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.Flame).Bold(true).Render("🔥 You're on fire!"))
		}
	default:
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
	}

	if q != nil && (s.lastVerdict == nil || !s.lastVerdict.Correct) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render("Accepted answer: " + strings.Join(q.Answers, " / ")))
	}

	b.WriteString("\n\n")

	if q != nil && q.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(minInt(width-8, 70)).
			Foreground(theme.Text)
		exp := expStyle.Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))

	return b.String()
}

// renderReview walks answered questions read-only.
func (s *QuizScreen) renderReview(width int) string {
	state := s.state
	q, qs := state.Current()
	if q == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Review %d of %d", state.Index+1, len(state.Questions))))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	switch {
	case !qs.Answered:
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("Not answered"))
	case qs.Revealed:
		b.WriteString(center.Foreground(theme.Accent).Render("Revealed: " + strings.Join(q.Answers, " / ")))
	case qs.Correct:
		b.WriteString(center.Foreground(theme.Success).Render("✓ " + qs.UserAnswer))
	default:
		b.WriteString(center.Foreground(theme.Error).Render("✗ " + qs.UserAnswer))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render("Accepted answer: " + strings.Join(q.Answers, " / ")))
	}

	if qs.Marked {
		b.WriteString("\n")
		b.WriteString(center.Render(theme.Marked.Render("⚑ marked")))
	}

	if q.Explanation != "" {
		b.WriteString("\n\n")
		expStyle := lipgloss.NewStyle().
			Width(minInt(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(q.Explanation)))
	}

	return b.String()
}

// renderQuitConfirm renders the leave confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your progress is saved and will resume next time."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your quiz...")
}

// renderError renders a build error.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

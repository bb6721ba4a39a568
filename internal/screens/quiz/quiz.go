package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"pharmlet/internal/quizgen"
	"pharmlet/internal/router"
	"pharmlet/internal/screen"
	"pharmlet/internal/screens/summary"
	sess "pharmlet/internal/session"
	"pharmlet/internal/ui/components"
	"pharmlet/internal/ui/layout"
)

// QuizScreen drives one quiz session from first question to summary.
type QuizScreen struct {
	in    sess.BuildInput
	state *sess.SessionState

	// prior is the finished session this screen replaces. Set only by
	// newRestart; Init rebuilds from it instead of in.
	prior *sess.SessionState

	input    components.TextInput
	mc       components.MultiChoice
	mcActive bool

	showingFeedback    bool
	showingQuitConfirm bool
	lastVerdict        *quizgen.Verdict
	hint               string
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatsProvider = (*QuizScreen)(nil)

// New creates a quiz screen that will build its session on Init.
func New(in sess.BuildInput) *QuizScreen {
	return &QuizScreen{in: in}
}

// newRestart creates a quiz screen that deals a fresh session from a
// finished one. The router swaps it in for the old quiz screen.
func newRestart(prior *sess.SessionState) *QuizScreen {
	return &QuizScreen{prior: prior}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.prior != nil {
		return s.restartSession()
	}
	return s.buildSession()
}

func (s *QuizScreen) Title() string {
	if s.state == nil {
		return "Quiz"
	}
	if s.state.Review {
		return s.state.Title + " (review)"
	}
	return s.state.Title
}

func (s *QuizScreen) HeaderStats() layout.HeaderStats {
	if s.state == nil {
		return layout.HeaderStats{}
	}
	return layout.HeaderStats{
		Score:  s.state.Score,
		Total:  len(s.state.Questions),
		Streak: s.state.Streak,
		Hot:    s.state.Hot(),
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Review {
		return []layout.KeyHint{
			{Key: "←→", Description: "Walk answers"},
			{Key: "Esc", Description: "Summary"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Mark"},
	}
	if s.hintAvailable() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Hint"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Leave"})
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case buildDoneMsg:
		return s.handleBuildDone(msg)

	case timerTickMsg:
		return s.handleTick(msg)

	case reviewMsg:
		if s.state != nil && sess.EnterReview(s.state) {
			s.showingFeedback = false
			s.hint = ""
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else to the text input while answering.
	if s.answering() && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// answering reports whether the student is on an open question.
func (s *QuizScreen) answering() bool {
	if s.state == nil || s.state.Review || s.showingFeedback || s.showingQuitConfirm {
		return false
	}
	return s.state.Phase == sess.PhaseActive
}

func (s *QuizScreen) hintAvailable() bool {
	if s.state == nil {
		return false
	}
	q, qs := s.state.Current()
	return q != nil && qs != nil && !qs.Answered && quizgen.Hint(q) != ""
}

// buildSession builds the session asynchronously.
func (s *QuizScreen) buildSession() tea.Cmd {
	in := s.in
	return func() tea.Msg {
		state, err := sess.Build(context.Background(), in)
		return buildDoneMsg{State: state, Err: err}
	}
}

func (s *QuizScreen) restartSession() tea.Cmd {
	prior := s.prior
	s.prior = nil
	return func() tea.Msg {
		if prior == nil {
			return buildDoneMsg{Err: context.Canceled}
		}
		fresh, err := sess.Restart(context.Background(), prior)
		return buildDoneMsg{State: fresh, Err: err}
	}
}

func (s *QuizScreen) handleBuildDone(msg buildDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.showingFeedback = false
	s.showingQuitConfirm = false
	s.lastVerdict = nil
	s.hint = ""

	// A resumed save can already be fully answered.
	if s.state.Phase == sess.PhaseDone {
		return s, s.pushSummary()
	}

	s.setupQuestion()
	return s, tea.Batch(s.inputInit(), tickCmd(s.state.ID))
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.state == nil || msg.SessionID != s.state.ID {
		return s, nil
	}
	if s.state.Phase != sess.PhaseActive {
		return s, nil
	}
	sess.Tick(context.Background(), s.state)
	return s, tickCmd(s.state.ID)
}

// setupQuestion resets the answer widgets for the current question.
func (s *QuizScreen) setupQuestion() {
	s.hint = ""
	q, qs := s.state.Current()
	if q == nil {
		return
	}

	if q.Format == quizgen.FormatChoice {
		s.mcActive = true
		s.mc = components.NewMultiChoice(q.Choices)
		if qs.Answered {
			s.restoreChoice(q, qs)
		}
	} else {
		s.mcActive = false
		s.input = components.NewTextInput("Type your answer...", 60)
	}
}

// inputInit focuses the text input on free-text questions.
func (s *QuizScreen) inputInit() tea.Cmd {
	if s.mcActive {
		return nil
	}
	return s.input.Init()
}

// restoreChoice rebuilds the resolved choice display for a question
// answered before a resume.
func (s *QuizScreen) restoreChoice(q *quizgen.Question, qs *sess.QuestionState) {
	for i, c := range q.Choices {
		if quizgen.Normalize(c) == quizgen.Normalize(qs.UserAnswer) {
			s.mc.Selected = i
			break
		}
	}
	s.mc.Choose()
	s.mc.Resolve(s.correctChoiceIndex(q))
}

// correctChoiceIndex finds which choice matches an accepted answer.
func (s *QuizScreen) correctChoiceIndex(q *quizgen.Question) int {
	for i, c := range q.Choices {
		if quizgen.CheckAnswer(c, q).Correct {
			return i
		}
	}
	return -1
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			sess.Pause(context.Background(), s.state)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	if s.state.Review {
		return s.handleReviewKey(key)
	}

	// Feedback overlay: any key moves on.
	if s.showingFeedback {
		return s.dismissFeedback()
	}

	if s.state.Phase != sess.PhaseActive {
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "tab":
		sess.ToggleMark(context.Background(), s.state)
		return s, nil
	case "ctrl+t":
		if q, _ := s.state.Current(); q != nil {
			s.hint = quizgen.Hint(q)
		}
		return s, nil
	case "ctrl+r":
		return s.submitAnswer(quizgen.RevealSentinel)
	case "enter":
		return s.submitCurrent()
	}

	if s.mcActive {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleReviewKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "left", "h":
		sess.Retreat(context.Background(), s.state)
	case "right", "l":
		sess.Advance(context.Background(), s.state)
	case "esc", "enter":
		sess.ExitReview(s.state)
		return s, s.pushSummary()
	}
	return s, nil
}

func (s *QuizScreen) submitCurrent() (screen.Screen, tea.Cmd) {
	if s.mcActive {
		answer := s.mc.Choose()
		if answer == "" {
			return s, nil
		}
		return s.submitAnswer(answer)
	}
	return s.submitAnswer(s.input.Value())
}

func (s *QuizScreen) submitAnswer(answer string) (screen.Screen, tea.Cmd) {
	q, _ := s.state.Current()
	if q == nil {
		return s, nil
	}

	v := sess.Answer(context.Background(), s.state, answer)
	if v == nil {
		return s, nil
	}
	s.lastVerdict = v

	if s.mcActive {
		s.mc.Resolve(s.correctChoiceIndex(q))
	} else {
		s.input.Submit(v.Correct)
	}

	s.showingFeedback = true
	return s, nil
}

func (s *QuizScreen) dismissFeedback() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.lastVerdict = nil

	if sess.Advance(context.Background(), s.state) {
		s.setupQuestion()
		return s, s.inputInit()
	}

	if s.state.Phase == sess.PhaseDone {
		return s, s.pushSummary()
	}
	return s, nil
}

// pushSummary shows the end-of-session summary with actions that route
// back into this screen.
func (s *QuizScreen) pushSummary() tea.Cmd {
	state := s.state
	sum := sess.BuildSummary(state)
	actions := summary.Actions{
		Review: func() tea.Cmd {
			return tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return reviewMsg{} },
			)
		},
		Restart: func() tea.Cmd {
			return tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return router.ReplaceScreenMsg{Screen: newRestart(state)} },
			)
		},
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(sum, actions)}
	}
}

// tickCmd schedules the next clock tick for the given session.
func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{SessionID: sessionID}
	})
}

package session

import (
	"math/rand"

	"pharmlet/internal/pool"
	"pharmlet/internal/quizgen"
	"pharmlet/internal/store"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseBuilding Phase = iota // Loading content, resolving resume state
	PhaseActive                // Serving questions
	PhaseDone                  // All questions answered, summary available
)

// Identity is the persistence key of a session. Two sessions with the
// same quiz and mode share one live-save slot.
type Identity struct {
	QuizID string
	Mode   string
}

// QuestionState is the per-question answer overlay. Fields are reset
// only by Restart, never by navigation or review.
type QuestionState struct {
	// Answered is true once an evaluation has been recorded. Answering
	// again is a no-op.
	Answered bool

	// UserAnswer is the raw input that was evaluated.
	UserAnswer string

	// Correct records the verdict.
	Correct bool

	// Revealed is true when the student gave up on this question.
	Revealed bool

	// Marked flags the question for later attention.
	Marked bool
}

// SessionState tracks the runtime state of a quiz session.
type SessionState struct {
	// ID is the UUID for this session run.
	ID string

	// Key identifies the session for persistence.
	Key Identity

	// Title is the display title of the quiz.
	Title string

	// Questions are the materialized quiz items, fixed at build time.
	Questions []quizgen.Question

	// States is the per-question overlay, parallel to Questions.
	States []QuestionState

	// Index is the current question, always within [0, len(Questions)).
	Index int

	// Score is the count of correct answers so far.
	Score int

	// Streak is the current run of consecutive correct answers.
	Streak int

	// BestStreak is the longest streak seen this session.
	BestStreak int

	// Review is true when walking answered questions without scoring.
	// Never persisted.
	Review bool

	// ElapsedSeconds accumulates while the timer runs.
	ElapsedSeconds int

	// TimerRunning gates Tick. Stopped on completion and by Pause.
	TimerRunning bool

	// Phase is the current session phase.
	Phase Phase

	// Resumed is true when the session was restored from a live save.
	Resumed bool

	// Repo persists live state, history, and the review queue.
	// Nil disables persistence.
	Repo store.SessionRepo

	// input is retained so Restart can rebuild with fresh generation.
	input BuildInput

	// rng drives shuffling and generation for this session.
	rng *rand.Rand
}

// Answered returns how many questions have been answered.
func (s *SessionState) Answered() int {
	n := 0
	for _, qs := range s.States {
		if qs.Answered {
			n++
		}
	}
	return n
}

// Complete reports whether every question has been answered.
func (s *SessionState) Complete() bool {
	return s.Answered() == len(s.Questions)
}

// Accuracy returns the fraction of answered questions that were correct.
func (s *SessionState) Accuracy() float64 {
	answered := s.Answered()
	if answered == 0 {
		return 0
	}
	return float64(s.Score) / float64(answered)
}

// HotStreakMinAnswered and HotStreakAccuracy gate the hot-streak flame.
const (
	HotStreakMinAnswered = 5
	HotStreakAccuracy    = 0.8
)

// Hot reports whether the hot-streak indicator should show.
func (s *SessionState) Hot() bool {
	return s.Answered() >= HotStreakMinAnswered && s.Accuracy() >= HotStreakAccuracy
}

// Current returns the active question and its overlay.
func (s *SessionState) Current() (*quizgen.Question, *QuestionState) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil, nil
	}
	return &s.Questions[s.Index], &s.States[s.Index]
}

// Marked returns the indices of marked questions in order.
func (s *SessionState) Marked() []int {
	var idx []int
	for i, qs := range s.States {
		if qs.Marked {
			idx = append(idx, i)
		}
	}
	return idx
}

// Wrong returns the indices of answered-incorrect questions in order.
// Revealed questions count as wrong.
func (s *SessionState) Wrong() []int {
	var idx []int
	for i, qs := range s.States {
		if qs.Answered && !qs.Correct {
			idx = append(idx, i)
		}
	}
	return idx
}

// Records rebuilds the selectable record slice for the session, used by
// screens that need hint context. May be nil for pre-authored quizzes.
func (s *SessionState) Records() []pool.DrugRecord {
	return s.input.Records
}

package session

import (
	"context"
	"math/rand"
	"strings"

	"pharmlet/internal/quizgen"
)

// liveSaveInterval is how often, in ticks, the running timer flushes a
// live save.
const liveSaveInterval = 10

// Answer evaluates the student's input against the current question.
// It is idempotent: answering an already-answered question, answering
// in review mode, or submitting blank input is a no-op and returns nil.
func Answer(ctx context.Context, state *SessionState, input string) *quizgen.Verdict {
	if state.Phase != PhaseActive || state.Review {
		return nil
	}
	q, qs := state.Current()
	if q == nil || qs.Answered {
		return nil
	}
	if strings.TrimSpace(input) == "" {
		return nil
	}

	v := quizgen.CheckAnswer(input, q)
	qs.Answered = true
	qs.UserAnswer = input
	qs.Correct = v.Correct
	qs.Revealed = v.Revealed

	if v.Correct {
		state.Score++
		state.Streak++
		if state.Streak > state.BestStreak {
			state.BestStreak = state.Streak
		}
	} else {
		state.Streak = 0
	}

	saveLive(ctx, state)
	return &v
}

// Advance moves to the next question. Advancing past the last question
// of an active session completes it: the phase becomes Done, the timer
// stops, and completion is persisted exactly once. Returns false when
// no forward move happened.
func Advance(ctx context.Context, state *SessionState) bool {
	if state.Index < len(state.Questions)-1 {
		state.Index++
		if !state.Review {
			saveLive(ctx, state)
		}
		return true
	}

	if state.Review || state.Phase != PhaseActive {
		return false
	}

	state.Phase = PhaseDone
	if state.TimerRunning {
		state.TimerRunning = false
	}
	recordCompletion(ctx, state)
	return false
}

// Retreat moves to the previous question, clamped at the first.
func Retreat(ctx context.Context, state *SessionState) bool {
	if state.Index <= 0 {
		return false
	}
	state.Index--
	if !state.Review {
		saveLive(ctx, state)
	}
	return true
}

// ToggleMark flips the mark on the current question.
func ToggleMark(ctx context.Context, state *SessionState) {
	_, qs := state.Current()
	if qs == nil {
		return
	}
	qs.Marked = !qs.Marked
	if !state.Review {
		saveLive(ctx, state)
	}
}

// EnterReview switches a completed session into review mode, starting
// from the first question. Scoring is off in review; answers and marks
// are read-only walkthrough material. Returns false unless the session
// is Done.
func EnterReview(state *SessionState) bool {
	if state.Phase != PhaseDone {
		return false
	}
	state.Review = true
	state.Index = 0
	return true
}

// ExitReview returns a reviewing session to the summary.
func ExitReview(state *SessionState) {
	state.Review = false
}

// Restart discards the session and builds a fresh one from the same
// input with re-rolled question generation. Works from any phase.
func Restart(ctx context.Context, state *SessionState) (*SessionState, error) {
	if state.Repo != nil {
		_ = state.Repo.ClearLive(ctx, repoKey(state.Key))
	}

	in := state.input
	in.Resume = false
	// Derive the next seed from the session's rng so seeded runs stay
	// reproducible while still dealing a different quiz.
	if in.Seed != 0 {
		in.Seed = state.rng.Int63()
	}
	return Build(ctx, in)
}

// Tick advances the session clock by one second. The live save is
// flushed periodically rather than on every tick.
func Tick(ctx context.Context, state *SessionState) {
	if !state.TimerRunning || state.Phase != PhaseActive {
		return
	}
	state.ElapsedSeconds++
	if state.ElapsedSeconds%liveSaveInterval == 0 {
		saveLive(ctx, state)
	}
}

// Pause stops the clock and flushes a live save.
func Pause(ctx context.Context, state *SessionState) {
	if !state.TimerRunning {
		return
	}
	state.TimerRunning = false
	saveLive(ctx, state)
}

// Resume restarts a paused clock.
func Resume(state *SessionState) {
	if state.Phase != PhaseActive {
		return
	}
	state.TimerRunning = true
}

// shuffleQuestions shuffles in place.
func shuffleQuestions(questions []quizgen.Question, rng *rand.Rand) {
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

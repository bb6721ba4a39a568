package session

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"pharmlet/internal/pool"
	"pharmlet/internal/quizgen"
	"pharmlet/internal/store"
)

// BuildInput describes how to materialize a session. Exactly one
// question source is used: Queued, then File, then Records.
type BuildInput struct {
	// Key identifies the session for persistence.
	Key Identity

	// Title is the display title. Defaults to the quiz file title or
	// the quiz ID.
	Title string

	// File is a pre-authored quiz file. When set, questions come from
	// its pool for Key.Mode.
	File *pool.QuizFile

	// Records is the master drug pool for generated quizzes.
	Records []pool.DrugRecord

	// Queued builds the session from previously missed questions
	// instead of File or Records.
	Queued []store.PersistedQuestion

	// Unit selects curriculum records when > 0. Zero means the whole
	// pool.
	Unit int

	// Limit caps the question count when > 0.
	Limit int

	// Seed makes shuffling and generation reproducible when non-zero.
	Seed int64

	// Repo persists the session. Nil disables persistence and resume.
	Repo store.SessionRepo

	// Resume restores a matching live save when one exists.
	Resume bool
}

// Build materializes a session from in. The returned session is always
// fully built and in PhaseActive; on any content problem it returns an
// error wrapping pool.ErrContentUnavailable instead.
func Build(ctx context.Context, in BuildInput) (*SessionState, error) {
	rng := pool.NewRand(in.Seed)

	questions, err := materialize(in, rng)
	if err != nil {
		return nil, err
	}
	if in.Limit > 0 && len(questions) > in.Limit {
		questions = questions[:in.Limit]
	}

	state := &SessionState{
		ID:           uuid.NewString(),
		Key:          in.Key,
		Title:        buildTitle(in),
		Questions:    questions,
		States:       make([]QuestionState, len(questions)),
		Phase:        PhaseActive,
		TimerRunning: true,
		Repo:         in.Repo,
		input:        in,
		rng:          rng,
	}

	if in.Resume && in.Repo != nil {
		resumeLive(ctx, state)
	}

	saveLive(ctx, state)
	return state, nil
}

// materialize produces the question list from the configured source.
func materialize(in BuildInput, rng *rand.Rand) ([]quizgen.Question, error) {
	if len(in.Queued) > 0 {
		questions := make([]quizgen.Question, 0, len(in.Queued))
		for _, pq := range in.Queued {
			questions = append(questions, fromPersisted(pq))
		}
		shuffleQuestions(questions, rng)
		return questions, nil
	}

	if in.File != nil {
		poolQuestions, ok := in.File.PoolFor(in.Key.Mode)
		if !ok || len(poolQuestions) == 0 {
			return nil, fmt.Errorf("quiz %q mode %q: %w", in.Key.QuizID, in.Key.Mode, pool.ErrContentUnavailable)
		}
		questions := make([]quizgen.Question, 0, len(poolQuestions))
		for _, pq := range poolQuestions {
			questions = append(questions, quizgen.FromPoolQuestion(pq, rng))
		}
		shuffleQuestions(questions, rng)
		return questions, nil
	}

	records := in.Records
	if in.Unit > 0 {
		records = pool.SelectForUnit(records, in.Unit, rng)
	} else {
		records = append([]pool.DrugRecord(nil), records...)
		pool.ShuffleRecords(records, rng)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("quiz %q: no records: %w", in.Key.QuizID, pool.ErrContentUnavailable)
	}

	// One question per record, so capping records caps the session.
	records = pool.Limit(records, in.Limit)

	questions := quizgen.GenerateBatch(records, rng)
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz %q: %w", in.Key.QuizID, pool.ErrContentUnavailable)
	}
	return questions, nil
}

func buildTitle(in BuildInput) string {
	if in.Title != "" {
		return in.Title
	}
	if in.File != nil && in.File.Title != "" {
		return in.File.Title
	}
	if len(in.Queued) > 0 {
		return "Review queue"
	}
	return in.Key.QuizID
}

// resumeLive restores a persisted session into state. The save is only
// honored when its question count matches the freshly built count;
// otherwise the stale save is discarded.
func resumeLive(ctx context.Context, state *SessionState) {
	data, err := state.Repo.LoadLive(ctx, repoKey(state.Key))
	if err != nil || data == nil {
		return
	}
	if len(data.Questions) != len(state.Questions) {
		_ = state.Repo.ClearLive(ctx, repoKey(state.Key))
		return
	}

	questions := make([]quizgen.Question, len(data.Questions))
	states := make([]QuestionState, len(data.Questions))
	for i, pq := range data.Questions {
		questions[i] = fromPersisted(pq)
		states[i] = QuestionState{
			Answered:   pq.Answered,
			UserAnswer: pq.UserAnswer,
			Correct:    pq.Correct,
			Revealed:   pq.Revealed,
			Marked:     pq.Marked,
		}
	}

	state.Questions = questions
	state.States = states
	state.Index = clampIndex(data.Index, len(questions))
	state.Score = data.Score
	state.Streak = data.Streak
	state.BestStreak = data.BestStreak
	state.ElapsedSeconds = data.ElapsedSecs
	if data.Title != "" {
		state.Title = data.Title
	}
	state.Resumed = true

	if state.Complete() {
		state.Phase = PhaseDone
		state.TimerRunning = false
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

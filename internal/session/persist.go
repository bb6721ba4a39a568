package session

import (
	"context"

	"pharmlet/internal/quizgen"
	"pharmlet/internal/store"
)

func repoKey(id Identity) store.SessionKey {
	return store.SessionKey{QuizID: id.QuizID, Mode: id.Mode}
}

func toPersisted(q quizgen.Question, qs QuestionState) store.PersistedQuestion {
	return store.PersistedQuestion{
		Family:      string(q.Family),
		Format:      string(q.Format),
		Prompt:      q.Prompt,
		Choices:     q.Choices,
		Answers:     q.Answers,
		Explanation: q.Explanation,
		Attribute:   string(q.Attribute),
		Mapping:     quizgen.SourceMapping(&q),

		Answered:   qs.Answered,
		UserAnswer: qs.UserAnswer,
		Correct:    qs.Correct,
		Revealed:   qs.Revealed,
		Marked:     qs.Marked,
	}
}

func fromPersisted(pq store.PersistedQuestion) quizgen.Question {
	q := quizgen.Question{
		Family:      quizgen.Family(pq.Family),
		Format:      quizgen.Format(pq.Format),
		Prompt:      pq.Prompt,
		Choices:     pq.Choices,
		Answers:     pq.Answers,
		Explanation: pq.Explanation,
		Attribute:   quizgen.Attribute(pq.Attribute),
	}
	if len(pq.Mapping) > 0 {
		rec := quizgen.RecordFromMapping(pq.Mapping)
		q.Source = &rec
	}
	return q
}

// saveLive writes the current session snapshot. Persistence is
// best-effort: a failed write never interrupts play.
func saveLive(ctx context.Context, state *SessionState) {
	if state.Repo == nil || state.Phase == PhaseDone {
		return
	}

	data := &store.LiveSessionData{
		Title:       state.Title,
		Questions:   make([]store.PersistedQuestion, len(state.Questions)),
		Index:       state.Index,
		Score:       state.Score,
		Streak:      state.Streak,
		BestStreak:  state.BestStreak,
		ElapsedSecs: state.ElapsedSeconds,
	}
	for i := range state.Questions {
		data.Questions[i] = toPersisted(state.Questions[i], state.States[i])
	}

	_ = state.Repo.SaveLive(ctx, repoKey(state.Key), data)
}

// recordCompletion runs the end-of-session persistence exactly once:
// the live save is cleared, the run is appended to history, and every
// wrong answer joins the review queue.
func recordCompletion(ctx context.Context, state *SessionState) {
	if state.Repo == nil {
		return
	}

	_ = state.Repo.ClearLive(ctx, repoKey(state.Key))

	_ = state.Repo.AppendHistory(ctx, store.HistoryEntry{
		QuizID:      state.Key.QuizID,
		Mode:        state.Key.Mode,
		Score:       state.Score,
		Total:       len(state.Questions),
		BestStreak:  state.BestStreak,
		ElapsedSecs: state.ElapsedSeconds,
	})

	var missed []store.ReviewEntry
	for _, i := range state.Wrong() {
		missed = append(missed, store.ReviewEntry{
			QuizID:   state.Key.QuizID,
			Mode:     state.Key.Mode,
			Question: toPersisted(state.Questions[i], QuestionState{}),
		})
	}
	_ = state.Repo.AppendReview(ctx, missed)
}

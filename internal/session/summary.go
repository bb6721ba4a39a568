package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Title      string
	Score      int
	Total      int
	Accuracy   float64
	BestStreak int
	Duration   time.Duration
	Marked     int
	Missed     int
	Hot        bool
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state *SessionState) *Summary {
	return &Summary{
		Title:      state.Title,
		Score:      state.Score,
		Total:      len(state.Questions),
		Accuracy:   state.Accuracy(),
		BestStreak: state.BestStreak,
		Duration:   time.Duration(state.ElapsedSeconds) * time.Second,
		Marked:     len(state.Marked()),
		Missed:     len(state.Wrong()),
		Hot:        state.Hot(),
	}
}

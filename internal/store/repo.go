package store

import (
	"context"
	"time"
)

// Rolling log caps. Appends beyond the cap evict the oldest rows.
const (
	HistoryCap     = 50
	ReviewQueueCap = 200
)

// SessionKey identifies a persisted session: a named quiz (or a generated
// unit selector) plus its difficulty mode.
type SessionKey struct {
	QuizID string `json:"quizId"`
	Mode   string `json:"mode"`
}

// PersistedQuestion is one question with its per-session answer overlay,
// as written to the live session row.
type PersistedQuestion struct {
	Family      string   `json:"family"`
	Format      string   `json:"format"`
	Prompt      string   `json:"prompt"`
	Choices     []string `json:"choices,omitempty"`
	Answers     []string `json:"answers"`
	Explanation string   `json:"explain,omitempty"`
	Attribute   string   `json:"attribute,omitempty"`

	// Mapping carries the source drug record fields so hints still
	// work on questions restored from a save or the review queue.
	Mapping map[string]string `json:"mapping,omitempty"`

	Answered   bool   `json:"answered"`
	UserAnswer string `json:"userAnswer,omitempty"`
	Correct    bool   `json:"correct"`
	Revealed   bool   `json:"revealed,omitempty"`
	Marked     bool   `json:"marked,omitempty"`
}

// LiveSessionData is the serialized subset of a running session. Review
// mode is deliberately absent: sessions never resume into review.
type LiveSessionData struct {
	Title       string              `json:"title"`
	Questions   []PersistedQuestion `json:"questions"`
	Index       int                 `json:"currentIndex"`
	Score       int                 `json:"score"`
	Streak      int                 `json:"streak"`
	BestStreak  int                 `json:"bestStreak"`
	ElapsedSecs int                 `json:"elapsedSeconds"`
}

// HistoryEntry is one completed session in the rolling history log.
type HistoryEntry struct {
	ID          int
	QuizID      string
	Mode        string
	Score       int
	Total       int
	BestStreak  int
	ElapsedSecs int
	FinishedAt  time.Time
}

// ReviewEntry is one missed question queued for targeted practice.
type ReviewEntry struct {
	ID       int
	QuizID   string
	Mode     string
	Question PersistedQuestion
	AddedAt  time.Time
}

// SessionRepo persists live sessions, completed-session history, and the
// missed-question review queue.
type SessionRepo interface {
	// SaveLive upserts the live session for key and updates the
	// last-active pointer.
	SaveLive(ctx context.Context, key SessionKey, data *LiveSessionData) error

	// LoadLive returns the persisted session for key, or nil if absent.
	LoadLive(ctx context.Context, key SessionKey) (*LiveSessionData, error)

	// ClearLive removes the persisted session for key.
	ClearLive(ctx context.Context, key SessionKey) error

	// ClearAllLive removes every persisted session and the last-active
	// pointer.
	ClearAllLive(ctx context.Context) error

	// LastActive returns the key written by the most recent SaveLive,
	// or nil if none has been recorded.
	LastActive(ctx context.Context) (*SessionKey, error)

	// AppendHistory adds a completed-session record, evicting the oldest
	// beyond HistoryCap.
	AppendHistory(ctx context.Context, entry HistoryEntry) error

	// RecentHistory returns up to limit entries, newest first.
	RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error)

	// AppendReview queues missed questions, evicting the oldest beyond
	// ReviewQueueCap.
	AppendReview(ctx context.Context, entries []ReviewEntry) error

	// ReviewQueue returns up to limit queued questions, newest first.
	// limit <= 0 returns everything.
	ReviewQueue(ctx context.Context, limit int) ([]ReviewEntry, error)

	// ClearReview empties the review queue.
	ClearReview(ctx context.Context) error
}

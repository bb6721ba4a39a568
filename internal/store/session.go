package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// sessionRepo implements SessionRepo on raw SQL.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) SaveLive(ctx context.Context, key SessionKey, data *LiveSessionData) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal live session: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO live_sessions (quiz_id, mode, data, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (quiz_id, mode) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key.QuizID, key.Mode, string(blob), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save live session: %w", err)
	}

	// Explicit last-active pointer; recency is never inferred by
	// scanning keys.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO last_active (id, quiz_id, mode) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET quiz_id = excluded.quiz_id, mode = excluded.mode`,
		key.QuizID, key.Mode,
	)
	if err != nil {
		return fmt.Errorf("update last active: %w", err)
	}
	return nil
}

func (r *sessionRepo) LoadLive(ctx context.Context, key SessionKey) (*LiveSessionData, error) {
	var blob string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM live_sessions WHERE quiz_id = ? AND mode = ?`,
		key.QuizID, key.Mode,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load live session: %w", err)
	}

	var data LiveSessionData
	if err := json.Unmarshal([]byte(blob), &data); err != nil {
		return nil, fmt.Errorf("unmarshal live session: %w", err)
	}
	return &data, nil
}

func (r *sessionRepo) ClearLive(ctx context.Context, key SessionKey) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM live_sessions WHERE quiz_id = ? AND mode = ?`,
		key.QuizID, key.Mode,
	)
	if err != nil {
		return fmt.Errorf("clear live session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ClearAllLive(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM live_sessions`); err != nil {
		return fmt.Errorf("clear live sessions: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM last_active`); err != nil {
		return fmt.Errorf("clear last active: %w", err)
	}
	return nil
}

func (r *sessionRepo) LastActive(ctx context.Context) (*SessionKey, error) {
	var key SessionKey
	err := r.db.QueryRowContext(ctx,
		`SELECT quiz_id, mode FROM last_active WHERE id = 1`,
	).Scan(&key.QuizID, &key.Mode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load last active: %w", err)
	}
	return &key, nil
}

func (r *sessionRepo) AppendHistory(ctx context.Context, entry HistoryEntry) error {
	finishedAt := entry.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO history (quiz_id, mode, score, total, best_streak, elapsed_secs, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.QuizID, entry.Mode, entry.Score, entry.Total, entry.BestStreak, entry.ElapsedSecs, finishedAt,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`,
		HistoryCap,
	)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

func (r *sessionRepo) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = HistoryCap
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, quiz_id, mode, score, total, best_streak, elapsed_secs, finished_at
		 FROM history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.QuizID, &e.Mode, &e.Score, &e.Total, &e.BestStreak, &e.ElapsedSecs, &e.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *sessionRepo) AppendReview(ctx context.Context, entries []ReviewEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review append: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		blob, err := json.Marshal(e.Question)
		if err != nil {
			return fmt.Errorf("marshal review question: %w", err)
		}
		addedAt := e.AddedAt
		if addedAt.IsZero() {
			addedAt = time.Now().UTC()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO review_queue (quiz_id, mode, question, added_at) VALUES (?, ?, ?, ?)`,
			e.QuizID, e.Mode, string(blob), addedAt,
		)
		if err != nil {
			return fmt.Errorf("append review: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM review_queue WHERE id NOT IN (SELECT id FROM review_queue ORDER BY id DESC LIMIT ?)`,
		ReviewQueueCap,
	)
	if err != nil {
		return fmt.Errorf("trim review queue: %w", err)
	}

	return tx.Commit()
}

func (r *sessionRepo) ReviewQueue(ctx context.Context, limit int) ([]ReviewEntry, error) {
	q := `SELECT id, quiz_id, mode, question, added_at FROM review_queue ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query review queue: %w", err)
	}
	defer rows.Close()

	var entries []ReviewEntry
	for rows.Next() {
		var e ReviewEntry
		var blob string
		if err := rows.Scan(&e.ID, &e.QuizID, &e.Mode, &blob, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan review entry: %w", err)
		}
		if err := json.Unmarshal([]byte(blob), &e.Question); err != nil {
			return nil, fmt.Errorf("unmarshal review question: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *sessionRepo) ClearReview(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM review_queue`); err != nil {
		return fmt.Errorf("clear review queue: %w", err)
	}
	return nil
}

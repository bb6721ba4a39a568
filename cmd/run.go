package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pharmlet/internal/app"
	"pharmlet/internal/config"
	"pharmlet/internal/pool"
	sess "pharmlet/internal/session"
	"pharmlet/internal/store"
)

// startOptions describes an optional quiz to open immediately instead
// of landing on the home screen.
type startOptions struct {
	QuizID string
	Mode   string
	Unit   int
	Limit  int
	Seed   int64
	Review bool
	Fresh  bool
}

// runApp wires the store, pool, and config together and starts the UI.
func runApp(cmd *cobra.Command, start startOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	repo := st.SessionRepo()

	records, err := loadRecords(cfg)
	if err != nil {
		return err
	}

	opts := app.Options{
		Repo:    repo,
		Records: records,
		Cfg:     cfg,
	}

	if start.QuizID != "" || start.Review {
		in, err := buildStartInput(cmd.Context(), cfg, repo, records, start)
		if err != nil {
			return err
		}
		opts.Start = &in
	}

	return app.Run(opts)
}

// loadRecords reads the configured master pool, falling back to the
// embedded seed pool.
func loadRecords(cfg config.Config) ([]pool.DrugRecord, error) {
	if cfg.PoolPath == "" {
		return pool.DefaultPool(), nil
	}
	records, err := pool.LoadMasterPool(cfg.PoolPath)
	if err != nil {
		return nil, fmt.Errorf("load pool %s: %w", cfg.PoolPath, err)
	}
	return records, nil
}

// buildStartInput translates CLI flags into a session build input.
func buildStartInput(ctx context.Context, cfg config.Config, repo store.SessionRepo, records []pool.DrugRecord, start startOptions) (sess.BuildInput, error) {
	mode := start.Mode
	if mode == "" {
		mode = cfg.DefaultMode
	}
	limit := start.Limit
	if limit == 0 {
		limit = cfg.QuestionLimit
	}

	if start.Review {
		queue, err := repo.ReviewQueue(ctx, 0)
		if err != nil {
			return sess.BuildInput{}, fmt.Errorf("load review queue: %w", err)
		}
		if len(queue) == 0 {
			return sess.BuildInput{}, errors.New("review queue is empty")
		}
		queued := make([]store.PersistedQuestion, 0, len(queue))
		for _, e := range queue {
			queued = append(queued, e.Question)
		}
		return sess.BuildInput{
			Key:    sess.Identity{QuizID: "review-queue", Mode: "review"},
			Queued: queued,
			Limit:  limit,
			Seed:   start.Seed,
			Repo:   repo,
		}, nil
	}

	in := sess.BuildInput{
		Key:     sess.Identity{QuizID: start.QuizID, Mode: mode},
		Records: records,
		Unit:    start.Unit,
		Limit:   limit,
		Seed:    start.Seed,
		Repo:    repo,
		Resume:  !start.Fresh,
	}

	// A quiz file in the quiz directory takes precedence over
	// generated questions.
	file, err := pool.FindQuizFile(cfg.QuizDir, start.QuizID)
	if err != nil {
		return sess.BuildInput{}, fmt.Errorf("load quiz %q: %w", start.QuizID, err)
	}
	in.File = file

	return in, nil
}

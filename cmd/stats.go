package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pharmlet/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz history and review queue status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.SessionRepo()

		entries, err := repo.RecentHistory(ctx, 10)
		if err != nil {
			return err
		}
		queue, err := repo.ReviewQueue(ctx, 0)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No quizzes completed yet.")
		} else {
			fmt.Println("Recent quizzes:")
			for _, e := range entries {
				var accuracy float64
				if e.Total > 0 {
					accuracy = float64(e.Score) / float64(e.Total) * 100
				}
				fmt.Printf("  %s  %-20s %-10s %d/%d (%.0f%%)  streak %d\n",
					e.FinishedAt.Format("2006-01-02"), e.QuizID, e.Mode,
					e.Score, e.Total, accuracy, e.BestStreak)
			}
		}

		fmt.Printf("\nReview queue: %d questions", len(queue))
		if len(queue) > 0 {
			oldest := queue[len(queue)-1].AddedAt
			fmt.Printf(" (oldest from %s)", oldest.Format(time.DateOnly))
		}
		fmt.Println()

		return nil
	},
}

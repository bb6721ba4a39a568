package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pharmlet/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the review queue and saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This clears the review queue and any in-progress sessions.")
			fmt.Println("Re-run with --yes to confirm. History is kept.")
			return nil
		}

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

		if err := repo.ClearReview(ctx); err != nil {
			return err
		}
		if err := repo.ClearAllLive(ctx); err != nil {
			return err
		}

		fmt.Println("Cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

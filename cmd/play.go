package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		quizID, _ := cmd.Flags().GetString("quiz")
		mode, _ := cmd.Flags().GetString("mode")
		unit, _ := cmd.Flags().GetInt("unit")
		limit, _ := cmd.Flags().GetInt("limit")
		seed, _ := cmd.Flags().GetInt64("seed")
		review, _ := cmd.Flags().GetBool("review")
		fresh, _ := cmd.Flags().GetBool("fresh")

		if quizID == "" && !review {
			quizID = "practice"
		}

		return runApp(cmd, startOptions{
			QuizID: quizID,
			Mode:   mode,
			Unit:   unit,
			Limit:  limit,
			Seed:   seed,
			Review: review,
			Fresh:  fresh,
		})
	},
}

func init() {
	playCmd.Flags().String("quiz", "", "Quiz ID (matches a quiz file name, or names a generated practice run)")
	playCmd.Flags().String("mode", "", "Quiz mode (defaults to the configured mode)")
	playCmd.Flags().Int("unit", 0, "Build a unit quiz: new drugs for this unit plus earlier review drugs")
	playCmd.Flags().Int("limit", 0, "Cap the number of questions")
	playCmd.Flags().Int64("seed", 0, "Seed for reproducible shuffling and generation")
	playCmd.Flags().Bool("review", false, "Quiz over the missed-question review queue")
	playCmd.Flags().Bool("fresh", false, "Ignore any saved session and start over")
}

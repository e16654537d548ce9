package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"watch-listing-stats/internal/app"
)

var (
	analyzeInput  string
	analyzeFromDB bool
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute price and shipping statistics over scraped listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeInput != "" && analyzeFromDB {
			return fmt.Errorf("--input and --from-db are mutually exclusive")
		}

		opts := app.AnalyzeOptions{
			Input:  analyzeInput,
			FromDB: analyzeFromDB,
			JSON:   analyzeJSON,
		}

		return getApp().Analyze(cmd.Context(), opts)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "Listings JSON file (defaults to input.path from config)")
	analyzeCmd.Flags().BoolVar(&analyzeFromDB, "from-db", false, "Read listings from the database instead of a file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the report as JSON")
}

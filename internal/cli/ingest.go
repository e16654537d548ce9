package cli

import (
	"github.com/spf13/cobra"

	"watch-listing-stats/internal/app"
)

var (
	ingestInput  string
	ingestDryRun bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a scraped listings JSON file into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.IngestOptions{
			Input:  ingestInput,
			DryRun: ingestDryRun,
		}

		return getApp().Ingest(cmd.Context(), opts)
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestInput, "input", "", "Listings JSON file (defaults to input.path from config)")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Validate the file without writing to storage")
}

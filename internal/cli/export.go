package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"watch-listing-stats/internal/app"
)

var (
	exportInput     string
	exportFromDB    bool
	exportPNGPath   string
	exportCSVPath   string
	exportMaxGroups int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export grouped breakdowns as CSV and/or PNG chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportInput != "" && exportFromDB {
			return fmt.Errorf("--input and --from-db are mutually exclusive")
		}

		opts := app.ExportOptions{
			Input:     exportInput,
			FromDB:    exportFromDB,
			PNGPath:   exportPNGPath,
			CSVPath:   exportCSVPath,
			MaxGroups: exportMaxGroups,
		}

		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "Listings JSON file (defaults to input.path from config)")
	exportCmd.Flags().BoolVar(&exportFromDB, "from-db", false, "Read listings from the database instead of a file")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Path to write PNG chart")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write CSV data")
	exportCmd.Flags().IntVar(&exportMaxGroups, "max-groups", 0, "Maximum groups to export (defaults to config)")
}

package app

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"watch-listing-stats/internal/config"
	"watch-listing-stats/internal/listing"
	"watch-listing-stats/internal/report"
	"watch-listing-stats/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	store, err := storage.Open(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

func (a *App) reportOptions() report.Options {
	return report.Options{
		UnknownGroupLabel: a.Config.Analysis.UnknownGroupLabel,
	}
}

// inputPath resolves the listings file, falling back to the configured path.
func (a *App) inputPath(override string) string {
	if override != "" {
		return override
	}
	return a.Config.Input.Path
}

// loadListings resolves the record source: the listing store when fromDB is
// set, otherwise a scraped JSON file.
func (a *App) loadListings(ctx context.Context, input string, fromDB bool) ([]listing.Listing, error) {
	if !fromDB {
		return listing.Load(a.inputPath(input))
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, storage.ErrNotConfigured
	}
	if closeStore != nil {
		defer closeStore()
	}

	stored, err := store.ListAllListings(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]listing.Listing, 0, len(stored))
	for _, s := range stored {
		listings = append(listings, s.Listing())
	}
	return listings, nil
}

// groupRow pairs a group key with its summary for ordered rendering.
type groupRow struct {
	Key     string
	Summary report.GroupSummary
}

// sortGroups orders groups by size descending, then key, so the busiest
// categories lead every table and chart.
func sortGroups(groups map[string]report.GroupSummary) []groupRow {
	rows := make([]groupRow, 0, len(groups))
	for key, summary := range groups {
		rows = append(rows, groupRow{Key: key, Summary: summary})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Summary.Count != rows[j].Summary.Count {
			return rows[i].Summary.Count > rows[j].Summary.Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// AnalyzeOptions configure the analyze command.
type AnalyzeOptions struct {
	Input  string
	FromDB bool
	JSON   bool
}

// IngestOptions configure the ingest job.
type IngestOptions struct {
	Input  string
	DryRun bool
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// ExportOptions hold parameters for exporting report breakdowns.
type ExportOptions struct {
	Input     string
	FromDB    bool
	CSVPath   string
	PNGPath   string
	MaxGroups int
}

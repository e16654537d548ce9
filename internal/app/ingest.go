package app

import (
	"context"
	"errors"

	"watch-listing-stats/internal/listing"
	"watch-listing-stats/internal/storage"
)

// Ingest loads a scraped listings file into the listing store。
func (a *App) Ingest(ctx context.Context, opts IngestOptions) error {
	path := a.inputPath(opts.Input)

	listings, err := listing.Load(path)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		return errors.New("数据文件为空，没有可导入的 listing")
	}

	stored := make([]storage.StoredListing, 0, len(listings))
	skipped := 0
	for _, l := range listings {
		if l.ID == "" {
			skipped++
			continue
		}
		stored = append(stored, storage.FromListing(l))
	}
	if skipped > 0 {
		a.Logger.Warn().Int("skipped", skipped).Msg("跳过缺少 id 的 listing")
	}

	if opts.DryRun {
		a.Logger.Warn().Msg("导入 dry-run：不会写入数据库")
		a.Logger.Info().Str("path", path).Int("listings", len(stored)).Msg("dry-run 校验完成")
		return nil
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database.dsn 未配置，无法导入")
	}
	if closeStore != nil {
		defer closeStore()
	}

	written, err := store.UpsertListings(ctx, stored)
	if err != nil {
		return err
	}

	total, err := store.CountListings(ctx)
	if err != nil {
		return err
	}

	a.Logger.Info().
		Str("path", path).
		Int64("written", written).
		Int64("total", total).
		Msg("导入完成")
	return nil
}

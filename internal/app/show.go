package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

// Show prints recently ingested listings.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show listings")
	}
	if closeStore != nil {
		defer closeStore()
	}

	listings, err := store.ListRecentListings(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		fmt.Fprintln(os.Stdout, "no listings found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTitle\tPrice\tShipping\tLocation\tMerchant\tIngested (UTC)")

	for _, l := range listings {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID,
			truncate(sanitizeInline(orDash(l.Title)), 40),
			orDash(l.Price),
			orDash(l.ShippingPrice),
			sanitizeInline(orDash(l.Location)),
			orDash(l.MerchantName),
			l.CreatedAt.UTC().Format(time.RFC3339),
		)
	}

	writer.Flush()
	return nil
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

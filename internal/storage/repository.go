package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"watch-listing-stats/internal/config"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	upsertListingSQL = `INSERT INTO listings (
        id,
        url,
        manufacturer,
        certification_status,
        title,
        description,
        price,
        shipping_price,
        location,
        merchant_name,
        badge,
        image_urls
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
    )
    ON CONFLICT (id) DO UPDATE
    SET
        url                  = EXCLUDED.url,
        manufacturer         = EXCLUDED.manufacturer,
        certification_status = EXCLUDED.certification_status,
        title                = EXCLUDED.title,
        description          = EXCLUDED.description,
        price                = EXCLUDED.price,
        shipping_price       = EXCLUDED.shipping_price,
        location             = EXCLUDED.location,
        merchant_name        = EXCLUDED.merchant_name,
        badge                = EXCLUDED.badge,
        image_urls           = EXCLUDED.image_urls;`

	listAllListingsSQL = `SELECT
        id,
        url,
        manufacturer,
        certification_status,
        title,
        description,
        price,
        shipping_price,
        location,
        merchant_name,
        badge,
        image_urls,
        created_at
    FROM listings
    ORDER BY created_at, id;`

	listRecentListingsSQL = `SELECT
        id,
        url,
        manufacturer,
        certification_status,
        title,
        description,
        price,
        shipping_price,
        location,
        merchant_name,
        badge,
        image_urls,
        created_at
    FROM listings
    ORDER BY created_at DESC, id DESC
    LIMIT $1;`

	countListingsSQL = `SELECT COUNT(*) FROM listings;`
)

// ListingStore defines operations for scraped listing persistence.
type ListingStore interface {
	UpsertListings(ctx context.Context, listings []StoredListing) (int64, error)
	ListAllListings(ctx context.Context) ([]StoredListing, error)
	ListRecentListings(ctx context.Context, limit int) ([]StoredListing, error)
	CountListings(ctx context.Context) (int64, error)
}

// Store aggregates access to the listings table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open builds a connection pool from runtime settings and wraps it in a
// Store.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	return NewStore(pool), nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertListings writes a batch of listings, updating rows re-scraped under
// the same marketplace id. Returns the number of rows written.
func (s *Store) UpsertListings(ctx context.Context, listings []StoredListing) (int64, error) {
	if s.pool == nil {
		return 0, ErrNotConfigured
	}

	batch := &pgx.Batch{}
	for _, l := range listings {
		batch.Queue(
			upsertListingSQL,
			l.ID,
			l.URL,
			l.Manufacturer,
			l.CertificationStatus,
			l.Title,
			l.Description,
			l.Price,
			l.ShippingPrice,
			l.Location,
			l.MerchantName,
			l.Badge,
			l.ImageURLs,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	var written int64
	for range listings {
		tag, err := results.Exec()
		if err != nil {
			return written, fmt.Errorf("upsert listing: %w", err)
		}
		written += tag.RowsAffected()
	}
	return written, nil
}

// ListAllListings returns every stored listing in ingest order.
func (s *Store) ListAllListings(ctx context.Context) ([]StoredListing, error) {
	if s.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := s.pool.Query(ctx, listAllListingsSQL)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// ListRecentListings returns the most recently ingested listings.
func (s *Store) ListRecentListings(ctx context.Context, limit int) ([]StoredListing, error) {
	if s.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := s.pool.Query(ctx, listRecentListingsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// CountListings reports the stored listing total.
func (s *Store) CountListings(ctx context.Context) (int64, error) {
	if s.pool == nil {
		return 0, ErrNotConfigured
	}

	var count int64
	if err := s.pool.QueryRow(ctx, countListingsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return count, nil
}

func scanListings(rows pgx.Rows) ([]StoredListing, error) {
	var listings []StoredListing
	for rows.Next() {
		var l StoredListing
		if err := rows.Scan(
			&l.ID,
			&l.URL,
			&l.Manufacturer,
			&l.CertificationStatus,
			&l.Title,
			&l.Description,
			&l.Price,
			&l.ShippingPrice,
			&l.Location,
			&l.MerchantName,
			&l.Badge,
			&l.ImageURLs,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

var _ ListingStore = (*Store)(nil)

package repository

import (
	"context"
	"fmt"
	"time"

	"LithiumHedge/internal/domain/models"
	pkgch "LithiumHedge/pkg/clickhouse"
)

var priceSchema = []string{
	`CREATE TABLE IF NOT EXISTS daily_bars (
		symbol LowCardinality(String),
		date Date,
		open Float64,
		high Float64,
		low Float64,
		close Float64,
		volume Float64,
		inserted_at DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(inserted_at)
	ORDER BY (symbol, date)`,
}

// CHPriceStore persists daily bars in ClickHouse. Re-inserting a day is
// harmless: ReplacingMergeTree keeps the newest row per (symbol, date).
type CHPriceStore struct {
	client *pkgch.Client
}

// NewCHPriceStore ensures the schema and returns the store.
func NewCHPriceStore(ctx context.Context, client *pkgch.Client) (*CHPriceStore, error) {
	if err := client.InitSchema(ctx, priceSchema); err != nil {
		return nil, fmt.Errorf("price store schema: %w", err)
	}
	return &CHPriceStore{client: client}, nil
}

// SaveBars batch-inserts a fetched series.
func (s *CHPriceStore) SaveBars(ctx context.Context, symbol string, bars []models.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin batch: %v", models.ErrPersistence, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO daily_bars (symbol, date, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: prepare batch: %v", models.ErrPersistence, err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: append bar: %v", models.ErrPersistence, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit batch: %v", models.ErrPersistence, err)
	}
	return nil
}

// LoadBars reads the stored series for a symbol from a start date, ascending.
func (s *CHPriceStore) LoadBars(ctx context.Context, symbol string, from time.Time) ([]models.PriceBar, error) {
	rows, err := s.client.DB().QueryContext(ctx,
		`SELECT date, open, high, low, close, volume
		 FROM daily_bars FINAL
		 WHERE symbol = ? AND date >= ?
		 ORDER BY date ASC`, symbol, from)
	if err != nil {
		return nil, fmt.Errorf("%w: load bars: %v", models.ErrPersistence, err)
	}
	defer rows.Close()

	var bars []models.PriceBar
	for rows.Next() {
		var b models.PriceBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("%w: scan bar: %v", models.ErrPersistence, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate bars: %v", models.ErrPersistence, err)
	}
	return bars, nil
}

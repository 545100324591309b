package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Prices stores dated market prices per ticker, including benchmark
// tickers. Prices are public market data and persist in plaintext, which is
// what lets the performance series range-query them by date.
type Prices struct {
	db *gorm.DB
}

// Record upserts one price observation for (ticker, date). Re-recording the
// same day replaces the price, so repeated imports are idempotent.
func (s *Prices) Record(ctx context.Context, point domain.PricePoint) error {
	row := &record.PriceRow{
		ID:     uuid.NewString(),
		Ticker: point.Ticker,
		Date:   truncateToDay(point.Date),
		Price:  point.Price.String(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{"price": row.Price}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("Prices.Record: upserting %s@%s: %w", point.Ticker, row.Date.Format("2006-01-02"), err)
	}
	return nil
}

// History returns a ticker's price points dated on or after from, ascending.
func (s *Prices) History(ctx context.Context, ticker string, from time.Time) ([]domain.PricePoint, error) {
	var rows []record.PriceRow
	err := s.db.WithContext(ctx).
		Where("ticker = ? AND date >= ?", ticker, from).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("Prices.History: %w", err)
	}

	points := make([]domain.PricePoint, 0, len(rows))
	for i := range rows {
		price, err := decimal.NewFromString(rows[i].Price)
		if err != nil {
			return nil, fmt.Errorf("Prices.History: parsing price %q: %w", rows[i].Price, err)
		}
		points = append(points, domain.PricePoint{
			Ticker: rows[i].Ticker,
			Date:   rows[i].Date,
			Price:  price,
		})
	}
	return points, nil
}

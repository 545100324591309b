package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/mapper"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Balances reads the append-only snapshot history. Snapshots are written
// only by the account store's update side effect; nothing here mutates them.
type Balances struct {
	db    *gorm.DB
	codec *crypto.Codec
}

// ListForAccount returns an account's snapshots in ascending date order.
func (s *Balances) ListForAccount(ctx context.Context, accountID string) ([]*domain.Balance, error) {
	var rows []record.BalanceRow
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("Balances.ListForAccount: %w", err)
	}
	return s.decryptAll(rows)
}

// LatestOnOrBefore returns the most recent snapshot for an account dated on
// or before the cutoff, or nil if the account has none that early.
func (s *Balances) LatestOnOrBefore(ctx context.Context, accountID string, cutoff time.Time) (*domain.Balance, error) {
	var row record.BalanceRow
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND date <= ?", accountID, cutoff).
		Order("date DESC").
		First(&row).Error
	if err != nil {
		if record.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("Balances.LatestOnOrBefore: %w", err)
	}
	return mapper.DecryptBalance(s.codec, &row)
}

// ListThrough returns every snapshot dated on or before the cutoff, across
// all accounts, in ascending date order. The history reconstruction walks
// this once instead of issuing one query per account per month.
func (s *Balances) ListThrough(ctx context.Context, cutoff time.Time) ([]*domain.Balance, error) {
	var rows []record.BalanceRow
	err := s.db.WithContext(ctx).
		Where("date <= ?", cutoff).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("Balances.ListThrough: %w", err)
	}
	return s.decryptAll(rows)
}

func (s *Balances) decryptAll(rows []record.BalanceRow) ([]*domain.Balance, error) {
	out := make([]*domain.Balance, 0, len(rows))
	for i := range rows {
		b, err := mapper.DecryptBalance(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Balances: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}

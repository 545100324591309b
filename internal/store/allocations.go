package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/mapper"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Allocations stores target allocation percentages, keyed by
// (scope, asset class) where a nil account id means portfolio-wide. Callers
// own the invariant that targets within one scope sum to 100.
type Allocations struct {
	db    *gorm.DB
	codec *crypto.Codec
}

// Set creates or replaces the target for one (scope, asset class) pair. The
// portfolio-wide scope is a NULL account id, which sqlite's unique index
// treats as distinct per row, so this is an update-then-insert in one
// transaction rather than an ON CONFLICT upsert.
func (s *Allocations) Set(ctx context.Context, in domain.TargetAllocationInput) (*domain.TargetAllocation, error) {
	row, err := mapper.EncryptTargetAllocation(s.codec, in)
	if err != nil {
		return nil, fmt.Errorf("Allocations.Set: %w", err)
	}
	row.ID = uuid.NewString()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&record.TargetAllocationRow{}).Where("asset_class = ?", in.AssetClass)
		if in.AccountID == nil {
			q = q.Where("account_id IS NULL")
		} else {
			q = q.Where("account_id = ?", *in.AccountID)
		}
		res := q.Update("target_pct_enc", row.TargetPctEnc)
		if res.Error != nil {
			return fmt.Errorf("Allocations.Set: updating: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("Allocations.Set: inserting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.get(ctx, in.AccountID, in.AssetClass)
}

// List returns the targets for one scope: portfolio-wide when accountID is
// nil, account-scoped otherwise.
func (s *Allocations) List(ctx context.Context, accountID *string) ([]*domain.TargetAllocation, error) {
	q := s.db.WithContext(ctx).Model(&record.TargetAllocationRow{})
	if accountID == nil {
		q = q.Where("account_id IS NULL")
	} else {
		q = q.Where("account_id = ?", *accountID)
	}

	var rows []record.TargetAllocationRow
	if err := q.Order("asset_class ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("Allocations.List: %w", err)
	}

	targets := make([]*domain.TargetAllocation, 0, len(rows))
	for i := range rows {
		ta, err := mapper.DecryptTargetAllocation(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Allocations.List: %w", err)
		}
		targets = append(targets, ta)
	}
	return targets, nil
}

// Delete removes one target. Returns false if no such target exists.
func (s *Allocations) Delete(ctx context.Context, accountID *string, assetClass string) (bool, error) {
	q := s.db.WithContext(ctx).Where("asset_class = ?", assetClass)
	if accountID == nil {
		q = q.Where("account_id IS NULL")
	} else {
		q = q.Where("account_id = ?", *accountID)
	}
	res := q.Delete(&record.TargetAllocationRow{})
	if res.Error != nil {
		return false, fmt.Errorf("Allocations.Delete: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Allocations) get(ctx context.Context, accountID *string, assetClass string) (*domain.TargetAllocation, error) {
	q := s.db.WithContext(ctx).Where("asset_class = ?", assetClass)
	if accountID == nil {
		q = q.Where("account_id IS NULL")
	} else {
		q = q.Where("account_id = ?", *accountID)
	}

	var row record.TargetAllocationRow
	if err := q.First(&row).Error; err != nil {
		return nil, fmt.Errorf("Allocations.get: %w", err)
	}
	return mapper.DecryptTargetAllocation(s.codec, &row)
}

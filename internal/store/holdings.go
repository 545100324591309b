package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/mapper"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Holdings is the entity store for investment positions.
type Holdings struct {
	db    *gorm.DB
	codec *crypto.Codec
	log   zerolog.Logger
}

// Create persists a new holding, assigning its id and the next sort order.
func (s *Holdings) Create(ctx context.Context, in domain.HoldingInput) (*domain.Holding, error) {
	row, err := mapper.EncryptHoldingForCreate(s.codec, in)
	if err != nil {
		return nil, fmt.Errorf("Holdings.Create: %w", err)
	}
	row.ID = uuid.NewString()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextSortOrder(tx, record.HoldingRow{}.TableName())
		if err != nil {
			return fmt.Errorf("Holdings.Create: %w", err)
		}
		row.SortOrder = next
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("Holdings.Create: inserting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("holding_id", row.ID).Str("account_id", row.AccountID).Msg("holding created")
	return mapper.DecryptHolding(s.codec, row)
}

// Get returns the holding with the given id, or nil if it does not exist.
func (s *Holdings) Get(ctx context.Context, id string) (*domain.Holding, error) {
	var row record.HoldingRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if record.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("Holdings.Get: %w", err)
	}
	return mapper.DecryptHolding(s.codec, &row)
}

// List returns holdings matching the filter, ordered by sort order.
func (s *Holdings) List(ctx context.Context, filter domain.HoldingFilter) ([]*domain.Holding, error) {
	q := s.db.WithContext(ctx).Model(&record.HoldingRow{})
	if filter.AccountID != nil {
		q = q.Where("account_id = ?", *filter.AccountID)
	}
	if filter.AssetClass != nil {
		q = q.Where("asset_class = ?", *filter.AssetClass)
	}

	var rows []record.HoldingRow
	if err := q.Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("Holdings.List: %w", err)
	}

	holdings := make([]*domain.Holding, 0, len(rows))
	for i := range rows {
		h, err := mapper.DecryptHolding(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Holdings.List: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// Update applies a partial update and returns the updated holding, or nil if
// the id does not exist.
func (s *Holdings) Update(ctx context.Context, id string, patch domain.HoldingPatch) (*domain.Holding, error) {
	updates, err := mapper.EncryptHoldingPatch(s.codec, patch)
	if err != nil {
		return nil, fmt.Errorf("Holdings.Update: %w", err)
	}

	var updated *record.HoldingRow
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row record.HoldingRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if record.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("Holdings.Update: loading: %w", err)
		}

		if len(updates) > 0 {
			if err := tx.Model(&record.HoldingRow{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("Holdings.Update: applying: %w", err)
			}
		}

		var fresh record.HoldingRow
		if err := tx.First(&fresh, "id = ?", id).Error; err != nil {
			return fmt.Errorf("Holdings.Update: reloading: %w", err)
		}
		updated = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	return mapper.DecryptHolding(s.codec, updated)
}

// Delete removes a holding. Returns false if the id does not exist.
func (s *Holdings) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&record.HoldingRow{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("Holdings.Delete: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Reorder applies a batch of position changes atomically.
func (s *Holdings) Reorder(ctx context.Context, order []domain.SortUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range order {
			res := tx.Model(&record.HoldingRow{}).Where("id = ?", u.ID).Update("sort_order", u.SortOrder)
			if res.Error != nil {
				return fmt.Errorf("Holdings.Reorder: updating %s: %w", u.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("Holdings.Reorder: holding %s not found", u.ID)
			}
		}
		return nil
	})
}

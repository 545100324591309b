package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/mapper"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Accounts is the entity store for financial accounts. Balance changes made
// through Update produce append-only Balance snapshots in the same
// transaction as the update itself.
type Accounts struct {
	db    *gorm.DB
	codec *crypto.Codec
	log   zerolog.Logger
}

// Create persists a new account, assigning its id and the next sort order.
func (s *Accounts) Create(ctx context.Context, in domain.AccountInput) (*domain.Account, error) {
	row, err := mapper.EncryptAccountForCreate(s.codec, in)
	if err != nil {
		return nil, fmt.Errorf("Accounts.Create: %w", err)
	}
	row.ID = uuid.NewString()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextSortOrder(tx, record.AccountRow{}.TableName())
		if err != nil {
			return fmt.Errorf("Accounts.Create: %w", err)
		}
		row.SortOrder = next
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("Accounts.Create: inserting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("account_id", row.ID).Int("sort_order", row.SortOrder).Msg("account created")
	return mapper.DecryptAccount(s.codec, row)
}

// Get returns the account with the given id, or nil if it does not exist.
func (s *Accounts) Get(ctx context.Context, id string) (*domain.Account, error) {
	var row record.AccountRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if record.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("Accounts.Get: %w", err)
	}
	return mapper.DecryptAccount(s.codec, &row)
}

// List returns accounts matching the filter, ordered by sort order. Only
// plaintext columns are filterable; matching on sensitive values would
// require decrypting the full table and is not offered here.
func (s *Accounts) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	q := s.db.WithContext(ctx).Model(&record.AccountRow{})
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}

	var rows []record.AccountRow
	if err := q.Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("Accounts.List: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for i := range rows {
		acc, err := mapper.DecryptAccount(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Accounts.List: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// Update applies a partial update and returns the updated account, or nil if
// the id does not exist. When the patch changes the stored balance, a
// Balance snapshot dated now is inserted in the same transaction; the
// comparison runs against the balance read inside that transaction, so a
// concurrent update cannot make the snapshot decision stale. Updating the
// balance to its current value inserts nothing.
func (s *Accounts) Update(ctx context.Context, id string, patch domain.AccountPatch) (*domain.Account, error) {
	var updated *record.AccountRow

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row record.AccountRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if record.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("Accounts.Update: loading: %w", err)
		}

		updates, err := mapper.EncryptAccountPatch(s.codec, patch)
		if err != nil {
			return fmt.Errorf("Accounts.Update: %w", err)
		}

		if patch.CurrentBalance.Provided && patch.CurrentBalance.Value != nil {
			prev, err := s.codec.DecryptNumber(row.CurrentBalanceEnc)
			if err != nil {
				return fmt.Errorf("Accounts.Update: decrypting previous balance: %w", err)
			}
			if !prev.Equal(*patch.CurrentBalance.Value) {
				if err := insertSnapshot(tx, s.codec, row.ID, *patch.CurrentBalance.Value); err != nil {
					return fmt.Errorf("Accounts.Update: %w", err)
				}
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&record.AccountRow{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("Accounts.Update: applying: %w", err)
			}
		}

		var fresh record.AccountRow
		if err := tx.First(&fresh, "id = ?", id).Error; err != nil {
			return fmt.Errorf("Accounts.Update: reloading: %w", err)
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
	return mapper.DecryptAccount(s.codec, updated)
}

// SetBalanceOnly updates the stored balance without recording a snapshot.
// Bulk and import flows use it when history is loaded separately. Returns
// false if the account does not exist.
func (s *Accounts) SetBalanceOnly(ctx context.Context, id string, balance decimal.Decimal) (bool, error) {
	enc, err := s.codec.EncryptNumber(balance)
	if err != nil {
		return false, fmt.Errorf("Accounts.SetBalanceOnly: %w", err)
	}
	res := s.db.WithContext(ctx).Model(&record.AccountRow{}).Where("id = ?", id).
		Update("current_balance_enc", enc)
	if res.Error != nil {
		return false, fmt.Errorf("Accounts.SetBalanceOnly: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes an account. Returns false if the id does not exist.
func (s *Accounts) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&record.AccountRow{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("Accounts.Delete: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Reorder applies a batch of position changes atomically. Any unknown id
// rolls back the whole batch.
func (s *Accounts) Reorder(ctx context.Context, order []domain.SortUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range order {
			res := tx.Model(&record.AccountRow{}).Where("id = ?", u.ID).Update("sort_order", u.SortOrder)
			if res.Error != nil {
				return fmt.Errorf("Accounts.Reorder: updating %s: %w", u.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("Accounts.Reorder: account %s not found", u.ID)
			}
		}
		return nil
	})
}

// insertSnapshot appends one balance snapshot inside the caller's
// transaction.
func insertSnapshot(tx *gorm.DB, codec *crypto.Codec, accountID string, balance decimal.Decimal) error {
	enc, err := codec.EncryptNumber(balance)
	if err != nil {
		return fmt.Errorf("insertSnapshot: %w", err)
	}
	snap := &record.BalanceRow{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		BalanceEnc: enc,
		Date:       time.Now().UTC(),
	}
	if err := tx.Create(snap).Error; err != nil {
		return fmt.Errorf("insertSnapshot: inserting: %w", err)
	}
	return nil
}

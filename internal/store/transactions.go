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

// Transactions is the entity store for money movements.
type Transactions struct {
	db    *gorm.DB
	codec *crypto.Codec
}

// Create persists a new transaction.
func (s *Transactions) Create(ctx context.Context, in domain.TransactionInput) (*domain.Transaction, error) {
	row, err := mapper.EncryptTransactionForCreate(s.codec, in)
	if err != nil {
		return nil, fmt.Errorf("Transactions.Create: %w", err)
	}
	row.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("Transactions.Create: inserting: %w", err)
	}
	return mapper.DecryptTransaction(s.codec, row)
}

// Get returns the transaction with the given id, or nil if it does not
// exist.
func (s *Transactions) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	var row record.TransactionRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if record.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("Transactions.Get: %w", err)
	}
	return mapper.DecryptTransaction(s.codec, &row)
}

// List returns transactions matching the filter in ascending date order.
// Date and category are plaintext columns; amounts only exist decrypted in
// memory.
func (s *Transactions) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	q := s.db.WithContext(ctx).Model(&record.TransactionRow{})
	if filter.AccountID != nil {
		q = q.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date < ?", *filter.To)
	}

	var rows []record.TransactionRow
	if err := q.Order("date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("Transactions.List: %w", err)
	}

	txns := make([]*domain.Transaction, 0, len(rows))
	for i := range rows {
		t, err := mapper.DecryptTransaction(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Transactions.List: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// Delete removes a transaction. Returns false if the id does not exist.
func (s *Transactions) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&record.TransactionRow{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("Transactions.Delete: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

package mapper

import (
	"fmt"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/record"
)

// EncryptTransactionForCreate builds a persisted transaction row from
// plaintext input.
func EncryptTransactionForCreate(c *crypto.Codec, in domain.TransactionInput) (*record.TransactionRow, error) {
	amountEnc, err := c.EncryptNumber(in.Amount)
	if err != nil {
		return nil, fmt.Errorf("EncryptTransactionForCreate: amount: %w", err)
	}
	descEnc, err := c.EncryptStringPtr(in.Description)
	if err != nil {
		return nil, fmt.Errorf("EncryptTransactionForCreate: description: %w", err)
	}

	return &record.TransactionRow{
		AccountID:      in.AccountID,
		Date:           in.Date,
		AmountEnc:      amountEnc,
		DescriptionEnc: descEnc,
		Category:       in.Category,
	}, nil
}

// DecryptTransaction rebuilds the plaintext domain object from a persisted
// row.
func DecryptTransaction(c *crypto.Codec, row *record.TransactionRow) (*domain.Transaction, error) {
	amount, err := c.DecryptNumber(row.AmountEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptTransaction: amount: %w", err)
	}
	desc, err := c.DecryptStringPtr(row.DescriptionEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptTransaction: description: %w", err)
	}

	return &domain.Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Date:        row.Date,
		Amount:      amount,
		Description: desc,
		Category:    row.Category,
		CreatedAt:   row.CreatedAt,
	}, nil
}

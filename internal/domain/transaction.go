package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one dated money movement. The amount and description are
// stored encrypted; the category is a plaintext label so listings can group
// without decrypting (the amounts themselves still decrypt in memory before
// any summation).
//
// Sign convention: spending is negative, income positive.
type Transaction struct {
	ID          string
	AccountID   *string
	Date        time.Time
	Amount      decimal.Decimal
	Description *string
	Category    string
	CreatedAt   time.Time
}

// TransactionInput is the validated plaintext payload for recording a
// transaction.
type TransactionInput struct {
	AccountID   *string
	Date        time.Time
	Amount      decimal.Decimal
	Description *string
	Category    string
}

// TransactionFilter narrows transaction listings on plaintext columns.
type TransactionFilter struct {
	AccountID *string
	Category  *string
	From      *time.Time
	To        *time.Time
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account for net-worth math and list filtering.
type AccountType string

const (
	AccountChecking         AccountType = "checking"
	AccountSavings          AccountType = "savings"
	AccountHighYieldSavings AccountType = "high_yield_savings"
	AccountCredit           AccountType = "credit"
	AccountInvestment       AccountType = "investment"
	AccountLoan             AccountType = "loan"
	AccountRealEstate       AccountType = "real_estate"
	AccountOther            AccountType = "other"
)

// IsLiability reports whether balances of this account type count against
// net worth.
func (t AccountType) IsLiability() bool {
	return t == AccountCredit || t == AccountLoan
}

// Account is the decrypted domain view of a financial account. Name,
// Institution, CurrentBalance, EstimatedValue, InterestRate and AccountNumber
// are stored encrypted; everything else is plaintext in the row.
type Account struct {
	ID                       string
	Name                     string
	Type                     AccountType
	Institution              string
	CurrentBalance           decimal.Decimal
	EstimatedValue           *decimal.Decimal
	InterestRate             *decimal.Decimal
	AccountNumber            *string
	IsActive                 bool
	IsFavorite               bool
	ExcludeFromIncomeSources bool
	DTIPercentage            float64
	SortOrder                int
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// AccountInput is the validated plaintext payload for creating an account.
// ID and SortOrder are assigned by the store.
type AccountInput struct {
	Name                     string
	Type                     AccountType
	Institution              string
	CurrentBalance           decimal.Decimal
	EstimatedValue           *decimal.Decimal
	InterestRate             *decimal.Decimal
	AccountNumber            *string
	IsActive                 bool
	IsFavorite               bool
	ExcludeFromIncomeSources bool
	DTIPercentage            float64
}

// AccountPatch is a partial update. Unprovided fields are left untouched.
type AccountPatch struct {
	Name                     Field[string]
	Type                     Field[AccountType]
	Institution              Field[string]
	CurrentBalance           Field[decimal.Decimal]
	EstimatedValue           Field[decimal.Decimal]
	InterestRate             Field[decimal.Decimal]
	AccountNumber            Field[string]
	IsActive                 Field[bool]
	IsFavorite               Field[bool]
	ExcludeFromIncomeSources Field[bool]
	DTIPercentage            Field[float64]
}

// AccountFilter narrows account listings. Only plaintext columns may be
// filtered; sensitive values cannot be matched at the storage layer.
type AccountFilter struct {
	IsActive *bool
	Type     *AccountType
}

// Balance is one append-only snapshot of an account's balance, written when
// the stored balance actually changes. Snapshots are the only historical
// record the net-worth reconstruction has.
type Balance struct {
	ID        string
	AccountID string
	Balance   decimal.Decimal
	Date      time.Time
}

// SortUpdate assigns one entity its new position in a reorder batch.
type SortUpdate struct {
	ID        string
	SortOrder int
}

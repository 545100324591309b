package record

import "time"

// Columns with the Enc suffix hold codec output (base64 nonce+ciphertext).
// Optional sensitive attributes are nullable *string columns that are always
// written: NULL means the attribute is absent, never that it was skipped.
// No Enc column may appear in a WHERE or ORDER BY — ciphertext is
// non-deterministic, so equality and order there are meaningless.

// AccountRow is the persisted shape of an account.
type AccountRow struct {
	ID                       string  `gorm:"primaryKey;size:36"`
	NameEnc                  string  `gorm:"column:name_enc;not null"`
	Type                     string  `gorm:"size:32;not null;index"`
	InstitutionEnc           string  `gorm:"column:institution_enc;not null"`
	CurrentBalanceEnc        string  `gorm:"column:current_balance_enc;not null"`
	EstimatedValueEnc        *string `gorm:"column:estimated_value_enc"`
	InterestRateEnc          *string `gorm:"column:interest_rate_enc"`
	AccountNumberEnc         *string `gorm:"column:account_number_enc"`
	IsActive                 bool    `gorm:"index"`
	IsFavorite               bool
	ExcludeFromIncomeSources bool
	DTIPercentage            float64 `gorm:"column:dti_percentage"`
	SortOrder                int     `gorm:"not null"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName overrides the default pluralization.
func (AccountRow) TableName() string { return "accounts" }

// BalanceRow is one append-only balance snapshot.
type BalanceRow struct {
	ID         string `gorm:"primaryKey;size:36"`
	AccountID  string `gorm:"size:36;not null;index:idx_balances_account_date"`
	BalanceEnc string `gorm:"column:balance_enc;not null"`
	Date       time.Time `gorm:"not null;index:idx_balances_account_date"`
	CreatedAt  time.Time
}

func (BalanceRow) TableName() string { return "balances" }

// GoalRow is the persisted shape of a goal.
type GoalRow struct {
	ID                     string  `gorm:"primaryKey;size:36"`
	NameEnc                string  `gorm:"column:name_enc;not null"`
	Type                   string  `gorm:"size:32;not null;index"`
	TargetAmountEnc        string  `gorm:"column:target_amount_enc;not null"`
	CurrentAmountEnc       *string `gorm:"column:current_amount_enc"`
	TargetDateEnc          *string `gorm:"column:target_date_enc"`
	StartDate              *time.Time
	StartAmountEnc         *string `gorm:"column:start_amount_enc"`
	Priority               int
	AccountIDsEnc          *string `gorm:"column:account_ids_enc"`
	ExtraPaymentEnc        *string `gorm:"column:extra_payment_enc"`
	MonthlyContributionEnc *string `gorm:"column:monthly_contribution_enc"`
	NotesEnc               *string `gorm:"column:notes_enc"`
	IsActive               bool    `gorm:"index"`
	IsCompleted            bool    `gorm:"index"`
	CompletedAt            *time.Time
	SortOrder              int `gorm:"not null"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (GoalRow) TableName() string { return "goals" }

// HoldingRow is the persisted shape of an investment position.
type HoldingRow struct {
	ID              string  `gorm:"primaryKey;size:36"`
	AccountID       string  `gorm:"size:36;not null;index"`
	NameEnc         string  `gorm:"column:name_enc;not null"`
	TickerEnc       *string `gorm:"column:ticker_enc"`
	SharesEnc       *string `gorm:"column:shares_enc"`
	CostBasisEnc    *string `gorm:"column:cost_basis_enc"`
	CurrentPriceEnc *string `gorm:"column:current_price_enc"`
	AssetClass      string  `gorm:"size:32;not null;index"`
	NotesEnc        *string `gorm:"column:notes_enc"`
	SortOrder       int     `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (HoldingRow) TableName() string { return "holdings" }

// TargetAllocationRow is one target percentage, portfolio-wide when
// AccountID is NULL. One row per (scope, asset class).
type TargetAllocationRow struct {
	ID           string  `gorm:"primaryKey;size:36"`
	AccountID    *string `gorm:"size:36;uniqueIndex:idx_target_scope_class"`
	AssetClass   string  `gorm:"size:32;not null;uniqueIndex:idx_target_scope_class"`
	TargetPctEnc string  `gorm:"column:target_pct_enc;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (TargetAllocationRow) TableName() string { return "target_allocations" }

// BillRow is the persisted shape of a recurring bill.
type BillRow struct {
	ID         string `gorm:"primaryKey;size:36"`
	NameEnc    string `gorm:"column:name_enc;not null"`
	AmountEnc  string `gorm:"column:amount_enc;not null"`
	Frequency  string `gorm:"size:16;not null"`
	DueDay     *int
	DueMonth   *int
	DueWeekday *int
	IsActive   bool `gorm:"index"`
	NotesEnc   *string `gorm:"column:notes_enc"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (BillRow) TableName() string { return "bills" }

// BillPaymentRow records paid state for one bill occurrence. The compound
// unique index is what makes SetPaymentPaid an upsert instead of a racy
// exists-check plus insert.
type BillPaymentRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	BillID    string    `gorm:"size:36;not null;uniqueIndex:idx_bill_payment_due"`
	DueDate   time.Time `gorm:"not null;uniqueIndex:idx_bill_payment_due"`
	Paid      bool
	PaidAt    *time.Time
	AmountEnc *string `gorm:"column:amount_enc"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BillPaymentRow) TableName() string { return "bill_payments" }

// TransactionRow is the persisted shape of a transaction.
type TransactionRow struct {
	ID             string  `gorm:"primaryKey;size:36"`
	AccountID      *string `gorm:"size:36;index"`
	Date           time.Time `gorm:"not null;index"`
	AmountEnc      string  `gorm:"column:amount_enc;not null"`
	DescriptionEnc *string `gorm:"column:description_enc"`
	Category       string  `gorm:"size:64;index"`
	CreatedAt      time.Time
}

func (TransactionRow) TableName() string { return "transactions" }

// NotificationRow is the persisted shape of a notification rule. The config
// blob references accounts and money thresholds, so it is encrypted whole.
type NotificationRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	Type      string `gorm:"size:32;not null;index"`
	Enabled   bool   `gorm:"index"`
	ConfigEnc string `gorm:"column:config_enc;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificationRow) TableName() string { return "notifications" }

// PriceRow is one dated market price for a ticker (benchmark tickers
// included). Plaintext: public market data carries nothing personal.
type PriceRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Ticker    string    `gorm:"size:16;not null;uniqueIndex:idx_price_ticker_date"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_price_ticker_date"`
	Price     string    `gorm:"not null"` // decimal string
	CreatedAt time.Time
}

func (PriceRow) TableName() string { return "prices" }

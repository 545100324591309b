package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType classifies a savings or payoff goal.
type GoalType string

const (
	GoalSavings    GoalType = "savings"
	GoalDebtPayoff GoalType = "debt_payoff"
	GoalNetWorth   GoalType = "net_worth"
	GoalCustom     GoalType = "custom"
)

// Goal is the decrypted domain view of a goal. Name, amounts, target date,
// linked account ids, extra payment, monthly contribution and notes are
// stored encrypted.
type Goal struct {
	ID                  string
	Name                string
	Type                GoalType
	TargetAmount        decimal.Decimal
	CurrentAmount       *decimal.Decimal
	TargetDate          *time.Time
	StartDate           *time.Time
	StartAmount         *decimal.Decimal
	Priority            int
	AccountIDs          []string
	ExtraPayment        *decimal.Decimal
	MonthlyContribution *decimal.Decimal
	Notes               *string
	IsActive            bool
	IsCompleted         bool
	CompletedAt         *time.Time
	SortOrder           int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// GoalInput is the validated plaintext payload for creating a goal. An empty
// AccountIDs slice is normalized to no association before persisting.
type GoalInput struct {
	Name                string
	Type                GoalType
	TargetAmount        decimal.Decimal
	CurrentAmount       *decimal.Decimal
	TargetDate          *time.Time
	StartDate           *time.Time
	StartAmount         *decimal.Decimal
	Priority            int
	AccountIDs          []string
	ExtraPayment        *decimal.Decimal
	MonthlyContribution *decimal.Decimal
	Notes               *string
	IsActive            bool
	IsCompleted         bool
}

// GoalPatch is a partial update for a goal.
type GoalPatch struct {
	Name                Field[string]
	Type                Field[GoalType]
	TargetAmount        Field[decimal.Decimal]
	CurrentAmount       Field[decimal.Decimal]
	TargetDate          Field[time.Time]
	StartDate           Field[time.Time]
	StartAmount         Field[decimal.Decimal]
	Priority            Field[int]
	AccountIDs          Field[[]string]
	ExtraPayment        Field[decimal.Decimal]
	MonthlyContribution Field[decimal.Decimal]
	Notes               Field[string]
	IsActive            Field[bool]
	IsCompleted         Field[bool]
}

// GoalFilter narrows goal listings on plaintext columns.
type GoalFilter struct {
	IsActive    *bool
	IsCompleted *bool
	Type        *GoalType
}

package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/domain"
)

// Response shapes. Domain structs never marshal directly; these views pin
// the wire field names and add derived values where the UI expects them.

type accountView struct {
	ID                       string           `json:"id"`
	Name                     string           `json:"name"`
	Type                     string           `json:"type"`
	Institution              string           `json:"institution"`
	CurrentBalance           decimal.Decimal  `json:"currentBalance"`
	EstimatedValue           *decimal.Decimal `json:"estimatedValue,omitempty"`
	InterestRate             *decimal.Decimal `json:"interestRate,omitempty"`
	AccountNumber            *string          `json:"accountNumber,omitempty"`
	IsActive                 bool             `json:"isActive"`
	IsFavorite               bool             `json:"isFavorite"`
	ExcludeFromIncomeSources bool             `json:"excludeFromIncomeSources"`
	DTIPercentage            float64          `json:"dtiPercentage"`
	SortOrder                int              `json:"sortOrder"`
	CreatedAt                time.Time        `json:"createdAt"`
	UpdatedAt                time.Time        `json:"updatedAt"`
}

func accountToView(a *domain.Account) accountView {
	return accountView{
		ID:                       a.ID,
		Name:                     a.Name,
		Type:                     string(a.Type),
		Institution:              a.Institution,
		CurrentBalance:           a.CurrentBalance,
		EstimatedValue:           a.EstimatedValue,
		InterestRate:             a.InterestRate,
		AccountNumber:            a.AccountNumber,
		IsActive:                 a.IsActive,
		IsFavorite:               a.IsFavorite,
		ExcludeFromIncomeSources: a.ExcludeFromIncomeSources,
		DTIPercentage:            a.DTIPercentage,
		SortOrder:                a.SortOrder,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}

func accountsToViews(accounts []*domain.Account) []accountView {
	out := make([]accountView, len(accounts))
	for i, a := range accounts {
		out[i] = accountToView(a)
	}
	return out
}

type balanceView struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Date      time.Time       `json:"date"`
}

func balancesToViews(snaps []*domain.Balance) []balanceView {
	out := make([]balanceView, len(snaps))
	for i, b := range snaps {
		out[i] = balanceView{ID: b.ID, AccountID: b.AccountID, Balance: b.Balance, Date: b.Date}
	}
	return out
}

type goalView struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Type                string           `json:"type"`
	TargetAmount        decimal.Decimal  `json:"targetAmount"`
	CurrentAmount       *decimal.Decimal `json:"currentAmount,omitempty"`
	TargetDate          *time.Time       `json:"targetDate,omitempty"`
	StartDate           *time.Time       `json:"startDate,omitempty"`
	StartAmount         *decimal.Decimal `json:"startAmount,omitempty"`
	Priority            int              `json:"priority"`
	AccountIDs          []string         `json:"accountIds,omitempty"`
	ExtraPayment        *decimal.Decimal `json:"extraPayment,omitempty"`
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
	IsActive            bool             `json:"isActive"`
	IsCompleted         bool             `json:"isCompleted"`
	CompletedAt         *time.Time       `json:"completedAt,omitempty"`
	SortOrder           int              `json:"sortOrder"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

func goalToView(g *domain.Goal) goalView {
	return goalView{
		ID:                  g.ID,
		Name:                g.Name,
		Type:                string(g.Type),
		TargetAmount:        g.TargetAmount,
		CurrentAmount:       g.CurrentAmount,
		TargetDate:          g.TargetDate,
		StartDate:           g.StartDate,
		StartAmount:         g.StartAmount,
		Priority:            g.Priority,
		AccountIDs:          g.AccountIDs,
		ExtraPayment:        g.ExtraPayment,
		MonthlyContribution: g.MonthlyContribution,
		Notes:               g.Notes,
		IsActive:            g.IsActive,
		IsCompleted:         g.IsCompleted,
		CompletedAt:         g.CompletedAt,
		SortOrder:           g.SortOrder,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

func goalsToViews(goals []*domain.Goal) []goalView {
	out := make([]goalView, len(goals))
	for i, g := range goals {
		out[i] = goalToView(g)
	}
	return out
}

type holdingView struct {
	ID           string           `json:"id"`
	AccountID    string           `json:"accountId"`
	Name         string           `json:"name"`
	Ticker       *string          `json:"ticker,omitempty"`
	Shares       *decimal.Decimal `json:"shares,omitempty"`
	CostBasis    *decimal.Decimal `json:"costBasis,omitempty"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	AssetClass   string           `json:"assetClass"`
	Notes        *string          `json:"notes,omitempty"`
	MarketValue  *decimal.Decimal `json:"marketValue,omitempty"`
	GainLoss     *decimal.Decimal `json:"gainLoss,omitempty"`
	GainLossPct  *decimal.Decimal `json:"gainLossPct,omitempty"`
	SortOrder    int              `json:"sortOrder"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func holdingToView(h *domain.Holding) holdingView {
	return holdingView{
		ID:           h.ID,
		AccountID:    h.AccountID,
		Name:         h.Name,
		Ticker:       h.Ticker,
		Shares:       h.Shares,
		CostBasis:    h.CostBasis,
		CurrentPrice: h.CurrentPrice,
		AssetClass:   h.AssetClass,
		Notes:        h.Notes,
		MarketValue:  h.MarketValue(),
		GainLoss:     h.GainLoss(),
		GainLossPct:  h.GainLossPct(),
		SortOrder:    h.SortOrder,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func holdingsToViews(holdings []*domain.Holding) []holdingView {
	out := make([]holdingView, len(holdings))
	for i, h := range holdings {
		out[i] = holdingToView(h)
	}
	return out
}

type allocationTargetView struct {
	ID         string          `json:"id"`
	AccountID  *string         `json:"accountId,omitempty"`
	AssetClass string          `json:"assetClass"`
	TargetPct  decimal.Decimal `json:"targetPct"`
}

func allocationTargetsToViews(targets []*domain.TargetAllocation) []allocationTargetView {
	out := make([]allocationTargetView, len(targets))
	for i, t := range targets {
		out[i] = allocationTargetView{ID: t.ID, AccountID: t.AccountID, AssetClass: t.AssetClass, TargetPct: t.TargetPct}
	}
	return out
}

type billView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  string          `json:"frequency"`
	DueDay     *int            `json:"dueDay,omitempty"`
	DueMonth   *int            `json:"dueMonth,omitempty"`
	DueWeekday *int            `json:"dueWeekday,omitempty"`
	IsActive   bool            `json:"isActive"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func billToView(b *domain.Bill) billView {
	return billView{
		ID:         b.ID,
		Name:       b.Name,
		Amount:     b.Amount,
		Frequency:  string(b.Frequency),
		DueDay:     b.DueDay,
		DueMonth:   b.DueMonth,
		DueWeekday: b.DueWeekday,
		IsActive:   b.IsActive,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

type billPaymentView struct {
	ID      string           `json:"id"`
	BillID  string           `json:"billId"`
	DueDate time.Time        `json:"dueDate"`
	Paid    bool             `json:"paid"`
	PaidAt  *time.Time       `json:"paidAt,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}

func billPaymentToView(p *domain.BillPayment) billPaymentView {
	return billPaymentView{ID: p.ID, BillID: p.BillID, DueDate: p.DueDate, Paid: p.Paid, PaidAt: p.PaidAt, Amount: p.Amount}
}

type upcomingBillView struct {
	Bill    billView  `json:"bill"`
	DueDate time.Time `json:"dueDate"`
	Paid    bool      `json:"paid"`
}

type transactionView struct {
	ID          string          `json:"id"`
	AccountID   *string         `json:"accountId,omitempty"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func transactionToView(t *domain.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Date:        t.Date,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
	}
}

type notificationView struct {
	ID        string                    `json:"id"`
	Type      string                    `json:"type"`
	Enabled   bool                      `json:"enabled"`
	Config    domain.NotificationConfig `json:"config"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

func notificationToView(n *domain.Notification) notificationView {
	return notificationView{
		ID:        n.ID,
		Type:      string(n.Type),
		Enabled:   n.Enabled,
		Config:    n.Config,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

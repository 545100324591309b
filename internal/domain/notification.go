package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationType discriminates the concrete config variant a notification
// rule carries. Each type has exactly one config shape; interpreters switch
// exhaustively on the type.
type NotificationType string

const (
	NotificationBillReminder  NotificationType = "bill_reminder"
	NotificationGoalMilestone NotificationType = "goal_milestone"
	NotificationBalanceAlert  NotificationType = "balance_alert"
)

// NotificationConfig is the closed set of per-type notification settings.
// The concrete variant is determined by the notification's Type.
type NotificationConfig interface {
	notificationConfig()
}

// BillReminderConfig fires a reminder some days ahead of a bill's due date.
type BillReminderConfig struct {
	BillID     string `json:"bill_id"`
	DaysBefore int    `json:"days_before"`
}

func (BillReminderConfig) notificationConfig() {}

// GoalMilestoneConfig fires when a goal's progress crosses a percentage
// threshold.
type GoalMilestoneConfig struct {
	GoalID       string          `json:"goal_id"`
	ThresholdPct decimal.Decimal `json:"threshold_pct"`
}

func (GoalMilestoneConfig) notificationConfig() {}

// BalanceAlertConfig fires when an account balance drops below a floor.
type BalanceAlertConfig struct {
	AccountID string          `json:"account_id"`
	Below     decimal.Decimal `json:"below"`
}

func (BalanceAlertConfig) notificationConfig() {}

// Notification is one configured notification rule. The config payload holds
// account/goal references and money thresholds, so it is stored encrypted as
// a unit; Type and Enabled stay plaintext for listing.
type Notification struct {
	ID        string
	Type      NotificationType
	Enabled   bool
	Config    NotificationConfig
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotificationInput is the payload for creating a notification rule. The
// Config variant must match Type.
type NotificationInput struct {
	Type    NotificationType
	Enabled bool
	Config  NotificationConfig
}

// NotificationFilter narrows notification listings on plaintext columns.
type NotificationFilter struct {
	Type    *NotificationType
	Enabled *bool
}

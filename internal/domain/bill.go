package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillFrequency is the recurrence schedule of a bill.
type BillFrequency string

const (
	FrequencyWeekly    BillFrequency = "weekly"
	FrequencyBiweekly  BillFrequency = "biweekly"
	FrequencyMonthly   BillFrequency = "monthly"
	FrequencyQuarterly BillFrequency = "quarterly"
	FrequencyYearly    BillFrequency = "yearly"
)

// Bill is a recurring obligation. Name, amount and notes are stored
// encrypted; the schedule fields are plaintext structure.
type Bill struct {
	ID         string
	Name       string
	Amount     decimal.Decimal
	Frequency  BillFrequency
	DueDay     *int // day of month, for monthly/quarterly/yearly
	DueMonth   *int // month of year, for yearly
	DueWeekday *int // weekday, for weekly/biweekly (time.Weekday numbering)
	IsActive   bool
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NextDueDate returns the first due date strictly after from, derived from
// the frequency fields. Day-of-month values past the end of a month clamp to
// that month's last day.
func (b *Bill) NextDueDate(from time.Time) time.Time {
	switch b.Frequency {
	case FrequencyWeekly, FrequencyBiweekly:
		step := 7
		if b.Frequency == FrequencyBiweekly {
			step = 14
		}
		weekday := int(from.Weekday())
		target := 0
		if b.DueWeekday != nil {
			target = *b.DueWeekday
		}
		days := (target - weekday + 7) % 7
		if days == 0 {
			days = step
		}
		return from.AddDate(0, 0, days)
	case FrequencyYearly:
		month, day := time.January, 1
		if b.DueMonth != nil {
			month = time.Month(*b.DueMonth)
		}
		if b.DueDay != nil {
			day = *b.DueDay
		}
		due := clampedDate(from.Year(), month, day, from.Location())
		if !due.After(from) {
			due = clampedDate(from.Year()+1, month, day, from.Location())
		}
		return due
	case FrequencyQuarterly:
		day := 1
		if b.DueDay != nil {
			day = *b.DueDay
		}
		due := clampedDate(from.Year(), from.Month(), day, from.Location())
		for !due.After(from) {
			y, m, _ := due.AddDate(0, 3, 0).Date()
			due = clampedDate(y, m, day, from.Location())
		}
		return due
	default: // monthly
		day := 1
		if b.DueDay != nil {
			day = *b.DueDay
		}
		due := clampedDate(from.Year(), from.Month(), day, from.Location())
		if !due.After(from) {
			y, m, _ := due.AddDate(0, 1, 0).Date()
			due = clampedDate(y, m, day, from.Location())
		}
		return due
	}
}

// clampedDate builds a date, clamping the day to the month's length instead
// of letting time.Date roll into the next month.
func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// BillInput is the validated plaintext payload for creating a bill.
type BillInput struct {
	Name       string
	Amount     decimal.Decimal
	Frequency  BillFrequency
	DueDay     *int
	DueMonth   *int
	DueWeekday *int
	IsActive   bool
	Notes      *string
}

// BillPatch is a partial update for a bill.
type BillPatch struct {
	Name       Field[string]
	Amount     Field[decimal.Decimal]
	Frequency  Field[BillFrequency]
	DueDay     Field[int]
	DueMonth   Field[int]
	DueWeekday Field[int]
	IsActive   Field[bool]
	Notes      Field[string]
}

// BillPayment records whether one occurrence of a bill was paid. Rows are
// keyed by (BillID, DueDate); toggling paid state upserts the same row, so
// paid→unpaid→paid cycles never trip the uniqueness constraint.
type BillPayment struct {
	ID      string
	BillID  string
	DueDate time.Time
	Paid    bool
	PaidAt  *time.Time
	Amount  *decimal.Decimal
}

// UpcomingBill pairs a bill with its next due date and current paid state.
type UpcomingBill struct {
	Bill    Bill
	DueDate time.Time
	Paid    bool
}

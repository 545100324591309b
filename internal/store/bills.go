package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/mapper"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Bills is the entity store for recurring bills and their per-occurrence
// payment records.
type Bills struct {
	db    *gorm.DB
	codec *crypto.Codec
	log   zerolog.Logger
}

// Create persists a new bill.
func (s *Bills) Create(ctx context.Context, in domain.BillInput) (*domain.Bill, error) {
	row, err := mapper.EncryptBillForCreate(s.codec, in)
	if err != nil {
		return nil, fmt.Errorf("Bills.Create: %w", err)
	}
	row.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("Bills.Create: inserting: %w", err)
	}
	return mapper.DecryptBill(s.codec, row)
}

// Get returns the bill with the given id, or nil if it does not exist.
func (s *Bills) Get(ctx context.Context, id string) (*domain.Bill, error) {
	var row record.BillRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if record.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("Bills.Get: %w", err)
	}
	return mapper.DecryptBill(s.codec, &row)
}

// List returns bills, optionally restricted to active ones.
func (s *Bills) List(ctx context.Context, activeOnly bool) ([]*domain.Bill, error) {
	q := s.db.WithContext(ctx).Model(&record.BillRow{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []record.BillRow
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("Bills.List: %w", err)
	}

	bills := make([]*domain.Bill, 0, len(rows))
	for i := range rows {
		b, err := mapper.DecryptBill(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Bills.List: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// Update applies a partial update and returns the updated bill, or nil if
// the id does not exist.
func (s *Bills) Update(ctx context.Context, id string, patch domain.BillPatch) (*domain.Bill, error) {
	updates, err := mapper.EncryptBillPatch(s.codec, patch)
	if err != nil {
		return nil, fmt.Errorf("Bills.Update: %w", err)
	}

	var updated *record.BillRow
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row record.BillRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if record.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("Bills.Update: loading: %w", err)
		}

		if len(updates) > 0 {
			if err := tx.Model(&record.BillRow{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("Bills.Update: applying: %w", err)
			}
		}

		var fresh record.BillRow
		if err := tx.First(&fresh, "id = ?", id).Error; err != nil {
			return fmt.Errorf("Bills.Update: reloading: %w", err)
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
	return mapper.DecryptBill(s.codec, updated)
}

// Delete removes a bill and its payment records. Returns false if the id
// does not exist.
func (s *Bills) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&record.BillRow{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("Bills.Delete: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		if err := tx.Delete(&record.BillPaymentRow{}, "bill_id = ?", id).Error; err != nil {
			return fmt.Errorf("Bills.Delete: removing payments: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// SetPaymentPaid records the paid state for one bill occurrence, keyed by
// (bill id, due date). It is a single atomic upsert, not an exists-check
// plus insert, so paid→unpaid→paid cycles and concurrent toggles land on
// the same row instead of violating the compound key. Returns nil if the
// bill does not exist.
func (s *Bills) SetPaymentPaid(ctx context.Context, billID string, dueDate time.Time, paid bool, amount *decimal.Decimal) (*domain.BillPayment, error) {
	due := truncateToDay(dueDate)

	amountEnc, err := s.codec.EncryptNumberPtr(amount)
	if err != nil {
		return nil, fmt.Errorf("Bills.SetPaymentPaid: %w", err)
	}

	var paidAt *time.Time
	if paid {
		now := time.Now().UTC()
		paidAt = &now
	}

	var out *record.BillPaymentRow
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill record.BillRow
		if err := tx.First(&bill, "id = ?", billID).Error; err != nil {
			if record.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("Bills.SetPaymentPaid: loading bill: %w", err)
		}

		row := &record.BillPaymentRow{
			ID:        uuid.NewString(),
			BillID:    billID,
			DueDate:   due,
			Paid:      paid,
			PaidAt:    paidAt,
			AmountEnc: amountEnc,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "bill_id"}, {Name: "due_date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"paid":       paid,
				"paid_at":    paidAt,
				"amount_enc": amountEnc,
			}),
		}).Create(row).Error
		if err != nil {
			return fmt.Errorf("Bills.SetPaymentPaid: upserting: %w", err)
		}

		var fresh record.BillPaymentRow
		if err := tx.Where("bill_id = ? AND due_date = ?", billID, due).First(&fresh).Error; err != nil {
			return fmt.Errorf("Bills.SetPaymentPaid: reloading: %w", err)
		}
		out = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return mapper.DecryptBillPayment(s.codec, out)
}

// ListPayments returns a bill's payment records in ascending due-date
// order.
func (s *Bills) ListPayments(ctx context.Context, billID string) ([]*domain.BillPayment, error) {
	var rows []record.BillPaymentRow
	err := s.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("due_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("Bills.ListPayments: %w", err)
	}

	payments := make([]*domain.BillPayment, 0, len(rows))
	for i := range rows {
		p, err := mapper.DecryptBillPayment(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Bills.ListPayments: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// UpcomingDue returns active bills whose next due date falls within the
// horizon, with the paid state of that occurrence.
func (s *Bills) UpcomingDue(ctx context.Context, from time.Time, horizonDays int) ([]*domain.UpcomingBill, error) {
	bills, err := s.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("Bills.UpcomingDue: %w", err)
	}

	limit := from.AddDate(0, 0, horizonDays)
	var upcoming []*domain.UpcomingBill
	for _, b := range bills {
		due := b.NextDueDate(from)
		if due.After(limit) {
			continue
		}

		var payment record.BillPaymentRow
		paid := false
		err := s.db.WithContext(ctx).
			Where("bill_id = ? AND due_date = ?", b.ID, truncateToDay(due)).
			First(&payment).Error
		switch {
		case err == nil:
			paid = payment.Paid
		case record.IsNotFound(err):
			// no payment record yet, unpaid
		default:
			return nil, fmt.Errorf("Bills.UpcomingDue: loading payment: %w", err)
		}

		upcoming = append(upcoming, &domain.UpcomingBill{Bill: *b, DueDate: due, Paid: paid})
	}
	return upcoming, nil
}

// truncateToDay normalizes a due date to UTC midnight so every toggle of the
// same occurrence keys the same row.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

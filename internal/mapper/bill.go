package mapper

import (
	"fmt"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/record"
)

// EncryptBillForCreate builds a persisted bill row from plaintext input.
func EncryptBillForCreate(c *crypto.Codec, in domain.BillInput) (*record.BillRow, error) {
	nameEnc, err := c.EncryptString(in.Name)
	if err != nil {
		return nil, fmt.Errorf("EncryptBillForCreate: name: %w", err)
	}
	amountEnc, err := c.EncryptNumber(in.Amount)
	if err != nil {
		return nil, fmt.Errorf("EncryptBillForCreate: amount: %w", err)
	}
	notesEnc, err := c.EncryptStringPtr(in.Notes)
	if err != nil {
		return nil, fmt.Errorf("EncryptBillForCreate: notes: %w", err)
	}

	return &record.BillRow{
		NameEnc:    nameEnc,
		AmountEnc:  amountEnc,
		Frequency:  string(in.Frequency),
		DueDay:     in.DueDay,
		DueMonth:   in.DueMonth,
		DueWeekday: in.DueWeekday,
		IsActive:   in.IsActive,
		NotesEnc:   notesEnc,
	}, nil
}

// EncryptBillPatch turns a partial bill update into a column map.
func EncryptBillPatch(c *crypto.Codec, p domain.BillPatch) (map[string]any, error) {
	updates := map[string]any{}

	if p.Name.Provided {
		if p.Name.Value == nil {
			return nil, fmt.Errorf("EncryptBillPatch: name cannot be null")
		}
		enc, err := c.EncryptString(*p.Name.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptBillPatch: name: %w", err)
		}
		updates["name_enc"] = enc
	}
	if p.Amount.Provided {
		if p.Amount.Value == nil {
			return nil, fmt.Errorf("EncryptBillPatch: amount cannot be null")
		}
		enc, err := c.EncryptNumber(*p.Amount.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptBillPatch: amount: %w", err)
		}
		updates["amount_enc"] = enc
	}
	if p.Frequency.Provided {
		if p.Frequency.Value == nil {
			return nil, fmt.Errorf("EncryptBillPatch: frequency cannot be null")
		}
		updates["frequency"] = string(*p.Frequency.Value)
	}
	if p.DueDay.Provided {
		updates["due_day"] = p.DueDay.Value
	}
	if p.DueMonth.Provided {
		updates["due_month"] = p.DueMonth.Value
	}
	if p.DueWeekday.Provided {
		updates["due_weekday"] = p.DueWeekday.Value
	}
	if p.IsActive.Provided && p.IsActive.Value != nil {
		updates["is_active"] = *p.IsActive.Value
	}
	if p.Notes.Provided {
		enc, err := c.EncryptStringPtr(p.Notes.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptBillPatch: notes: %w", err)
		}
		updates["notes_enc"] = enc
	}

	return updates, nil
}

// DecryptBill rebuilds the plaintext domain object from a persisted row.
func DecryptBill(c *crypto.Codec, row *record.BillRow) (*domain.Bill, error) {
	name, err := c.DecryptString(row.NameEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptBill: name: %w", err)
	}
	amount, err := c.DecryptNumber(row.AmountEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptBill: amount: %w", err)
	}
	notes, err := c.DecryptStringPtr(row.NotesEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptBill: notes: %w", err)
	}

	return &domain.Bill{
		ID:         row.ID,
		Name:       name,
		Amount:     amount,
		Frequency:  domain.BillFrequency(row.Frequency),
		DueDay:     row.DueDay,
		DueMonth:   row.DueMonth,
		DueWeekday: row.DueWeekday,
		IsActive:   row.IsActive,
		Notes:      notes,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

// DecryptBillPayment rebuilds one bill payment record.
func DecryptBillPayment(c *crypto.Codec, row *record.BillPaymentRow) (*domain.BillPayment, error) {
	amount, err := c.DecryptNumberPtr(row.AmountEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptBillPayment: amount: %w", err)
	}
	return &domain.BillPayment{
		ID:      row.ID,
		BillID:  row.BillID,
		DueDate: row.DueDate,
		Paid:    row.Paid,
		PaidAt:  row.PaidAt,
		Amount:  amount,
	}, nil
}

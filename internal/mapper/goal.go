package mapper

import (
	"fmt"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/record"
)

// EncryptGoalForCreate builds a persisted goal row from plaintext input.
// An empty AccountIDs list normalizes to NULL: no association and an empty
// association are the same absence.
func EncryptGoalForCreate(c *crypto.Codec, in domain.GoalInput) (*record.GoalRow, error) {
	nameEnc, err := c.EncryptString(in.Name)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: name: %w", err)
	}
	targetEnc, err := c.EncryptNumber(in.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: target amount: %w", err)
	}
	currentEnc, err := c.EncryptNumberPtr(in.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: current amount: %w", err)
	}
	targetDateEnc, err := c.EncryptDatePtr(in.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: target date: %w", err)
	}
	startAmountEnc, err := c.EncryptNumberPtr(in.StartAmount)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: start amount: %w", err)
	}
	accountIDsEnc, err := c.EncryptStringListPtr(in.AccountIDs)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: account ids: %w", err)
	}
	extraEnc, err := c.EncryptNumberPtr(in.ExtraPayment)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: extra payment: %w", err)
	}
	monthlyEnc, err := c.EncryptNumberPtr(in.MonthlyContribution)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: monthly contribution: %w", err)
	}
	notesEnc, err := c.EncryptStringPtr(in.Notes)
	if err != nil {
		return nil, fmt.Errorf("EncryptGoalForCreate: notes: %w", err)
	}

	return &record.GoalRow{
		NameEnc:                nameEnc,
		Type:                   string(in.Type),
		TargetAmountEnc:        targetEnc,
		CurrentAmountEnc:       currentEnc,
		TargetDateEnc:          targetDateEnc,
		StartDate:              in.StartDate,
		StartAmountEnc:         startAmountEnc,
		Priority:               in.Priority,
		AccountIDsEnc:          accountIDsEnc,
		ExtraPaymentEnc:        extraEnc,
		MonthlyContributionEnc: monthlyEnc,
		NotesEnc:               notesEnc,
		IsActive:               in.IsActive,
		IsCompleted:            in.IsCompleted,
	}, nil
}

// EncryptGoalPatch turns a partial goal update into a column map. The
// IsCompleted transition is handled by the store, which owns CompletedAt.
func EncryptGoalPatch(c *crypto.Codec, p domain.GoalPatch) (map[string]any, error) {
	updates := map[string]any{}

	if p.Name.Provided {
		if p.Name.Value == nil {
			return nil, fmt.Errorf("EncryptGoalPatch: name cannot be null")
		}
		enc, err := c.EncryptString(*p.Name.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: name: %w", err)
		}
		updates["name_enc"] = enc
	}
	if p.Type.Provided {
		if p.Type.Value == nil {
			return nil, fmt.Errorf("EncryptGoalPatch: type cannot be null")
		}
		updates["type"] = string(*p.Type.Value)
	}
	if p.TargetAmount.Provided {
		if p.TargetAmount.Value == nil {
			return nil, fmt.Errorf("EncryptGoalPatch: target amount cannot be null")
		}
		enc, err := c.EncryptNumber(*p.TargetAmount.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: target amount: %w", err)
		}
		updates["target_amount_enc"] = enc
	}
	if p.CurrentAmount.Provided {
		enc, err := c.EncryptNumberPtr(p.CurrentAmount.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: current amount: %w", err)
		}
		updates["current_amount_enc"] = enc
	}
	if p.TargetDate.Provided {
		enc, err := c.EncryptDatePtr(p.TargetDate.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: target date: %w", err)
		}
		updates["target_date_enc"] = enc
	}
	if p.StartDate.Provided {
		updates["start_date"] = p.StartDate.Value
	}
	if p.StartAmount.Provided {
		enc, err := c.EncryptNumberPtr(p.StartAmount.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: start amount: %w", err)
		}
		updates["start_amount_enc"] = enc
	}
	if p.Priority.Provided && p.Priority.Value != nil {
		updates["priority"] = *p.Priority.Value
	}
	if p.AccountIDs.Provided {
		var ids []string
		if p.AccountIDs.Value != nil {
			ids = *p.AccountIDs.Value
		}
		enc, err := c.EncryptStringListPtr(ids)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: account ids: %w", err)
		}
		updates["account_ids_enc"] = enc
	}
	if p.ExtraPayment.Provided {
		enc, err := c.EncryptNumberPtr(p.ExtraPayment.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: extra payment: %w", err)
		}
		updates["extra_payment_enc"] = enc
	}
	if p.MonthlyContribution.Provided {
		enc, err := c.EncryptNumberPtr(p.MonthlyContribution.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: monthly contribution: %w", err)
		}
		updates["monthly_contribution_enc"] = enc
	}
	if p.Notes.Provided {
		enc, err := c.EncryptStringPtr(p.Notes.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptGoalPatch: notes: %w", err)
		}
		updates["notes_enc"] = enc
	}
	if p.IsActive.Provided && p.IsActive.Value != nil {
		updates["is_active"] = *p.IsActive.Value
	}
	if p.IsCompleted.Provided && p.IsCompleted.Value != nil {
		updates["is_completed"] = *p.IsCompleted.Value
	}

	return updates, nil
}

// DecryptGoal rebuilds the plaintext domain object from a persisted row.
func DecryptGoal(c *crypto.Codec, row *record.GoalRow) (*domain.Goal, error) {
	name, err := c.DecryptString(row.NameEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: name: %w", err)
	}
	target, err := c.DecryptNumber(row.TargetAmountEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: target amount: %w", err)
	}
	current, err := c.DecryptNumberPtr(row.CurrentAmountEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: current amount: %w", err)
	}
	targetDate, err := c.DecryptDatePtr(row.TargetDateEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: target date: %w", err)
	}
	startAmount, err := c.DecryptNumberPtr(row.StartAmountEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: start amount: %w", err)
	}
	accountIDs, err := c.DecryptStringListPtr(row.AccountIDsEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: account ids: %w", err)
	}
	extra, err := c.DecryptNumberPtr(row.ExtraPaymentEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: extra payment: %w", err)
	}
	monthly, err := c.DecryptNumberPtr(row.MonthlyContributionEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: monthly contribution: %w", err)
	}
	notes, err := c.DecryptStringPtr(row.NotesEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptGoal: notes: %w", err)
	}

	return &domain.Goal{
		ID:                  row.ID,
		Name:                name,
		Type:                domain.GoalType(row.Type),
		TargetAmount:        target,
		CurrentAmount:       current,
		TargetDate:          targetDate,
		StartDate:           row.StartDate,
		StartAmount:         startAmount,
		Priority:            row.Priority,
		AccountIDs:          accountIDs,
		ExtraPayment:        extra,
		MonthlyContribution: monthly,
		Notes:               notes,
		IsActive:            row.IsActive,
		IsCompleted:         row.IsCompleted,
		CompletedAt:         row.CompletedAt,
		SortOrder:           row.SortOrder,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}, nil
}

// Package mapper translates between decrypted domain objects and persisted
// row shapes. It is the only package that hands plaintext to the codec or
// ciphertext to the record layer: everything above it sees domain objects,
// everything below it sees opaque columns.
//
// Create mappers fill every sensitive column, writing NULL for absent
// optionals. Patch mappers emit a column map containing only the fields the
// caller explicitly provided, so an omitted field never shows up in the
// UPDATE at all.
package mapper

import (
	"fmt"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/record"
)

// EncryptAccountForCreate builds a persisted account row from plaintext
// input. ID and SortOrder are left for the store to assign.
func EncryptAccountForCreate(c *crypto.Codec, in domain.AccountInput) (*record.AccountRow, error) {
	nameEnc, err := c.EncryptString(in.Name)
	if err != nil {
		return nil, fmt.Errorf("EncryptAccountForCreate: name: %w", err)
	}
	instEnc, err := c.EncryptString(in.Institution)
	if err != nil {
		return nil, fmt.Errorf("EncryptAccountForCreate: institution: %w", err)
	}
	balanceEnc, err := c.EncryptNumber(in.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("EncryptAccountForCreate: current balance: %w", err)
	}
	estEnc, err := c.EncryptNumberPtr(in.EstimatedValue)
	if err != nil {
		return nil, fmt.Errorf("EncryptAccountForCreate: estimated value: %w", err)
	}
	rateEnc, err := c.EncryptNumberPtr(in.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("EncryptAccountForCreate: interest rate: %w", err)
	}
	numberEnc, err := c.EncryptStringPtr(in.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("EncryptAccountForCreate: account number: %w", err)
	}

	return &record.AccountRow{
		NameEnc:                  nameEnc,
		Type:                     string(in.Type),
		InstitutionEnc:           instEnc,
		CurrentBalanceEnc:        balanceEnc,
		EstimatedValueEnc:        estEnc,
		InterestRateEnc:          rateEnc,
		AccountNumberEnc:         numberEnc,
		IsActive:                 in.IsActive,
		IsFavorite:               in.IsFavorite,
		ExcludeFromIncomeSources: in.ExcludeFromIncomeSources,
		DTIPercentage:            in.DTIPercentage,
	}, nil
}

// EncryptAccountPatch turns a partial update into a column map. Required
// fields reject explicit nulls; optional fields map them to NULL columns.
func EncryptAccountPatch(c *crypto.Codec, p domain.AccountPatch) (map[string]any, error) {
	updates := map[string]any{}

	if p.Name.Provided {
		if p.Name.Value == nil {
			return nil, fmt.Errorf("EncryptAccountPatch: name cannot be null")
		}
		enc, err := c.EncryptString(*p.Name.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptAccountPatch: name: %w", err)
		}
		updates["name_enc"] = enc
	}
	if p.Type.Provided {
		if p.Type.Value == nil {
			return nil, fmt.Errorf("EncryptAccountPatch: type cannot be null")
		}
		updates["type"] = string(*p.Type.Value)
	}
	if p.Institution.Provided {
		if p.Institution.Value == nil {
			return nil, fmt.Errorf("EncryptAccountPatch: institution cannot be null")
		}
		enc, err := c.EncryptString(*p.Institution.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptAccountPatch: institution: %w", err)
		}
		updates["institution_enc"] = enc
	}
	if p.CurrentBalance.Provided {
		if p.CurrentBalance.Value == nil {
			return nil, fmt.Errorf("EncryptAccountPatch: current balance cannot be null")
		}
		enc, err := c.EncryptNumber(*p.CurrentBalance.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptAccountPatch: current balance: %w", err)
		}
		updates["current_balance_enc"] = enc
	}
	if p.EstimatedValue.Provided {
		enc, err := c.EncryptNumberPtr(p.EstimatedValue.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptAccountPatch: estimated value: %w", err)
		}
		updates["estimated_value_enc"] = enc
	}
	if p.InterestRate.Provided {
		enc, err := c.EncryptNumberPtr(p.InterestRate.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptAccountPatch: interest rate: %w", err)
		}
		updates["interest_rate_enc"] = enc
	}
	if p.AccountNumber.Provided {
		enc, err := c.EncryptStringPtr(p.AccountNumber.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptAccountPatch: account number: %w", err)
		}
		updates["account_number_enc"] = enc
	}
	if p.IsActive.Provided && p.IsActive.Value != nil {
		updates["is_active"] = *p.IsActive.Value
	}
	if p.IsFavorite.Provided && p.IsFavorite.Value != nil {
		updates["is_favorite"] = *p.IsFavorite.Value
	}
	if p.ExcludeFromIncomeSources.Provided && p.ExcludeFromIncomeSources.Value != nil {
		updates["exclude_from_income_sources"] = *p.ExcludeFromIncomeSources.Value
	}
	if p.DTIPercentage.Provided && p.DTIPercentage.Value != nil {
		updates["dti_percentage"] = *p.DTIPercentage.Value
	}

	return updates, nil
}

// DecryptAccount rebuilds the plaintext domain object from a persisted row.
func DecryptAccount(c *crypto.Codec, row *record.AccountRow) (*domain.Account, error) {
	name, err := c.DecryptString(row.NameEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptAccount: name: %w", err)
	}
	inst, err := c.DecryptString(row.InstitutionEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptAccount: institution: %w", err)
	}
	balance, err := c.DecryptNumber(row.CurrentBalanceEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptAccount: current balance: %w", err)
	}
	est, err := c.DecryptNumberPtr(row.EstimatedValueEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptAccount: estimated value: %w", err)
	}
	rate, err := c.DecryptNumberPtr(row.InterestRateEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptAccount: interest rate: %w", err)
	}
	number, err := c.DecryptStringPtr(row.AccountNumberEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptAccount: account number: %w", err)
	}

	return &domain.Account{
		ID:                       row.ID,
		Name:                     name,
		Type:                     domain.AccountType(row.Type),
		Institution:              inst,
		CurrentBalance:           balance,
		EstimatedValue:           est,
		InterestRate:             rate,
		AccountNumber:            number,
		IsActive:                 row.IsActive,
		IsFavorite:               row.IsFavorite,
		ExcludeFromIncomeSources: row.ExcludeFromIncomeSources,
		DTIPercentage:            row.DTIPercentage,
		SortOrder:                row.SortOrder,
		CreatedAt:                row.CreatedAt,
		UpdatedAt:                row.UpdatedAt,
	}, nil
}

// DecryptBalance rebuilds one balance snapshot.
func DecryptBalance(c *crypto.Codec, row *record.BalanceRow) (*domain.Balance, error) {
	balance, err := c.DecryptNumber(row.BalanceEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptBalance: balance: %w", err)
	}
	return &domain.Balance{
		ID:        row.ID,
		AccountID: row.AccountID,
		Balance:   balance,
		Date:      row.Date,
	}, nil
}

package mapper

import (
	"fmt"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/record"
)

// EncryptHoldingForCreate builds a persisted holding row from plaintext
// input.
func EncryptHoldingForCreate(c *crypto.Codec, in domain.HoldingInput) (*record.HoldingRow, error) {
	nameEnc, err := c.EncryptString(in.Name)
	if err != nil {
		return nil, fmt.Errorf("EncryptHoldingForCreate: name: %w", err)
	}
	tickerEnc, err := c.EncryptStringPtr(in.Ticker)
	if err != nil {
		return nil, fmt.Errorf("EncryptHoldingForCreate: ticker: %w", err)
	}
	sharesEnc, err := c.EncryptNumberPtr(in.Shares)
	if err != nil {
		return nil, fmt.Errorf("EncryptHoldingForCreate: shares: %w", err)
	}
	costEnc, err := c.EncryptNumberPtr(in.CostBasis)
	if err != nil {
		return nil, fmt.Errorf("EncryptHoldingForCreate: cost basis: %w", err)
	}
	priceEnc, err := c.EncryptNumberPtr(in.CurrentPrice)
	if err != nil {
		return nil, fmt.Errorf("EncryptHoldingForCreate: current price: %w", err)
	}
	notesEnc, err := c.EncryptStringPtr(in.Notes)
	if err != nil {
		return nil, fmt.Errorf("EncryptHoldingForCreate: notes: %w", err)
	}

	return &record.HoldingRow{
		AccountID:       in.AccountID,
		NameEnc:         nameEnc,
		TickerEnc:       tickerEnc,
		SharesEnc:       sharesEnc,
		CostBasisEnc:    costEnc,
		CurrentPriceEnc: priceEnc,
		AssetClass:      in.AssetClass,
		NotesEnc:        notesEnc,
	}, nil
}

// EncryptHoldingPatch turns a partial holding update into a column map.
func EncryptHoldingPatch(c *crypto.Codec, p domain.HoldingPatch) (map[string]any, error) {
	updates := map[string]any{}

	if p.Name.Provided {
		if p.Name.Value == nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: name cannot be null")
		}
		enc, err := c.EncryptString(*p.Name.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: name: %w", err)
		}
		updates["name_enc"] = enc
	}
	if p.Ticker.Provided {
		enc, err := c.EncryptStringPtr(p.Ticker.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: ticker: %w", err)
		}
		updates["ticker_enc"] = enc
	}
	if p.Shares.Provided {
		enc, err := c.EncryptNumberPtr(p.Shares.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: shares: %w", err)
		}
		updates["shares_enc"] = enc
	}
	if p.CostBasis.Provided {
		enc, err := c.EncryptNumberPtr(p.CostBasis.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: cost basis: %w", err)
		}
		updates["cost_basis_enc"] = enc
	}
	if p.CurrentPrice.Provided {
		enc, err := c.EncryptNumberPtr(p.CurrentPrice.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: current price: %w", err)
		}
		updates["current_price_enc"] = enc
	}
	if p.AssetClass.Provided {
		if p.AssetClass.Value == nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: asset class cannot be null")
		}
		updates["asset_class"] = *p.AssetClass.Value
	}
	if p.Notes.Provided {
		enc, err := c.EncryptStringPtr(p.Notes.Value)
		if err != nil {
			return nil, fmt.Errorf("EncryptHoldingPatch: notes: %w", err)
		}
		updates["notes_enc"] = enc
	}

	return updates, nil
}

// DecryptHolding rebuilds the plaintext domain object from a persisted row.
// Missing optional columns come back as nil, which leaves the derived
// market-value fields undefined rather than zero.
func DecryptHolding(c *crypto.Codec, row *record.HoldingRow) (*domain.Holding, error) {
	name, err := c.DecryptString(row.NameEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptHolding: name: %w", err)
	}
	ticker, err := c.DecryptStringPtr(row.TickerEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptHolding: ticker: %w", err)
	}
	shares, err := c.DecryptNumberPtr(row.SharesEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptHolding: shares: %w", err)
	}
	cost, err := c.DecryptNumberPtr(row.CostBasisEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptHolding: cost basis: %w", err)
	}
	price, err := c.DecryptNumberPtr(row.CurrentPriceEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptHolding: current price: %w", err)
	}
	notes, err := c.DecryptStringPtr(row.NotesEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptHolding: notes: %w", err)
	}

	return &domain.Holding{
		ID:           row.ID,
		AccountID:    row.AccountID,
		Name:         name,
		Ticker:       ticker,
		Shares:       shares,
		CostBasis:    cost,
		CurrentPrice: price,
		AssetClass:   row.AssetClass,
		Notes:        notes,
		SortOrder:    row.SortOrder,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// EncryptTargetAllocation builds a persisted target-allocation row.
func EncryptTargetAllocation(c *crypto.Codec, in domain.TargetAllocationInput) (*record.TargetAllocationRow, error) {
	pctEnc, err := c.EncryptNumber(in.TargetPct)
	if err != nil {
		return nil, fmt.Errorf("EncryptTargetAllocation: target pct: %w", err)
	}
	return &record.TargetAllocationRow{
		AccountID:    in.AccountID,
		AssetClass:   in.AssetClass,
		TargetPctEnc: pctEnc,
	}, nil
}

// DecryptTargetAllocation rebuilds one target allocation.
func DecryptTargetAllocation(c *crypto.Codec, row *record.TargetAllocationRow) (*domain.TargetAllocation, error) {
	pct, err := c.DecryptNumber(row.TargetPctEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptTargetAllocation: target pct: %w", err)
	}
	return &domain.TargetAllocation{
		ID:         row.ID,
		AccountID:  row.AccountID,
		AssetClass: row.AssetClass,
		TargetPct:  pct,
	}, nil
}

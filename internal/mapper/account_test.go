package mapper

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
)

func testCodec(t *testing.T) *crypto.Codec {
	t.Helper()
	c, err := crypto.New(bytes.Repeat([]byte{0x07}, crypto.KeySize))
	if err != nil {
		t.Fatalf("crypto.New failed: %v", err)
	}
	return c
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func TestAccountRoundTrip(t *testing.T) {
	c := testCodec(t)

	tests := []struct {
		name  string
		input domain.AccountInput
	}{
		{
			name: "all fields",
			input: domain.AccountInput{
				Name:           "Mortgage",
				Type:           domain.AccountRealEstate,
				Institution:    "First National",
				CurrentBalance: dec("300000"),
				EstimatedValue: decPtr("500000"),
				InterestRate:   decPtr("5.25"),
				AccountNumber:  strPtr("****4321"),
				IsActive:       true,
				DTIPercentage:  28.5,
			},
		},
		{
			name: "optionals omitted",
			input: domain.AccountInput{
				Name:           "Everyday Checking",
				Type:           domain.AccountChecking,
				Institution:    "Chase",
				CurrentBalance: dec("1523.77"),
				IsActive:       true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := EncryptAccountForCreate(c, tt.input)
			if err != nil {
				t.Fatalf("EncryptAccountForCreate failed: %v", err)
			}

			got, err := DecryptAccount(c, row)
			if err != nil {
				t.Fatalf("DecryptAccount failed: %v", err)
			}

			if got.Name != tt.input.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.input.Name)
			}
			if got.Institution != tt.input.Institution {
				t.Errorf("Institution = %q, want %q", got.Institution, tt.input.Institution)
			}
			if !got.CurrentBalance.Equal(tt.input.CurrentBalance) {
				t.Errorf("CurrentBalance = %s, want %s", got.CurrentBalance, tt.input.CurrentBalance)
			}
			if (got.EstimatedValue == nil) != (tt.input.EstimatedValue == nil) {
				t.Fatalf("EstimatedValue presence = %v, want %v", got.EstimatedValue != nil, tt.input.EstimatedValue != nil)
			}
			if got.EstimatedValue != nil && !got.EstimatedValue.Equal(*tt.input.EstimatedValue) {
				t.Errorf("EstimatedValue = %s, want %s", got.EstimatedValue, tt.input.EstimatedValue)
			}
			if (got.AccountNumber == nil) != (tt.input.AccountNumber == nil) {
				t.Fatalf("AccountNumber presence = %v, want %v", got.AccountNumber != nil, tt.input.AccountNumber != nil)
			}
			if got.AccountNumber != nil && *got.AccountNumber != *tt.input.AccountNumber {
				t.Errorf("AccountNumber = %q, want %q", *got.AccountNumber, *tt.input.AccountNumber)
			}
		})
	}
}

// Optional sensitive columns must exist on every created row, as NULL when
// absent, never skipped.
func TestAccountCreate_AbsentOptionalsAreNullColumns(t *testing.T) {
	c := testCodec(t)

	row, err := EncryptAccountForCreate(c, domain.AccountInput{
		Name:           "Savings",
		Type:           domain.AccountSavings,
		Institution:    "Ally",
		CurrentBalance: dec("5000"),
	})
	if err != nil {
		t.Fatalf("EncryptAccountForCreate failed: %v", err)
	}

	if row.EstimatedValueEnc != nil {
		t.Errorf("EstimatedValueEnc = %v, want nil", *row.EstimatedValueEnc)
	}
	if row.InterestRateEnc != nil {
		t.Errorf("InterestRateEnc = %v, want nil", *row.InterestRateEnc)
	}
	if row.AccountNumberEnc != nil {
		t.Errorf("AccountNumberEnc = %v, want nil", *row.AccountNumberEnc)
	}
}

func TestAccountPatch_PartialUpdateIsolation(t *testing.T) {
	c := testCodec(t)

	updates, err := EncryptAccountPatch(c, domain.AccountPatch{
		CurrentBalance: domain.Set(dec("999.99")),
	})
	if err != nil {
		t.Fatalf("EncryptAccountPatch failed: %v", err)
	}

	if len(updates) != 1 {
		t.Fatalf("patch produced %d columns %v, want exactly 1", len(updates), updates)
	}
	enc, ok := updates["current_balance_enc"].(string)
	if !ok {
		t.Fatalf("current_balance_enc missing from %v", updates)
	}
	got, err := c.DecryptNumber(enc)
	if err != nil {
		t.Fatalf("DecryptNumber failed: %v", err)
	}
	if !got.Equal(dec("999.99")) {
		t.Errorf("decrypted balance = %s, want 999.99", got)
	}
}

func TestAccountPatch_ExplicitNullClearsOptional(t *testing.T) {
	c := testCodec(t)

	updates, err := EncryptAccountPatch(c, domain.AccountPatch{
		AccountNumber: domain.Null[string](),
	})
	if err != nil {
		t.Fatalf("EncryptAccountPatch failed: %v", err)
	}

	v, present := updates["account_number_enc"]
	if !present {
		t.Fatal("account_number_enc not in update map")
	}
	if ptr, _ := v.(*string); ptr != nil {
		t.Errorf("account_number_enc = %v, want typed nil", v)
	}
}

func TestAccountPatch_RequiredFieldRejectsNull(t *testing.T) {
	c := testCodec(t)

	if _, err := EncryptAccountPatch(c, domain.AccountPatch{Name: domain.Null[string]()}); err == nil {
		t.Error("EncryptAccountPatch allowed null name")
	}
	if _, err := EncryptAccountPatch(c, domain.AccountPatch{CurrentBalance: domain.Null[decimal.Decimal]()}); err == nil {
		t.Error("EncryptAccountPatch allowed null current balance")
	}
}

package store

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/record"
)

// newTestStores wires the full store bundle over a private in-memory
// database and a fixed key.
func newTestStores(t *testing.T) *Stores {
	t.Helper()

	db, err := record.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	if err := record.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	codec, err := crypto.New(bytes.Repeat([]byte{0x2a}, 32))
	if err != nil {
		t.Fatalf("building codec: %v", err)
	}

	return New(db, codec, zerolog.Nop())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

// Package store implements per-entity CRUD over the record repository. Each
// store owns its entity's invariants: sort-order assignment, not-found
// sentinels, and write side effects such as balance snapshots. All
// encryption and decryption happens through the mapper package; nothing in
// here reads or writes a sensitive column directly.
//
// Error contract: "record not found" on get/update/delete is an expected
// absence and comes back as a nil (or false) sentinel with a nil error.
// Every other repository error, and every crypto failure, propagates
// unchanged.
package store

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dvloznov/finance-vault/internal/crypto"
)

// Stores bundles every entity store over one connection and codec, wired
// once at startup.
type Stores struct {
	Accounts      *Accounts
	Balances      *Balances
	Goals         *Goals
	Holdings      *Holdings
	Allocations   *Allocations
	Bills         *Bills
	Transactions  *Transactions
	Notifications *Notifications
	Prices        *Prices
}

// New wires all stores over a shared connection and codec.
func New(db *gorm.DB, codec *crypto.Codec, log zerolog.Logger) *Stores {
	return &Stores{
		Accounts:      &Accounts{db: db, codec: codec, log: log},
		Balances:      &Balances{db: db, codec: codec},
		Goals:         &Goals{db: db, codec: codec, log: log},
		Holdings:      &Holdings{db: db, codec: codec, log: log},
		Allocations:   &Allocations{db: db, codec: codec},
		Bills:         &Bills{db: db, codec: codec, log: log},
		Transactions:  &Transactions{db: db, codec: codec},
		Notifications: &Notifications{db: db, codec: codec},
		Prices:        &Prices{db: db},
	}
}

// nextSortOrder returns max(sort_order)+1 for a table, with an empty table
// yielding 0. Must run inside the same transaction as the insert that uses
// it, so concurrent creates cannot hand out the same position.
func nextSortOrder(tx *gorm.DB, table string) (int, error) {
	var max int
	row := tx.Table(table).Select("COALESCE(MAX(sort_order), -1)").Row()
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("nextSortOrder: scanning max for %s: %w", table, err)
	}
	return max + 1, nil
}

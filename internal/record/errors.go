package record

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsNotFound reports whether err is the repository's "record not found"
// condition. Stores translate this into a sentinel return; every other
// persistence error propagates unchanged.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation. The
// sqlite driver surfaces these as plain errors, so this matches on the
// constraint message the same way it reaches callers.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}

package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKey recognizes unique-constraint violations from mysql, postgres
// and sqlite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

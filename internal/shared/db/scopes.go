package db

import (
	"strings"

	"gorm.io/gorm"
)

// Paginate applies 1-based page/size offsets.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return tx.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// LikeEscape is the ESCAPE clause that goes with ContainsPattern. mysql,
// postgres and sqlite all read '!' as a single character, unlike a backslash.
const LikeEscape = "ESCAPE '!'"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern wraps value for a substring LIKE with its wildcards
// escaped.
func ContainsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// ContainsFold matches column against a case-insensitive substring.
func ContainsFold(column, value string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER("+column+") LIKE LOWER(?) "+LikeEscape, ContainsPattern(value))
	}
}

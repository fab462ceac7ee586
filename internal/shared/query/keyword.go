// Package query normalizes free-text search input.
package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

var folder = cases.Fold()

// NormalizeKeyword narrows full-width characters, trims the result and
// case-folds it so that "ＣＯＺＥ" matches "coze".
func NormalizeKeyword(s string) string {
	s = strings.TrimSpace(width.Fold.String(s))
	if s == "" {
		return ""
	}
	return folder.String(s)
}

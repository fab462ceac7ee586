package cozepackage

import "strings"

const (
	DefaultSortField = "createdAt"
	SortAsc          = "ASC"
	SortDesc         = "DESC"
)

// sortColumns lists the only fields an order listing may be sorted by,
// including the aliases the console front end sends.
var sortColumns = map[string]string{
	"createdAt":            "created_at",
	"updatedAt":            "updated_at",
	"orderNo":              "order_no",
	"totalAmount":          "total_amount",
	"paidAmount":           "paid_amount",
	"actualAmount":         "paid_amount",
	"paidAt":               "paid_at",
	"paymentTime":          "paid_at",
	"packageCurrentPrice":  "package_current_price",
	"packageOriginalPrice": "package_original_price",
}

// SortClause resolves a requested sort into a column and direction. Unknown
// fields fall back to created_at DESC regardless of the requested order.
func SortClause(field, order string) (column, direction string) {
	column, ok := sortColumns[field]
	if !ok {
		return sortColumns[DefaultSortField], SortDesc
	}
	if strings.EqualFold(order, SortAsc) {
		return column, SortAsc
	}
	return column, SortDesc
}

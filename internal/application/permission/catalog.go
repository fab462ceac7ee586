package permission

import "github.com/buildingai/cozepkg/internal/domain/permission"

// Console permission codes. Routes reference these when they are
// registered.
const (
	CodePackageGetConfig = "coze-package:getConfig"
	CodePackageSetConfig = "coze-package:setConfig"

	CodeOrderList       = "coze-package-order:list"
	CodeOrderDetail     = "coze-package-order:detail"
	CodeOrderStatistics = "coze-package-order:statistics"
	CodeOrderRefund     = "coze-package-order:refund"
	CodeOrderExport     = "coze-package-order:export"

	CodeMenuTree = "menu:tree"
)

var catalog = []permission.Definition{
	{Code: CodePackageGetConfig, Name: "View Coze packages", Description: "Access the Coze package menu", Type: permission.TypePlugin},
	{Code: CodePackageSetConfig, Name: "Save Coze packages", Description: "Save the Coze package configuration", Type: permission.TypePlugin},
	{Code: CodeOrderList, Name: "List orders", Description: "View the Coze package order list", Type: permission.TypePlugin},
	{Code: CodeOrderDetail, Name: "View order", Description: "View Coze package order details", Type: permission.TypePlugin},
	{Code: CodeOrderStatistics, Name: "Order statistics", Description: "View Coze package order statistics", Type: permission.TypePlugin},
	{Code: CodeOrderRefund, Name: "Request refund", Description: "Request a refund for a Coze package order", Type: permission.TypePlugin},
	{Code: CodeOrderExport, Name: "Export orders", Description: "Export Coze package order data", Type: permission.TypePlugin},
	{Code: CodeMenuTree, Name: "View menus", Description: "Read the console menu tree", Type: permission.TypeSystem},
}

// Catalog lists every permission the console declares.
func Catalog() []permission.Definition {
	out := make([]permission.Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the declared definition for code.
func Lookup(code string) (permission.Definition, bool) {
	for _, def := range catalog {
		if def.Code == code {
			return def, true
		}
	}
	return permission.Definition{}, false
}

// Definitions returns the declared definitions for codes, in order. Codes
// missing from the catalog are described by their code only.
func Definitions(codes ...string) []permission.Definition {
	out := make([]permission.Definition, 0, len(codes))
	for _, code := range codes {
		def, ok := Lookup(code)
		if !ok {
			def = permission.Definition{Code: code, Name: code, Type: permission.TypeSystem}
		}
		out = append(out, def)
	}
	return out
}

package migration

import (
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/shared/constants"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.DictModel{},
		&models.PermissionModel{},
		&models.MenuModel{},
		&models.PayConfigModel{},
		&models.AIProviderModel{},
		&models.AIModelModel{},
		&models.KeyTemplateModel{},
		&models.PackageConfigModel{},
		&models.OrderModel{},
		&models.PageModel{},
	}
}

var tableModels = map[string]func() interface{}{
	constants.TableUsers:          func() interface{} { return &models.UserModel{} },
	constants.TableDict:           func() interface{} { return &models.DictModel{} },
	constants.TablePermissions:    func() interface{} { return &models.PermissionModel{} },
	constants.TableMenus:          func() interface{} { return &models.MenuModel{} },
	constants.TablePayConfigs:     func() interface{} { return &models.PayConfigModel{} },
	constants.TableAIProviders:    func() interface{} { return &models.AIProviderModel{} },
	constants.TableAIModels:       func() interface{} { return &models.AIModelModel{} },
	constants.TableKeyTemplates:   func() interface{} { return &models.KeyTemplateModel{} },
	constants.TablePackageConfigs: func() interface{} { return &models.PackageConfigModel{} },
	constants.TableOrders:         func() interface{} { return &models.OrderModel{} },
	constants.TablePages:          func() interface{} { return &models.PageModel{} },
}

// ModelForTable returns a fresh model for the named table.
func ModelForTable(name string) (interface{}, bool) {
	fn, ok := tableModels[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

package http

import (
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/aicatalog"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/domain/page"
	"github.com/buildingai/cozepkg/internal/domain/payconfig"
	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/domain/user"
	"github.com/buildingai/cozepkg/internal/infrastructure/repository"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// repositories holds every gorm-backed store.
type repositories struct {
	user          user.Repository
	packageConfig cozepackage.PackageConfigRepository
	order         cozepackage.OrderRepository
	dict          setting.Repository
	payConfig     payconfig.Repository
	permission    permission.PermissionRepository
	menu          menu.Repository
	page          page.Repository
	aiCatalog     aicatalog.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db, log),
		packageConfig: repository.NewPackageConfigRepository(db),
		order:         repository.NewOrderRepository(db, log),
		dict:          repository.NewDictRepository(db, log),
		payConfig:     repository.NewPayConfigRepository(db),
		permission:    repository.NewPermissionRepository(db),
		menu:          repository.NewMenuRepository(db),
		page:          repository.NewPageRepository(db),
		aiCatalog:     repository.NewAICatalogRepository(db),
	}
}

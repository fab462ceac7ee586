package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy for driver: goose scripts on mysql, model
// sync everywhere else.
func NewManager(driver string, log logger.Interface) *Manager {
	var strategy Strategy
	switch driver {
	case config.DriverMySQL:
		strategy = NewGooseStrategy(Scripts, ScriptsDir(driver), driver, log)
	default:
		strategy = NewGormAutoMigrateStrategy(log)
	}
	return NewManagerWithStrategy(strategy, log)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// StrategyDescription describes a strategy by name for `migrate status`.
func StrategyDescription(name string) string {
	switch name {
	case "gorm_auto_migrate":
		return "GORM AutoMigrate - Automatic schema migration based on struct definitions"
	case "golang_migrate":
		return "golang-migrate - Version-controlled SQL migration scripts"
	case "goose":
		return "goose - Embedded SQL migration scripts"
	default:
		return "Unknown migration strategy"
	}
}

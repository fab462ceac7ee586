// Package cmdutil holds the startup steps shared by the CLI commands.
package cmdutil

import (
	"fmt"
	"os"

	"github.com/buildingai/cozepkg/internal/infrastructure/config"
	"github.com/buildingai/cozepkg/internal/infrastructure/database"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flag string) string {
	if v := os.Getenv("ENV"); v != "" {
		return v
	}
	return flag
}

// GinMode maps a deployment environment to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}

// LoadConfig reads the configuration and initializes the logger and the
// business timezone.
func LoadConfig(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
		Debug:      cfg.Server.Mode == "debug",
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// Bootstrap is LoadConfig plus the database connection. Callers close the
// database with database.Close.
func Bootstrap(env string) (*config.Config, logger.Interface, error) {
	cfg, log, err := LoadConfig(env)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

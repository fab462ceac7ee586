package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/buildingai/cozepkg/internal/application/bootstrap"
	"github.com/buildingai/cozepkg/internal/infrastructure/database"
	"github.com/buildingai/cozepkg/internal/infrastructure/migration"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/cmdutil"
	httpRouter "github.com/buildingai/cozepkg/internal/interfaces/http"
	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

var (
	env           string
	autoMigrate   bool
	skipBootstrap bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Run install or upgrade when needed, then serve the console and web APIs.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending SQL migrations before starting (not recommended for production)")
	cmd.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "Skip the install/upgrade check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	env = cmdutil.ResolveEnv(env)

	cfg, log, err := cmdutil.Bootstrap(env)
	if err != nil {
		return err
	}
	defer database.Close()

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if autoMigrate {
		if env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		manager := migration.NewManager(cfg.Database.Driver, log)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, err := httpRouter.NewRouter(ctx, database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer router.Shutdown()
	router.SetupRoutes()

	if !skipBootstrap {
		if degraded := runOrchestrator(ctx, router.NewOrchestrator(false), log); degraded {
			log.Warnw("serving without a complete install or upgrade, check the errors above")
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode,
			"version", router.AppVersion())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

type bootstrapRunner interface {
	Run(ctx context.Context) (bootstrap.Outcome, error)
}

// runOrchestrator installs or upgrades before the listener starts. Failures
// are logged and the server keeps starting; it reports whether the data is
// left incomplete.
func runOrchestrator(ctx context.Context, runner bootstrapRunner, log logger.Interface) bool {
	outcome, err := runner.Run(ctx)
	switch outcome {
	case bootstrap.OutcomeInstallFailed:
		log.Errorw("install failed, the application is not fully initialized", "error", err)
		return true
	case bootstrap.OutcomeUpgradeFailed:
		log.Errorw("upgrade failed, continuing with current data", "error", err)
		return true
	default:
		log.Infow("bootstrap check finished", "outcome", outcome)
		return false
	}
}

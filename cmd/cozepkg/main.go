package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/buildingai/cozepkg/internal/interfaces/cli/configcmd"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/install"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/migrate"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/server"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/upgrade"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cozepkg",
		Short:        "Coze package subscription backend",
		Long:         `cozepkg serves the package admin console and web API, and ships the install, upgrade and migration tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		install.NewCommand(),
		upgrade.NewCommand(),
		configcmd.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

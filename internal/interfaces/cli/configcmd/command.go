// Package configcmd prints the effective configuration.
package configcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/buildingai/cozepkg/internal/infrastructure/config"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/cmdutil"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration tools",
	}
	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML (secrets omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := cmdutil.ResolveEnv(env)
			cfg, err := config.Load(e)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.Server.Mode = cmdutil.GinMode(e)
			return Write(cmd.OutOrStdout(), cfg)
		},
	})
	return cmd
}

// Write encodes cfg as YAML. Fields tagged yaml:"-" never leave the process.
func Write(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

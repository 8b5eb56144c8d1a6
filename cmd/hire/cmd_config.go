package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/willibrandon/hire/internal/config"
)

// newConfigCmd creates the config command group
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(afero.NewOsFs()))
	return cmd
}

// newConfigInitCmd creates the config init subcommand
func newConfigInitCmd(fs afero.Fs) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config.yaml",
		Long: `Write the default configuration, including the full default keymap, to
--config or <user config dir>/hire/config.yaml. An existing file is kept
unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return fmt.Errorf("cannot locate config directory: %w", err)
				}
				path = p
			}

			if err := config.WriteDefault(fs, path, force); err != nil {
				return fmt.Errorf("config init: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), goodFormat("Wrote "+path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

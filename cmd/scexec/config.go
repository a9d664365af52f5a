// cmd/scexec/config.go
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/scexec/internal/config"
	"github.com/altuslabsxyz/scexec/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out.IsJSON() {
				return output.PrintJSON(out.Writer(), cfg)
			}
			if cfg.ConfigFilePath != "" {
				out.Info("Config file: %s", cfg.ConfigFilePath)
			} else {
				out.Info("Config file: (none)")
			}
			cfg.ToTable(out.Writer())
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file to the home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := config.NewConfigWriter(cfg.Home.Value)
			if w.Exists() && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", w.Path())
			}

			gateway := cfg.GatewayURL.Value
			hrp := cfg.HRP.Value
			fc := &config.FileConfig{GatewayURL: &gateway, HRP: &hrp}
			if cfg.PEM.Value != "" {
				pem := cfg.PEM.Value
				fc.PEM = &pem
			}
			if err := w.Write(fc); err != nil {
				return err
			}

			fmt.Fprintf(out.Writer(), "%s Config written to %s\n", color.GreenString("✓"), w.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

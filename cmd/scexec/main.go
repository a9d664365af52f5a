// cmd/scexec/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/scexec/internal/config"
	"github.com/altuslabsxyz/scexec/internal/output"
	"github.com/altuslabsxyz/scexec/internal/version"
	"github.com/altuslabsxyz/scexec/pkg/network"
)

var (
	cfg    *config.EffectiveConfig
	out    *output.Logger
	logger *slog.Logger

	// interactorFactory replaces the gateway interactor when set (tests).
	interactorFactory network.InteractorFactory
)

type globalFlags struct {
	configPath string
	home       string
	gateway    string
	pem        string
	hrp        string
	history    string
	verbose    bool
	noColor    bool
	json       bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:   "scexec",
		Short: "Smart contract executor",
		Long: `scexec calls and deploys smart contracts through a chain gateway.

Calls are normalized into the exact transaction payload, signed with a PEM wallet,
submitted and awaited until final. The VM return data is decoded and every call is
recorded in a local history journal. Use --dry-run to print the transaction without
sending it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, &g)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default: ./scexec.toml, then <home>/config.toml)")
	pf.StringVar(&g.home, "home", "", "Home directory (default: ~/.scexec)")
	pf.StringVar(&g.gateway, "gateway", "", "Gateway URL")
	pf.StringVar(&g.pem, "pem", "", "PEM wallet used for signing")
	pf.StringVar(&g.hrp, "hrp", "", "Bech32 address prefix")
	pf.StringVar(&g.history, "history", "", "History database path")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&g.json, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		newCallCmd(),
		newDeployCmd(),
		newAddressCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		version.NewCmd("scexec"),
	)

	return rootCmd
}

// setup resolves the effective configuration (default < file < env < flag) and
// builds the loggers.
func setup(cmd *cobra.Command, g *globalFlags) error {
	out = output.NewLoggerWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	home := g.home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		home = filepath.Join(h, ".scexec")
	}

	fileCfg, path, err := config.NewConfigLoader(home, g.configPath, out).LoadFileConfig()
	if err != nil {
		return err
	}

	cfg = config.NewEffectiveConfig(home)
	if g.home != "" {
		cfg.Home.Source = config.SourceFlag
	}
	if err := cfg.ApplyFileConfig(fileCfg, path); err != nil {
		return err
	}
	cfg.ApplyEnv(os.LookupEnv)

	config.ApplyFlag(cmd, "gateway", &cfg.GatewayURL, g.gateway)
	config.ApplyFlag(cmd, "pem", &cfg.PEM, g.pem)
	config.ApplyFlag(cmd, "hrp", &cfg.HRP, g.hrp)
	config.ApplyFlag(cmd, "history", &cfg.HistoryPath, g.history)
	config.ApplyFlag(cmd, "verbose", &cfg.Verbose, g.verbose)
	config.ApplyFlag(cmd, "no-color", &cfg.NoColor, g.noColor)
	config.ApplyFlag(cmd, "json", &cfg.JSON, g.json)

	if err := cfg.Validate(); err != nil {
		return err
	}

	out.SetNoColor(cfg.NoColor.Value)
	out.SetVerbose(cfg.Verbose.Value)
	out.SetJSONMode(cfg.JSON.Value)

	level := slog.LevelWarn
	if cfg.Verbose.Value {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

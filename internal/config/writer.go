package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigWriter handles writing configuration to homeDir/config.toml.
type ConfigWriter struct {
	homeDir string
}

// NewConfigWriter creates a new ConfigWriter for the given home directory.
func NewConfigWriter(homeDir string) *ConfigWriter {
	return &ConfigWriter{
		homeDir: homeDir,
	}
}

// Path returns the full path to config.toml in homeDir.
func (w *ConfigWriter) Path() string {
	return filepath.Join(w.homeDir, "config.toml")
}

// Exists returns true if config.toml already exists in homeDir.
func (w *ConfigWriter) Exists() bool {
	_, err := os.Stat(w.Path())
	return err == nil
}

// Write saves the FileConfig to homeDir/config.toml, creating homeDir if needed.
// Unset values are written as commented defaults.
func (w *ConfigWriter) Write(cfg *FileConfig) error {
	if err := os.MkdirAll(w.homeDir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.homeDir, err)
	}

	if err := os.WriteFile(w.Path(), []byte(w.render(cfg)), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (w *ConfigWriter) render(cfg *FileConfig) string {
	var b strings.Builder

	b.WriteString("# scexec configuration file\n")
	b.WriteString("# Priority: default < config file < environment < CLI flag\n")
	b.WriteString("#\n")
	fmt.Fprintf(&b, "# Location: %s\n", w.Path())
	b.WriteString("# Override with: --config /path/to/scexec.toml\n")

	section(&b, "Network Settings")
	str(&b, "gateway_url", cfg.GatewayURL, DefaultGatewayURL)
	str(&b, "hrp", cfg.HRP, "erd")
	str(&b, "poll_interval", cfg.PollInterval, DefaultPollInterval.String())
	str(&b, "max_wait", cfg.MaxWait, DefaultMaxWait.String())

	section(&b, "Signing and Transactions")
	str(&b, "pem", cfg.PEM, "/path/to/wallet.pem")
	if cfg.GasLimit != nil {
		fmt.Fprintf(&b, "gas_limit = %d\n", *cfg.GasLimit)
	} else {
		fmt.Fprintf(&b, "# gas_limit = %d\n", DefaultGasLimit)
	}

	section(&b, "Output and History")
	str(&b, "history_path", cfg.HistoryPath, filepath.Join(w.homeDir, "history.db"))
	boolean(&b, "verbose", cfg.Verbose)
	boolean(&b, "json", cfg.JSON)
	boolean(&b, "no_color", cfg.NoColor)

	return b.String()
}

func section(b *strings.Builder, title string) {
	rule := strings.Repeat("=", 77)
	fmt.Fprintf(b, "\n# %s\n# %s\n# %s\n\n", rule, title, rule)
}

func str(b *strings.Builder, key string, v *string, def string) {
	if v != nil {
		fmt.Fprintf(b, "%s = %q\n", key, *v)
		return
	}
	fmt.Fprintf(b, "# %s = %q\n", key, def)
}

func boolean(b *strings.Builder, key string, v *bool) {
	if v != nil && *v {
		fmt.Fprintf(b, "%s = true\n", key)
		return
	}
	fmt.Fprintf(b, "# %s = false\n", key)
}

package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/altuslabsxyz/scexec/pkg/address"
)

// Defaults used when neither a config file, the environment nor a flag sets a value.
const (
	DefaultGatewayURL   = "https://devnet-gateway.multiversx.com"
	DefaultGasLimit     = uint64(10_000_000)
	DefaultPollInterval = 2 * time.Second
	DefaultMaxWait      = 2 * time.Minute
)

// Environment variables consulted between the config file and CLI flags.
const (
	EnvGatewayURL = "SCEXEC_GATEWAY_URL"
	EnvPEM        = "SCEXEC_PEM"
	EnvNoColor    = "NO_COLOR"
)

// EffectiveConfig represents the final merged configuration after applying the
// priority chain default < config file < environment < flag.
type EffectiveConfig struct {
	// Global settings
	Home    StringValue
	NoColor BoolValue
	Verbose BoolValue
	JSON    BoolValue

	// Network settings
	GatewayURL   StringValue
	HRP          StringValue
	PollInterval DurationValue
	MaxWait      DurationValue

	// Signing and transaction defaults
	PEM      StringValue
	GasLimit Uint64Value

	HistoryPath StringValue

	// Metadata
	ConfigFilePath string // Path to loaded config file (empty if none)
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
func NewEffectiveConfig(homeDir string) *EffectiveConfig {
	return &EffectiveConfig{
		Home:         NewValue(homeDir),
		NoColor:      NewValue(false),
		Verbose:      NewValue(false),
		JSON:         NewValue(false),
		GatewayURL:   NewValue(DefaultGatewayURL),
		HRP:          NewValue(address.DefaultHRP),
		PollInterval: NewValue(DefaultPollInterval),
		MaxWait:      NewValue(DefaultMaxWait),
		PEM:          NewValue(""),
		GasLimit:     NewValue(DefaultGasLimit),
		HistoryPath:  NewValue(filepath.Join(homeDir, "history.db")),
	}
}

// ApplyFileConfig copies every value set in fc.
func (c *EffectiveConfig) ApplyFileConfig(fc *FileConfig, path string) error {
	if fc == nil {
		return nil
	}
	c.ConfigFilePath = path

	applyPtr(&c.NoColor, fc.NoColor)
	applyPtr(&c.Verbose, fc.Verbose)
	applyPtr(&c.JSON, fc.JSON)
	applyPtr(&c.GatewayURL, fc.GatewayURL)
	applyPtr(&c.HRP, fc.HRP)
	applyPtr(&c.PEM, fc.PEM)
	applyPtr(&c.GasLimit, fc.GasLimit)
	applyPtr(&c.HistoryPath, fc.HistoryPath)

	if fc.PollInterval != nil {
		d, err := time.ParseDuration(*fc.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid poll_interval in config file: %w", err)
		}
		c.PollInterval.Set(d, SourceConfigFile)
	}
	if fc.MaxWait != nil {
		d, err := time.ParseDuration(*fc.MaxWait)
		if err != nil {
			return fmt.Errorf("invalid max_wait in config file: %w", err)
		}
		c.MaxWait.Set(d, SourceConfigFile)
	}
	return nil
}

// ApplyEnv reads the supported environment variables through lookup.
func (c *EffectiveConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvGatewayURL); ok && v != "" {
		c.GatewayURL.Set(v, SourceEnvironment)
	}
	if v, ok := lookup(EnvPEM); ok && v != "" {
		c.PEM.Set(v, SourceEnvironment)
	}
	if _, ok := lookup(EnvNoColor); ok {
		c.NoColor.Set(true, SourceEnvironment)
	}
}

func applyPtr[T any](dst *Value[T], src *T) {
	if src != nil {
		dst.Set(*src, SourceConfigFile)
	}
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	row := func(key, value string, source Source) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, value, source)
	}
	row("home", c.Home.Value, c.Home.Source)
	row("gateway_url", c.GatewayURL.Value, c.GatewayURL.Source)
	row("hrp", c.HRP.Value, c.HRP.Source)
	row("pem", orNotSet(c.PEM.Value), c.PEM.Source)
	row("gas_limit", strconv.FormatUint(c.GasLimit.Value, 10), c.GasLimit.Source)
	row("poll_interval", c.PollInterval.Value.String(), c.PollInterval.Source)
	row("max_wait", c.MaxWait.Value.String(), c.MaxWait.Source)
	row("history_path", c.HistoryPath.Value, c.HistoryPath.Source)
	row("no_color", strconv.FormatBool(c.NoColor.Value), c.NoColor.Source)
	row("verbose", strconv.FormatBool(c.Verbose.Value), c.Verbose.Source)
	row("json", strconv.FormatBool(c.JSON.Value), c.JSON.Source)
	tw.Flush()
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

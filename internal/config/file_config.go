package config

// FileConfig represents the raw scexec.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	NoColor *bool `toml:"no_color"`
	Verbose *bool `toml:"verbose"`
	JSON    *bool `toml:"json"`

	// Network settings
	GatewayURL   *string `toml:"gateway_url"`
	HRP          *string `toml:"hrp"`
	PollInterval *string `toml:"poll_interval"` // e.g. "2s"
	MaxWait      *string `toml:"max_wait"`      // e.g. "2m"

	// Signing and transaction defaults
	PEM      *string `toml:"pem"`
	GasLimit *uint64 `toml:"gas_limit"`

	// Journal
	HistoryPath *string `toml:"history_path"`
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.NoColor == nil &&
		f.Verbose == nil &&
		f.JSON == nil &&
		f.GatewayURL == nil &&
		f.HRP == nil &&
		f.PollInterval == nil &&
		f.MaxWait == nil &&
		f.PEM == nil &&
		f.GasLimit == nil &&
		f.HistoryPath == nil
}

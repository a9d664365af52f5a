package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate validates the EffectiveConfig values against allowed ranges and types.
func (c *EffectiveConfig) Validate() error {
	if err := validateGatewayURL(c.GatewayURL.Value); err != nil {
		return err
	}
	if err := validateHRP(c.HRP.Value); err != nil {
		return err
	}
	if c.GasLimit.Value == 0 {
		return fmt.Errorf("invalid gas_limit: must be greater than 0")
	}
	if c.PollInterval.Value <= 0 {
		return fmt.Errorf("invalid poll_interval: %s (must be positive)", c.PollInterval.Value)
	}
	if c.MaxWait.Value < c.PollInterval.Value {
		return fmt.Errorf("invalid max_wait: %s (must be at least poll_interval %s)", c.MaxWait.Value, c.PollInterval.Value)
	}
	if c.HistoryPath.Value == "" {
		return fmt.Errorf("invalid history_path: must not be empty")
	}
	return nil
}

// ValidateFileConfig validates the FileConfig values before merging.
// This is called when loading the config file to provide early error messages.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.GatewayURL != nil {
		if err := validateGatewayURL(*cfg.GatewayURL); err != nil {
			return fmt.Errorf("%w in config file", err)
		}
	}
	if cfg.HRP != nil {
		if err := validateHRP(*cfg.HRP); err != nil {
			return fmt.Errorf("%w in config file", err)
		}
	}
	if cfg.GasLimit != nil && *cfg.GasLimit == 0 {
		return fmt.Errorf("invalid gas_limit in config file: must be greater than 0")
	}
	for key, v := range map[string]*string{"poll_interval": cfg.PollInterval, "max_wait": cfg.MaxWait} {
		if v == nil {
			continue
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("invalid %s in config file: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s in config file: %s (must be positive)", key, d)
		}
	}
	return nil
}

func validateGatewayURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid gateway_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid gateway_url: %s (scheme must be http or https)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid gateway_url: %s (missing host)", raw)
	}
	return nil
}

func validateHRP(hrp string) error {
	if hrp == "" || hrp != strings.ToLower(hrp) {
		return fmt.Errorf("invalid hrp: %q (must be non-empty lowercase)", hrp)
	}
	return nil
}

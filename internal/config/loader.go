package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/scexec/internal/output"
)

// FileName is the project-local config file looked up in the working directory.
const FileName = "scexec.toml"

// ConfigLoader finds, parses and merges config files.
type ConfigLoader struct {
	homeDir    string
	configPath string
	logger     *output.Logger
}

// NewConfigLoader creates a loader. configPath is the explicit --config value and may
// be empty. logger may be nil.
func NewConfigLoader(homeDir, configPath string, logger *output.Logger) *ConfigLoader {
	return &ConfigLoader{
		homeDir:    homeDir,
		configPath: configPath,
		logger:     logger,
	}
}

// candidates returns the config files to read, lowest priority first:
// <home>/config.toml, ./scexec.toml, then the explicit path.
func (l *ConfigLoader) candidates() ([]string, error) {
	var files []string
	add := func(p string) {
		abs, _ := filepath.Abs(p)
		for _, f := range files {
			if a, _ := filepath.Abs(f); a == abs {
				return
			}
		}
		files = append(files, p)
	}

	for _, p := range []string{filepath.Join(l.homeDir, "config.toml"), FileName} {
		if _, err := os.Stat(p); err == nil {
			add(p)
		}
	}

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return nil, fmt.Errorf("config file not found: %s", l.configPath)
		}
		add(l.configPath)
	}
	return files, nil
}

// LoadFileConfig merges every config file found into one FileConfig. The returned path
// is the highest-priority file that was read, or empty when none exists.
func (l *ConfigLoader) LoadFileConfig() (*FileConfig, string, error) {
	files, err := l.candidates()
	if err != nil {
		return nil, "", err
	}

	merged := &FileConfig{}
	primary := ""
	for _, file := range files {
		fc, err := l.parse(file)
		if err != nil {
			return nil, "", err
		}
		mergeFileConfig(merged, fc)
		primary = file
		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", file)
		}
	}

	if err := ValidateFileConfig(merged); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}
	return merged, primary, nil
}

// parse decodes file strictly to report unknown keys as warnings, then decodes it
// again leniently.
func (l *ConfigLoader) parse(file string) (*FileConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
	}

	var fc FileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(&fc)

	var strict *toml.StrictMissingError
	switch {
	case err == nil:
		return &fc, nil
	case errors.As(err, &strict):
		for i := range strict.Errors {
			l.warn("Unknown config key in %s: %s", file, strings.Join(strict.Errors[i].Key(), "."))
		}
		fc = FileConfig{}
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
		return &fc, nil
	default:
		return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
	}
}

func (l *ConfigLoader) warn(format string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(format, args...)
	}
}

// mergeFileConfig copies every value set in src over dst.
func mergeFileConfig(dst, src *FileConfig) {
	mergePtr(&dst.NoColor, src.NoColor)
	mergePtr(&dst.Verbose, src.Verbose)
	mergePtr(&dst.JSON, src.JSON)
	mergePtr(&dst.GatewayURL, src.GatewayURL)
	mergePtr(&dst.HRP, src.HRP)
	mergePtr(&dst.PollInterval, src.PollInterval)
	mergePtr(&dst.MaxWait, src.MaxWait)
	mergePtr(&dst.PEM, src.PEM)
	mergePtr(&dst.GasLimit, src.GasLimit)
	mergePtr(&dst.HistoryPath, src.HistoryPath)
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/scexec/internal/output"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFileConfig_NoFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, path, err := NewConfigLoader(t.TempDir(), "", nil).LoadFileConfig()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.True(t, cfg.IsEmpty())
}

func TestLoadFileConfig_MergePriority(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Chdir(work)

	writeFile(t, filepath.Join(home, "config.toml"), `
gateway_url = "https://home.example.com"
gas_limit = 1000
verbose = true
`)
	writeFile(t, filepath.Join(work, FileName), `
gateway_url = "https://cwd.example.com"
hrp = "test"
`)
	explicit := filepath.Join(t.TempDir(), "explicit.toml")
	writeFile(t, explicit, `hrp = "erd"`)

	cfg, primary, err := NewConfigLoader(home, explicit, nil).LoadFileConfig()
	require.NoError(t, err)
	assert.Equal(t, explicit, primary)
	assert.Equal(t, "https://cwd.example.com", *cfg.GatewayURL)
	assert.Equal(t, "erd", *cfg.HRP)
	assert.Equal(t, uint64(1000), *cfg.GasLimit)
	assert.True(t, *cfg.Verbose)
	assert.Nil(t, cfg.PEM)
}

func TestLoadFileConfig_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	_, _, err := NewConfigLoader(dir, filepath.Join(dir, "missing.toml"), nil).LoadFileConfig()
	require.ErrorContains(t, err, "config file not found")

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "gateway_url = ")
	_, _, err = NewConfigLoader(dir, bad, nil).LoadFileConfig()
	require.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(dir, "invalid.toml")
	writeFile(t, invalid, `poll_interval = "soon"`)
	_, _, err = NewConfigLoader(dir, invalid, nil).LoadFileConfig()
	require.ErrorContains(t, err, "poll_interval")
}

func TestLoadFileConfig_WarnsUnknownKeys(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "c.toml")
	writeFile(t, path, "colour = true\n")

	var buf bytes.Buffer
	logger := output.NewLoggerWithWriters(&buf, &buf)
	logger.SetNoColor(true)

	_, _, err := NewConfigLoader(dir, path, logger).LoadFileConfig()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Unknown config key")
	assert.Contains(t, buf.String(), "colour")
}

func TestEffectiveConfig_PriorityChain(t *testing.T) {
	home := t.TempDir()
	c := NewEffectiveConfig(home)
	assert.Equal(t, SourceDefault, c.GatewayURL.Source)
	assert.Equal(t, filepath.Join(home, "history.db"), c.HistoryPath.Value)

	gw := "https://file.example.com"
	poll := "500ms"
	gas := uint64(42)
	require.NoError(t, c.ApplyFileConfig(&FileConfig{GatewayURL: &gw, PollInterval: &poll, GasLimit: &gas}, "f.toml"))
	assert.Equal(t, gw, c.GatewayURL.Value)
	assert.Equal(t, SourceConfigFile, c.GatewayURL.Source)
	assert.Equal(t, 500*time.Millisecond, c.PollInterval.Value)
	assert.Equal(t, "f.toml", c.ConfigFilePath)

	env := map[string]string{EnvGatewayURL: "https://env.example.com", EnvPEM: "/keys/w.pem"}
	c.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, "https://env.example.com", c.GatewayURL.Value)
	assert.Equal(t, SourceEnvironment, c.GatewayURL.Source)
	assert.Equal(t, "/keys/w.pem", c.PEM.Value)
	assert.False(t, c.NoColor.Value)

	cmd := &cobra.Command{Use: "test"}
	var flagGateway string
	var flagGas uint64
	cmd.Flags().StringVar(&flagGateway, "gateway", "", "")
	cmd.Flags().Uint64Var(&flagGas, "gas-limit", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--gateway", "https://flag.example.com"}))

	ApplyFlag(cmd, "gateway", &c.GatewayURL, flagGateway)
	ApplyFlag(cmd, "gas-limit", &c.GasLimit, flagGas)
	ApplyFlag(cmd, "unknown-flag", &c.HRP, "ignored")

	assert.Equal(t, "https://flag.example.com", c.GatewayURL.Value)
	assert.Equal(t, SourceFlag, c.GatewayURL.Source)
	assert.Equal(t, uint64(42), c.GasLimit.Value, "unchanged flag must not override")
	assert.Equal(t, "erd", c.HRP.Value)

	require.NoError(t, c.Validate())
}

func TestEffectiveConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*EffectiveConfig)
		errMsg string
	}{
		{"bad scheme", func(c *EffectiveConfig) { c.GatewayURL.Value = "ws://x" }, "gateway_url"},
		{"no host", func(c *EffectiveConfig) { c.GatewayURL.Value = "https://" }, "gateway_url"},
		{"upper hrp", func(c *EffectiveConfig) { c.HRP.Value = "ERD" }, "hrp"},
		{"zero gas", func(c *EffectiveConfig) { c.GasLimit.Value = 0 }, "gas_limit"},
		{"zero poll", func(c *EffectiveConfig) { c.PollInterval.Value = 0 }, "poll_interval"},
		{"wait below poll", func(c *EffectiveConfig) { c.MaxWait.Value = time.Millisecond }, "max_wait"},
		{"no history", func(c *EffectiveConfig) { c.HistoryPath.Value = "" }, "history_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewEffectiveConfig(t.TempDir())
			tt.modify(c)
			require.ErrorContains(t, c.Validate(), tt.errMsg)
		})
	}
}

func TestConfigWriter_RoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	w := NewConfigWriter(home)
	assert.False(t, w.Exists())

	gw := "https://localhost:7950"
	gas := uint64(30_000_000)
	verbose := true
	require.NoError(t, w.Write(&FileConfig{GatewayURL: &gw, GasLimit: &gas, Verbose: &verbose}))
	assert.True(t, w.Exists())

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "# pem = "))

	cfg, path, err := NewConfigLoader(home, "", nil).LoadFileConfig()
	require.NoError(t, err)
	assert.Equal(t, w.Path(), path)
	assert.Equal(t, gw, *cfg.GatewayURL)
	assert.Equal(t, gas, *cfg.GasLimit)
	assert.True(t, *cfg.Verbose)
	assert.Nil(t, cfg.PEM)
}

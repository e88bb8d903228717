package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"aevi-fee/internal/errors"
	"aevi-fee/internal/logging"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFeesCommand(t *testing.T) {
	out, err := run(t, "fees", "--fixed-terminal", "10")
	require.NoError(t, err)

	assert.Contains(t, out, "AEVI FEE CALCULATOR")
	assert.Contains(t, out, "€10,000.00")
	assert.Contains(t, out, "€0.0750")
	assert.Contains(t, out, "€3,000.00")
}

func TestFeesCommandJSON(t *testing.T) {
	out, err := run(t, "fees", "--format", "json", "--currency", "usd", "--fixed-terminal", "10")
	require.NoError(t, err)

	var decoded struct {
		Currency string `json:"currency"`
		Result   struct {
			EstateRevenue string `json:"estate_revenue"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	assert.Equal(t, "USD", decoded.Currency)
	assert.Equal(t, "3000", decoded.Result.EstateRevenue)
}

func TestFeesCommandRejectsInvalidInput(t *testing.T) {
	_, err := run(t, "fees", "--terminals", "0")
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))

	_, err = run(t, "fees", "--ticket", "NaN")
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
}

func TestEvaluateCommand(t *testing.T) {
	out, err := run(t, "evaluate", "--mode", "benchmark", "--fixed-terminal", "10")
	require.NoError(t, err)

	assert.Contains(t, out, "BENCHMARK VS ADYEN")
	assert.Contains(t, out, "Adyen 0.05 per transaction")
	assert.Contains(t, out, "Adyen 0.12 per transaction")
	assert.Contains(t, out, "€4,800.00")

	_, err = run(t, "evaluate", "--mode", "tiered")
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
}

func TestCostCommand(t *testing.T) {
	out, err := run(t, "cost", "--region", "us-credit", "--ticket", "25", "--fee", "0.05")
	require.NoError(t, err)
	assert.Contains(t, out, "US_CREDIT")
	assert.Contains(t, out, "€0.6775")

	_, err = run(t, "cost", "--region", "apac")
	assert.True(t, errors.IsType(err, errors.TypeUnsupportedRegion))
}

func TestScenariosCommandMarkdown(t *testing.T) {
	out, err := run(t, "scenarios", "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Scenario Comparison")
	assert.Contains(t, out, "## Average SMB (400 txns × €25.00)")
	assert.Contains(t, out, "## Tier 1 Retail")
}

func TestRatesCommandWithCustomCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
version = "test-1"

region "UK" {
  interchange_rate = 0.002
  scheme_rate      = 0.001
}
`), 0644))

	out, err := run(t, "rates", "--rates", path)
	require.NoError(t, err)
	assert.Contains(t, out, "REGIONAL RATE CARD TEST-1")
	assert.Contains(t, out, "0.20%")
	assert.NotContains(t, out, "US_CREDIT")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aevi-fee version "+Version)
	assert.Contains(t, out, "rate card 2024.1")
}

func TestRejectsUnknownCurrency(t *testing.T) {
	_, err := run(t, "fees", "--currency", "JPY")
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
}

func TestBadLoggingOutputKeepsDefaultLogger(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	previous := logging.Logger
	logging.Replace(zap.New(core))
	t.Cleanup(func() { logging.Replace(previous) })

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	logOutput := filepath.Join(dir, "missing", "fee.log")
	require.NoError(t, os.WriteFile(path, []byte(`{"logging":{"level":"info","format":"json","output":"`+filepath.ToSlash(logOutput)+`"}}`), 0644))

	out, err := run(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aevi-fee version "+Version)

	entries := logs.FilterMessage("invalid logging config, keeping defaults").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "fee.log")
}

// Package cmd provides the CLI commands for aevi-fee.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aevi-fee/adapters/ratecard"
	"aevi-fee/core/engine"
	"aevi-fee/core/output"
	"aevi-fee/core/regional"
	"aevi-fee/core/types"
	"aevi-fee/internal/config"
	"aevi-fee/internal/errors"
	"aevi-fee/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	currencyFlag string
	formatFlag   string
	ratesFile    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aevi-fee",
	Short: "Model Aevi platform fees and regional transaction costs",
	Long: `aevi-fee models what Aevi earns per transaction, per terminal and across
a terminal estate, and what a card transaction costs all-in per region.

Examples:
  aevi-fee fees --ticket 25 --txns 400 --terminals 100 --bps 20
  aevi-fee evaluate --mode compare --bps 20 --fixed-terminal 10
  aevi-fee cost --region us-credit --ticket 25 --fee 0.075
  aevi-fee scenarios --format markdown`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aevi-fee.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&currencyFlag, "currency", "", "display currency (EUR, USD, GBP)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "output format (cli, markdown, json)")
	rootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "HCL rate card (default is the built-in card)")

	// Add subcommands
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(costCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	// Flags win over file and environment
	if currencyFlag != "" {
		currency, ok := types.ParseCurrency(currencyFlag)
		if !ok {
			return errors.InvalidInput("currency", "must be one of EUR, USD, GBP").WithContext("value", currencyFlag)
		}
		cfg.Pricing.DefaultCurrency = currency
	}
	if formatFlag != "" {
		f, err := output.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		cfg.Output.DefaultFormat = string(f)
	}
	if ratesFile != "" {
		cfg.Pricing.RateCardPath = ratesFile
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Warn("invalid logging config, keeping defaults", zap.Error(err))
	}
	return nil
}

// newEngine builds an engine over the configured rate card
func newEngine() (*engine.Engine, error) {
	var card *regional.RateCard
	if path := config.Get().Pricing.RateCardPath; path != "" {
		loaded, err := ratecard.NewLoader().LoadFile(path)
		if err != nil {
			return nil, err
		}
		logging.Debug("rate card loaded", zap.String("path", path), zap.String("version", loaded.Version()))
		card = loaded
	}
	return engine.New(card, logging.Logger), nil
}

// render writes report in the configured format
func render(cmd *cobra.Command, report *output.Report) error {
	f, err := output.ParseFormat(config.Get().Output.DefaultFormat)
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(f)
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}

func currency() types.Currency {
	return config.Get().Pricing.DefaultCurrency
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "aevi-fee version %s (rate card %s)\n", Version, eng.RateCard().Version())
		return nil
	},
}

// Package cmd - scenarios and rates commands
package cmd

import (
	"github.com/spf13/cobra"

	"aevi-fee/core/output"
	"aevi-fee/core/types"
)

var (
	scenarioTerminals     int64
	scenarioBPS           float64
	scenarioFixedTerminal float64
	scenarioFixedTxn      float64
)

// scenariosCmd represents the scenarios command
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Compare the fee model across reference merchant profiles",
	Long: `Price the Worst-case Merchant, Average SMB and Tier 1 Retail profiles
with one set of pricing levers.

Examples:
  aevi-fee scenarios --bps 20 --fixed-terminal 10
  aevi-fee scenarios --terminals 2500 --format markdown`,
	Args: cobra.NoArgs,
	RunE: runScenarios,
}

// ratesCmd prints the rate card in use
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the regional rate card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		return render(cmd, output.RateCardReport(eng.RateCard(), currency()))
	},
}

func init() {
	scenariosCmd.Flags().Int64Var(&scenarioTerminals, "terminals", 100, "number of transacting terminals")
	scenariosCmd.Flags().Float64Var(&scenarioBPS, "bps", 20, "Aevi share in basis points")
	scenariosCmd.Flags().Float64Var(&scenarioFixedTerminal, "fixed-terminal", 0, "fixed fee per terminal per month")
	scenariosCmd.Flags().Float64Var(&scenarioFixedTxn, "fixed-txn", 0, "fixed fee per transaction")
}

func runScenarios(cmd *cobra.Command, args []string) error {
	bps, err := types.DecimalFromFloat("bps", scenarioBPS)
	if err != nil {
		return err
	}
	fixedTerminal, err := types.DecimalFromFloat("fixed-terminal", scenarioFixedTerminal)
	if err != nil {
		return err
	}
	fixedTxn, err := types.DecimalFromFloat("fixed-txn", scenarioFixedTxn)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	rows, err := eng.Scenarios(scenarioTerminals, bps, fixedTerminal, fixedTxn)
	if err != nil {
		return err
	}
	return render(cmd, output.ScenarioReport(rows, currency()))
}

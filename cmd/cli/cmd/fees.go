// Package cmd - fees and evaluate commands
package cmd

import (
	"github.com/spf13/cobra"

	"aevi-fee/core/modes"
	"aevi-fee/core/output"
	"aevi-fee/core/types"
)

// pricingFlags are the business inputs shared by fees and evaluate
type pricingFlags struct {
	ticket        float64
	txns          int64
	terminals     int64
	bps           float64
	fixedTerminal float64
	fixedTxn      float64
}

func (p *pricingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&p.ticket, "ticket", 25, "average ticket size")
	cmd.Flags().Int64Var(&p.txns, "txns", 400, "transactions per terminal per month")
	cmd.Flags().Int64Var(&p.terminals, "terminals", 100, "number of transacting terminals")
	cmd.Flags().Float64Var(&p.bps, "bps", 20, "Aevi share in basis points")
	cmd.Flags().Float64Var(&p.fixedTerminal, "fixed-terminal", 0, "fixed fee per terminal per month")
	cmd.Flags().Float64Var(&p.fixedTxn, "fixed-txn", 0, "fixed fee per transaction")
}

func (p *pricingFlags) input() (types.PricingInput, error) {
	in := types.PricingInput{
		TransactionsPerTerminal: p.txns,
		TerminalCount:           p.terminals,
	}
	var err error
	if in.AverageTicket, err = types.DecimalFromFloat("ticket", p.ticket); err != nil {
		return in, err
	}
	if in.BasisPointShare, err = types.DecimalFromFloat("bps", p.bps); err != nil {
		return in, err
	}
	if in.FixedFeePerTerminal, err = types.DecimalFromFloat("fixed-terminal", p.fixedTerminal); err != nil {
		return in, err
	}
	if in.FixedFeePerTransaction, err = types.DecimalFromFloat("fixed-txn", p.fixedTxn); err != nil {
		return in, err
	}
	return in, nil
}

var (
	feesFlags     pricingFlags
	evaluateFlags pricingFlags
	modeFlag      string
)

// feesCmd represents the fees command
var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Calculate the Aevi fee per transaction, per terminal and per estate",
	Long: `Calculate the Aevi fee breakdown for one set of pricing inputs.

Examples:
  aevi-fee fees
  aevi-fee fees --ticket 12.50 --txns 900 --bps 15 --fixed-txn 0.01
  aevi-fee fees --currency USD --format json`,
	Args: cobra.NoArgs,
	RunE: runFees,
}

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a pricing mode (cumulative, compare, benchmark_adyen)",
	Long: `Evaluate the inputs under one pricing mode.

  cumulative       all three levers together, plus EU and US total cost
  compare          each lever on its own
  benchmark_adyen  cumulative figures next to Adyen's flat per-transaction rates

Examples:
  aevi-fee evaluate --mode compare --fixed-terminal 10 --fixed-txn 0.02
  aevi-fee evaluate --mode benchmark --format markdown`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	feesFlags.register(feesCmd)
	evaluateFlags.register(evaluateCmd)
	evaluateCmd.Flags().StringVarP(&modeFlag, "mode", "m", string(modes.ModeCumulative), "pricing mode")
}

func runFees(cmd *cobra.Command, args []string) error {
	in, err := feesFlags.input()
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	res, err := eng.Fees(in)
	if err != nil {
		return err
	}
	return render(cmd, output.FeesReport(res, currency()))
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	mode, err := modes.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	in, err := evaluateFlags.input()
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Evaluate(mode, in)
	if err != nil {
		return err
	}
	return render(cmd, output.ModeReport(result, currency()))
}

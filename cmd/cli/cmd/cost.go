// Package cmd - cost command
package cmd

import (
	"github.com/spf13/cobra"

	"aevi-fee/core/output"
	"aevi-fee/core/types"
)

var (
	costRegion string
	costTicket float64
	costFee    float64
)

// costCmd represents the cost command
var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Itemize the total cost of one transaction in a region",
	Long: `Itemize interchange, scheme, acquirer and Aevi fees for one transaction.

Regions: EU, US_CREDIT, US_REG_DEBIT, plus any region in a --rates card.

Examples:
  aevi-fee cost --region eu --ticket 25 --fee 0.05
  aevi-fee cost --region us-reg-debit --ticket 40 --fee 0.075`,
	Args: cobra.NoArgs,
	RunE: runCost,
}

func init() {
	costCmd.Flags().StringVarP(&costRegion, "region", "r", string(types.RegionEU), "cost region")
	costCmd.Flags().Float64Var(&costTicket, "ticket", 25, "average ticket size")
	costCmd.Flags().Float64Var(&costFee, "fee", 0, "Aevi fee per transaction")
}

func runCost(cmd *cobra.Command, args []string) error {
	ticket, err := types.DecimalFromFloat("ticket", costTicket)
	if err != nil {
		return err
	}
	fee, err := types.DecimalFromFloat("fee", costFee)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	b, err := eng.Cost(types.ParseRegion(costRegion), ticket, fee)
	if err != nil {
		return err
	}
	return render(cmd, output.CostReport(b, currency()))
}

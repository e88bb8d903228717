// Package scenario applies the fee model to a fixed table of reference
// merchant profiles.
package scenario

import (
	"github.com/shopspring/decimal"

	"aevi-fee/core/fees"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

// Profile is a canonical merchant archetype
type Profile struct {
	Label                   string          `json:"label"`
	TransactionsPerTerminal int64           `json:"transactions_per_terminal"`
	AverageTicket           decimal.Decimal `json:"average_ticket"`
}

var profiles = []Profile{
	{Label: "Worst-case Merchant", TransactionsPerTerminal: 50, AverageTicket: decimal.RequireFromString("8.00")},
	{Label: "Average SMB", TransactionsPerTerminal: 400, AverageTicket: decimal.RequireFromString("25.00")},
	{Label: "Tier 1 Retail", TransactionsPerTerminal: 2500, AverageTicket: decimal.RequireFromString("45.00")},
}

// Profiles returns the reference profiles in table order
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Result is one row of the scenario table
type Result struct {
	Profile                  Profile            `json:"profile"`
	Breakdown                types.FeeBreakdown `json:"breakdown"`
	MonthlyVolumePerTerminal decimal.Decimal    `json:"monthly_volume_per_terminal"`
	EstateRevenue            decimal.Decimal    `json:"estate_revenue"`
}

// Build prices every reference profile with the given levers. Rows keep the
// profile declaration order.
func Build(terminalCount int64, basisPointShare, fixedFeePerTerminal, fixedFeePerTransaction decimal.Decimal) ([]Result, error) {
	if terminalCount < 1 {
		return nil, errors.InvalidInput("terminal_count", "must be at least 1")
	}
	if err := types.ValidateFeeParams(basisPointShare, fixedFeePerTerminal, fixedFeePerTransaction); err != nil {
		return nil, err
	}

	rows := make([]Result, 0, len(profiles))
	for _, p := range profiles {
		b := fees.Compute(p.AverageTicket, p.TransactionsPerTerminal,
			basisPointShare, fixedFeePerTerminal, fixedFeePerTransaction)
		rows = append(rows, Result{
			Profile:                  p,
			Breakdown:                b,
			MonthlyVolumePerTerminal: fees.MonthlyVolumePerTerminal(p.AverageTicket, p.TransactionsPerTerminal),
			EstateRevenue:            fees.EstateRevenue(b, terminalCount),
		})
	}
	return rows, nil
}

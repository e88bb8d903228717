// Package fees implements the Aevi platform fee model.
//
// All arithmetic is exact decimal arithmetic except amortizing the terminal
// fee, which is a true division and keeps AmortizationPlaces places.
// Rounding to 2 or 4 places happens only when a figure is displayed.
package fees

import (
	"github.com/shopspring/decimal"

	"aevi-fee/core/types"
)

// AmortizationPlaces is the precision of fixedFeePerTerminal / txns
const AmortizationPlaces int32 = 28

// Amortize spreads a per-terminal fee over the terminal's transactions.
// With zero transactions it contributes nothing instead of dividing by zero.
func Amortize(fixedFeePerTerminal decimal.Decimal, transactionsPerTerminal int64) decimal.Decimal {
	if transactionsPerTerminal == 0 {
		return decimal.Zero
	}
	return fixedFeePerTerminal.DivRound(decimal.NewFromInt(transactionsPerTerminal), AmortizationPlaces)
}

// Compute derives the fee breakdown for one terminal profile.
//
// The per-terminal fee is amortized over transactionsPerTerminal. Revenue per
// terminal is summed from the exact parts, so it carries no amortization
// rounding: variable*txns + fixedTxn*txns + fixedTerminal.
func Compute(
	averageTicket decimal.Decimal,
	transactionsPerTerminal int64,
	basisPointShare decimal.Decimal,
	fixedFeePerTerminal decimal.Decimal,
	fixedFeePerTransaction decimal.Decimal,
) types.FeeBreakdown {
	txns := decimal.NewFromInt(transactionsPerTerminal)

	// bps / 10000 as an exact shift
	variable := basisPointShare.Mul(averageTicket).Shift(-4)
	fixed := fixedFeePerTransaction.Add(Amortize(fixedFeePerTerminal, transactionsPerTerminal))

	revenue := decimal.Zero
	if transactionsPerTerminal != 0 {
		revenue = variable.Add(fixedFeePerTransaction).Mul(txns).Add(fixedFeePerTerminal)
	}

	return types.FeeBreakdown{
		VariableFeePerTxn:  variable,
		FixedFeePerTxn:     fixed,
		TotalFeePerTxn:     variable.Add(fixed),
		RevenuePerTerminal: revenue,
	}
}

// ComputeFees validates in and computes its fee breakdown.
func ComputeFees(in types.PricingInput) (types.FeeBreakdown, error) {
	if err := in.Validate(); err != nil {
		return types.FeeBreakdown{}, err
	}
	return Compute(
		in.AverageTicket,
		in.TransactionsPerTerminal,
		in.BasisPointShare,
		in.FixedFeePerTerminal,
		in.FixedFeePerTransaction,
	), nil
}

// EstateRevenue scales per-terminal revenue to the whole estate
func EstateRevenue(breakdown types.FeeBreakdown, terminalCount int64) decimal.Decimal {
	return breakdown.RevenuePerTerminal.Mul(decimal.NewFromInt(terminalCount))
}

// MonthlyVolumePerTerminal is the card volume one terminal processes
func MonthlyVolumePerTerminal(averageTicket decimal.Decimal, transactionsPerTerminal int64) decimal.Decimal {
	return averageTicket.Mul(decimal.NewFromInt(transactionsPerTerminal))
}

package modes

import (
	"github.com/shopspring/decimal"

	"aevi-fee/core/types"
)

// ModeResult is the result of one Evaluate call. The concrete type is one of
// *CumulativeResult, *CompareResult or *BenchmarkResult.
type ModeResult interface {
	Mode() PricingMode
	isModeResult()
}

// CumulativeResult applies every pricing lever at once.
type CumulativeResult struct {
	Breakdown                types.FeeBreakdown `json:"breakdown"`
	EstateRevenue            decimal.Decimal    `json:"estate_revenue"`
	MonthlyVolumePerTerminal decimal.Decimal    `json:"monthly_volume_per_terminal"`
	EUCostPerTxn             decimal.Decimal    `json:"eu_cost_per_txn"`
	USCostPerTxn             decimal.Decimal    `json:"us_cost_per_txn"`
}

func (*CumulativeResult) Mode() PricingMode { return ModeCumulative }
func (*CumulativeResult) isModeResult()     {}

// IsolatedFee is the revenue from a single pricing lever with the others zeroed
type IsolatedFee struct {
	Breakdown     types.FeeBreakdown `json:"breakdown"`
	EstateRevenue decimal.Decimal    `json:"estate_revenue"`
}

// CompareResult isolates each lever. Its three TotalFeePerTxn values sum to
// the cumulative TotalFeePerTxn for the same input.
type CompareResult struct {
	BPsOnly              IsolatedFee `json:"bps_only"`
	FixedPerTxnOnly      IsolatedFee `json:"fixed_per_txn_only"`
	FixedPerTerminalOnly IsolatedFee `json:"fixed_per_terminal_only"`
}

func (*CompareResult) Mode() PricingMode { return ModeCompare }
func (*CompareResult) isModeResult()     {}

// Sum returns the combined per-transaction fee of all three levers
func (r *CompareResult) Sum() decimal.Decimal {
	return r.BPsOnly.Breakdown.TotalFeePerTxn.
		Add(r.FixedPerTxnOnly.Breakdown.TotalFeePerTxn).
		Add(r.FixedPerTerminalOnly.Breakdown.TotalFeePerTxn)
}

// BenchmarkFigure is a flat per-transaction reference rate scaled to the
// input's volume.
type BenchmarkFigure struct {
	Label              string          `json:"label"`
	FeePerTxn          decimal.Decimal `json:"fee_per_txn"`
	RevenuePerTerminal decimal.Decimal `json:"revenue_per_terminal"`
	EstateRevenue      decimal.Decimal `json:"estate_revenue"`
}

// BenchmarkResult sets the cumulative result next to the reference rates.
type BenchmarkResult struct {
	Cumulative CumulativeResult  `json:"cumulative"`
	Benchmarks []BenchmarkFigure `json:"benchmarks"`
}

func (*BenchmarkResult) Mode() PricingMode { return ModeBenchmarkAdyen }
func (*BenchmarkResult) isModeResult()     {}

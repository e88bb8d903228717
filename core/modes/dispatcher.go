package modes

import (
	"github.com/shopspring/decimal"

	"aevi-fee/core/fees"
	"aevi-fee/core/regional"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

// Adyen's public flat per-transaction processing rates, in the display currency
var (
	AdyenLowRate  = decimal.RequireFromString("0.05")
	AdyenHighRate = decimal.RequireFromString("0.12")
)

// Dispatcher evaluates pricing modes against one rate card
type Dispatcher struct {
	estimator *regional.Estimator
}

// NewDispatcher binds a dispatcher to estimator; nil means the default card.
func NewDispatcher(estimator *regional.Estimator) *Dispatcher {
	if estimator == nil {
		estimator = regional.NewEstimator(nil)
	}
	return &Dispatcher{estimator: estimator}
}

// Evaluate validates in and produces the result variant for mode.
func (d *Dispatcher) Evaluate(mode PricingMode, in types.PricingInput) (ModeResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	switch mode {
	case ModeCumulative:
		return d.cumulative(in)
	case ModeCompare:
		return compare(in), nil
	case ModeBenchmarkAdyen:
		return d.benchmark(in)
	}
	return nil, errors.InvalidInput("mode", "is not a supported pricing mode").WithContext("value", string(mode))
}

func (d *Dispatcher) cumulative(in types.PricingInput) (*CumulativeResult, error) {
	b := fees.Compute(in.AverageTicket, in.TransactionsPerTerminal,
		in.BasisPointShare, in.FixedFeePerTerminal, in.FixedFeePerTransaction)

	eu, err := d.estimator.TotalCostPerTxn(types.RegionEU, in.AverageTicket, b.TotalFeePerTxn)
	if err != nil {
		return nil, err
	}
	us, err := d.estimator.TotalCostPerTxn(types.RegionUSCredit, in.AverageTicket, b.TotalFeePerTxn)
	if err != nil {
		return nil, err
	}

	return &CumulativeResult{
		Breakdown:                b,
		EstateRevenue:            fees.EstateRevenue(b, in.TerminalCount),
		MonthlyVolumePerTerminal: fees.MonthlyVolumePerTerminal(in.AverageTicket, in.TransactionsPerTerminal),
		EUCostPerTxn:             eu,
		USCostPerTxn:             us,
	}, nil
}

func compare(in types.PricingInput) *CompareResult {
	isolate := func(bps, perTerminal, perTxn decimal.Decimal) IsolatedFee {
		b := fees.Compute(in.AverageTicket, in.TransactionsPerTerminal, bps, perTerminal, perTxn)
		return IsolatedFee{Breakdown: b, EstateRevenue: fees.EstateRevenue(b, in.TerminalCount)}
	}

	return &CompareResult{
		BPsOnly:              isolate(in.BasisPointShare, decimal.Zero, decimal.Zero),
		FixedPerTxnOnly:      isolate(decimal.Zero, decimal.Zero, in.FixedFeePerTransaction),
		FixedPerTerminalOnly: isolate(decimal.Zero, in.FixedFeePerTerminal, decimal.Zero),
	}
}

func (d *Dispatcher) benchmark(in types.PricingInput) (*BenchmarkResult, error) {
	c, err := d.cumulative(in)
	if err != nil {
		return nil, err
	}

	txns := decimal.NewFromInt(in.TransactionsPerTerminal)
	terminals := decimal.NewFromInt(in.TerminalCount)
	figure := func(rate decimal.Decimal) BenchmarkFigure {
		perTerminal := rate.Mul(txns)
		return BenchmarkFigure{
			Label:              "Adyen " + rate.StringFixed(2) + " per transaction",
			FeePerTxn:          rate,
			RevenuePerTerminal: perTerminal,
			EstateRevenue:      perTerminal.Mul(terminals),
		}
	}

	return &BenchmarkResult{
		Cumulative: *c,
		Benchmarks: []BenchmarkFigure{figure(AdyenLowRate), figure(AdyenHighRate)},
	}, nil
}

// Evaluate runs mode against the default rate card.
func Evaluate(mode PricingMode, in types.PricingInput) (ModeResult, error) {
	return NewDispatcher(nil).Evaluate(mode, in)
}

// Package engine is the single entry point the CLI and HTTP API call into.
// It binds the fee model to a rate card and logs each calculation; the
// figures themselves come straight from the core packages.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aevi-fee/core/fees"
	"aevi-fee/core/modes"
	"aevi-fee/core/regional"
	"aevi-fee/core/scenario"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
	"aevi-fee/internal/logging"
)

// Engine evaluates pricing inputs. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	estimator  *regional.Estimator
	dispatcher *modes.Dispatcher
	logger     *zap.Logger
}

// New creates an engine. A nil card uses the built-in rates and a nil logger
// discards log output.
func New(card *regional.RateCard, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	estimator := regional.NewEstimator(card)
	return &Engine{
		estimator:  estimator,
		dispatcher: modes.NewDispatcher(estimator),
		logger:     logger.With(zap.String("rate_card", estimator.RateCard().Version())),
	}
}

// RateCard returns the rate card costs are priced against
func (e *Engine) RateCard() *regional.RateCard {
	return e.estimator.RateCard()
}

// FeesResult is the fee breakdown for one input plus its estate figures
type FeesResult struct {
	Breakdown                types.FeeBreakdown `json:"breakdown"`
	EstateRevenue            decimal.Decimal    `json:"estate_revenue"`
	MonthlyVolumePerTerminal decimal.Decimal    `json:"monthly_volume_per_terminal"`
}

// Fees computes the fee breakdown and estate revenue for in
func (e *Engine) Fees(in types.PricingInput) (*FeesResult, error) {
	b, err := fees.ComputeFees(in)
	if err != nil {
		e.rejected("fees", err)
		return nil, err
	}

	res := &FeesResult{
		Breakdown:                b,
		EstateRevenue:            fees.EstateRevenue(b, in.TerminalCount),
		MonthlyVolumePerTerminal: fees.MonthlyVolumePerTerminal(in.AverageTicket, in.TransactionsPerTerminal),
	}
	e.logger.Debug("fees computed",
		logging.Amount("total_fee_per_txn", b.TotalFeePerTxn),
		logging.Amount("estate_revenue", res.EstateRevenue),
	)
	return res, nil
}

// Cost itemizes the per-transaction cost in region
func (e *Engine) Cost(region types.Region, averageTicket, aeviFeePerTxn decimal.Decimal) (*types.CostBreakdown, error) {
	b, err := e.estimator.CostBreakdown(region, averageTicket, aeviFeePerTxn)
	if err != nil {
		e.rejected("cost", err, zap.String("region", string(region)))
		return nil, err
	}

	e.logger.Debug("regional cost computed",
		zap.String("region", string(region)),
		logging.Amount("total", b.Total),
	)
	return &b, nil
}

// Evaluate runs the pricing mode dispatcher
func (e *Engine) Evaluate(mode modes.PricingMode, in types.PricingInput) (modes.ModeResult, error) {
	res, err := e.dispatcher.Evaluate(mode, in)
	if err != nil {
		e.rejected("evaluate", err, zap.String("mode", string(mode)))
		return nil, err
	}

	e.logger.Debug("mode evaluated", zap.String("mode", string(res.Mode())))
	return res, nil
}

// Scenarios builds the reference merchant table
func (e *Engine) Scenarios(terminalCount int64, basisPointShare, fixedFeePerTerminal, fixedFeePerTransaction decimal.Decimal) ([]scenario.Result, error) {
	rows, err := scenario.Build(terminalCount, basisPointShare, fixedFeePerTerminal, fixedFeePerTransaction)
	if err != nil {
		e.rejected("scenarios", err)
		return nil, err
	}

	e.logger.Debug("scenario table built", zap.Int("rows", len(rows)))
	return rows, nil
}

func (e *Engine) rejected(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	if de, ok := errors.As(err); ok {
		fields = append(fields, zap.String("error_type", string(de.Type)))
	}
	e.logger.Debug("calculation rejected", fields...)
}

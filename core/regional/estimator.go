package regional

import (
	"github.com/shopspring/decimal"

	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

// Estimator prices transactions against one rate card
type Estimator struct {
	card *RateCard
}

// NewEstimator binds an estimator to card; nil means the default card.
func NewEstimator(card *RateCard) *Estimator {
	if card == nil {
		card = DefaultRateCard()
	}
	return &Estimator{card: card}
}

// RateCard returns the card the estimator prices against
func (e *Estimator) RateCard() *RateCard {
	return e.card
}

// CostBreakdown itemizes the per-transaction cost in region:
//
//	(interchange% + scheme% + acquirer%) * ticket
//	  + interchangeFixed + schemeFixed + acquirerFixed + aeviFee
func (e *Estimator) CostBreakdown(region types.Region, averageTicket, aeviFeePerTxn decimal.Decimal) (types.CostBreakdown, error) {
	if !averageTicket.IsPositive() {
		return types.CostBreakdown{}, errors.InvalidInput("average_ticket", "must be greater than zero")
	}
	if aeviFeePerTxn.IsNegative() {
		return types.CostBreakdown{}, errors.InvalidInput("aevi_fee", "must not be negative")
	}
	if err := types.ValidateAmount("average_ticket", averageTicket); err != nil {
		return types.CostBreakdown{}, err
	}
	if err := types.ValidateAmount("aevi_fee", aeviFeePerTxn); err != nil {
		return types.CostBreakdown{}, err
	}

	rates, err := e.card.Rates(region)
	if err != nil {
		return types.CostBreakdown{}, err
	}

	interchange := rates.InterchangeRate.Mul(averageTicket).Add(rates.InterchangeFixed)
	scheme := rates.SchemeRate.Mul(averageTicket).Add(rates.SchemeFixed)
	acquirer := rates.AcquirerRate.Mul(averageTicket).Add(rates.AcquirerFixed)

	return types.CostBreakdown{
		Region:      region,
		Interchange: interchange,
		Scheme:      scheme,
		Acquirer:    acquirer,
		AeviFee:     aeviFeePerTxn,
		Total:       interchange.Add(scheme).Add(acquirer).Add(aeviFeePerTxn),
	}, nil
}

// TotalCostPerTxn returns the all-in cost of one transaction in region.
func (e *Estimator) TotalCostPerTxn(region types.Region, averageTicket, aeviFeePerTxn decimal.Decimal) (decimal.Decimal, error) {
	b, err := e.CostBreakdown(region, averageTicket, aeviFeePerTxn)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Total, nil
}

// TotalCostPerTxn prices against the default rate card.
func TotalCostPerTxn(region types.Region, averageTicket, aeviFeePerTxn decimal.Decimal) (decimal.Decimal, error) {
	return NewEstimator(nil).TotalCostPerTxn(region, averageTicket, aeviFeePerTxn)
}

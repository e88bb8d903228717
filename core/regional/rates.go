// Package regional estimates the all-in cost of a card transaction per region:
// interchange, scheme and acquirer fees plus the Aevi platform fee.
package regional

import (
	"sort"

	"github.com/shopspring/decimal"

	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

// DefaultRateCardVersion identifies the built-in rates
const DefaultRateCardVersion = "2024.1"

// RegionalCostRates holds the percentage and fixed components of each fee
// party for one region. Rates are fractions of the ticket (0.003 = 0.30%).
type RegionalCostRates struct {
	InterchangeRate  decimal.Decimal `json:"interchange_rate"`
	InterchangeFixed decimal.Decimal `json:"interchange_fixed"`
	SchemeRate       decimal.Decimal `json:"scheme_rate"`
	SchemeFixed      decimal.Decimal `json:"scheme_fixed"`
	AcquirerRate     decimal.Decimal `json:"acquirer_rate"`
	AcquirerFixed    decimal.Decimal `json:"acquirer_fixed"`
}

// Validate rejects negative components
func (r RegionalCostRates) Validate(region types.Region) error {
	parts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"interchange_rate", r.InterchangeRate},
		{"interchange_fixed", r.InterchangeFixed},
		{"scheme_rate", r.SchemeRate},
		{"scheme_fixed", r.SchemeFixed},
		{"acquirer_rate", r.AcquirerRate},
		{"acquirer_fixed", r.AcquirerFixed},
	}
	for _, p := range parts {
		field := string(region) + "." + p.name
		if p.value.IsNegative() {
			return errors.InvalidInput(field, "must not be negative")
		}
		if err := types.ValidateAmount(field, p.value); err != nil {
			return err
		}
	}
	return nil
}

// RateCard is a named, versioned set of regional rates. It is treated as
// immutable once built; accessors hand out copies.
type RateCard struct {
	version string
	regions map[types.Region]RegionalCostRates
}

// NewRateCard builds a rate card, validating every region.
func NewRateCard(version string, regions map[types.Region]RegionalCostRates) (*RateCard, error) {
	if version == "" {
		return nil, errors.InvalidInput("version", "is required")
	}
	if len(regions) == 0 {
		return nil, errors.InvalidInput("regions", "must not be empty")
	}

	card := &RateCard{
		version: version,
		regions: make(map[types.Region]RegionalCostRates, len(regions)),
	}
	for region, rates := range regions {
		if err := rates.Validate(region); err != nil {
			return nil, err
		}
		card.regions[region] = rates
	}
	return card, nil
}

// Version returns the rate card version
func (c *RateCard) Version() string {
	return c.version
}

// Rates returns the rates for region or UnsupportedRegion.
func (c *RateCard) Rates(region types.Region) (RegionalCostRates, error) {
	rates, ok := c.regions[region]
	if !ok {
		return RegionalCostRates{}, errors.UnsupportedRegion(string(region))
	}
	return rates, nil
}

// Regions returns the region keys in sorted order
func (c *RateCard) Regions() []types.Region {
	out := make([]types.Region, 0, len(c.regions))
	for r := range c.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// All returns a copy of every region's rates
func (c *RateCard) All() map[types.Region]RegionalCostRates {
	out := make(map[types.Region]RegionalCostRates, len(c.regions))
	for r, rates := range c.regions {
		out[r] = rates
	}
	return out
}

// Published card rates. US regulated debit shares the scheme and acquirer
// components of US credit; only interchange differs.
var (
	euInterchangeRate = decimal.RequireFromString("0.003")
	euSchemeRate      = decimal.RequireFromString("0.001")
	euAcquirerRate    = decimal.RequireFromString("0.0015")

	usCreditInterchangeRate    = decimal.RequireFromString("0.018")
	usSchemeRate               = decimal.RequireFromString("0.0016")
	usSchemeFixed              = decimal.RequireFromString("0.02")
	usAcquirerRate             = decimal.RequireFromString("0.0015")
	usAcquirerFixed            = decimal.RequireFromString("0.08")
	usRegDebitInterchangeFixed = decimal.RequireFromString("0.27")
)

// DefaultRates returns the built-in regional rates
func DefaultRates() map[types.Region]RegionalCostRates {
	return map[types.Region]RegionalCostRates{
		types.RegionEU: {
			InterchangeRate: euInterchangeRate,
			SchemeRate:      euSchemeRate,
			AcquirerRate:    euAcquirerRate,
		},
		types.RegionUSCredit: {
			InterchangeRate: usCreditInterchangeRate,
			SchemeRate:      usSchemeRate,
			SchemeFixed:     usSchemeFixed,
			AcquirerRate:    usAcquirerRate,
			AcquirerFixed:   usAcquirerFixed,
		},
		types.RegionUSRegDebit: {
			InterchangeFixed: usRegDebitInterchangeFixed,
			SchemeRate:       usSchemeRate,
			SchemeFixed:      usSchemeFixed,
			AcquirerRate:     usAcquirerRate,
			AcquirerFixed:    usAcquirerFixed,
		},
	}
}

var defaultCard = mustDefaultCard()

func mustDefaultCard() *RateCard {
	card, err := NewRateCard(DefaultRateCardVersion, DefaultRates())
	if err != nil {
		panic(err)
	}
	return card
}

// DefaultRateCard returns the built-in rate card
func DefaultRateCard() *RateCard {
	return defaultCard
}

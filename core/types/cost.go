// Package types - Fee and cost value types
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code. Only the display symbol changes with
// it; amounts are never converted.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case CurrencyEUR:
		return "€"
	case CurrencyUSD:
		return "$"
	case CurrencyGBP:
		return "£"
	default:
		return string(c) + " "
	}
}

// ParseCurrency normalizes a currency code. ok is false for codes with no symbol.
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP:
		return c, true
	}
	return c, false
}

// FeeBreakdown is the per-transaction and per-terminal result of the Aevi fee
// model for one ticket size and transaction volume.
type FeeBreakdown struct {
	// VariableFeePerTxn is the basis-point share applied to the ticket
	VariableFeePerTxn decimal.Decimal `json:"variable_fee_per_txn"`

	// FixedFeePerTxn is the fixed per-transaction fee plus the amortized
	// per-terminal fee
	FixedFeePerTxn decimal.Decimal `json:"fixed_fee_per_txn"`

	// TotalFeePerTxn is VariableFeePerTxn + FixedFeePerTxn
	TotalFeePerTxn decimal.Decimal `json:"total_fee_per_txn"`

	// RevenuePerTerminal is TotalFeePerTxn * transactions per terminal
	RevenuePerTerminal decimal.Decimal `json:"revenue_per_terminal"`
}

// IsZero reports whether the breakdown yields no revenue at all
func (b FeeBreakdown) IsZero() bool {
	return b.TotalFeePerTxn.IsZero() && b.RevenuePerTerminal.IsZero()
}

// CostBreakdown itemizes the total per-transaction cost of a card payment in
// one region.
type CostBreakdown struct {
	Region      Region          `json:"region"`
	Interchange decimal.Decimal `json:"interchange"`
	Scheme      decimal.Decimal `json:"scheme"`
	Acquirer    decimal.Decimal `json:"acquirer"`
	AeviFee     decimal.Decimal `json:"aevi_fee"`
	Total       decimal.Decimal `json:"total"`
}

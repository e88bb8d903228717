// Package types - Pricing input types
package types

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"aevi-fee/internal/errors"
)

// Bounds on any money or basis-point amount the model accepts.
const (
	// MaxAmountPlaces is the most decimal places an amount may carry
	MaxAmountPlaces = 18

	// MaxAmountDigits bounds the integer part: amounts stay below 10^12
	MaxAmountDigits = 12
)

// MaxAmount is the exclusive upper bound on an amount's magnitude
var MaxAmount = decimal.New(1, MaxAmountDigits)

// ValidateAmount rejects amounts too large or too finely scaled to be a
// business figure. The exponent is checked before any comparison, which
// would otherwise rescale the value.
func ValidateAmount(field string, d decimal.Decimal) error {
	exp := d.Exponent()
	if exp < -MaxAmountPlaces {
		return errors.InvalidInput(field, fmt.Sprintf("must have at most %d decimal places", MaxAmountPlaces))
	}
	if exp >= MaxAmountDigits || d.Abs().Cmp(MaxAmount) >= 0 {
		return errors.InvalidInput(field, "must be less than "+MaxAmount.String())
	}
	return nil
}

// PricingInput is the full set of business inputs for one calculation.
type PricingInput struct {
	// AverageTicket is the average transaction value, > 0
	AverageTicket decimal.Decimal `json:"average_ticket"`

	// TransactionsPerTerminal is the monthly transaction count per terminal, >= 1
	TransactionsPerTerminal int64 `json:"transactions_per_terminal"`

	// TerminalCount is the number of transacting terminals in the estate, >= 1
	TerminalCount int64 `json:"terminal_count"`

	// BasisPointShare is the variable fee in basis points, >= 0
	BasisPointShare decimal.Decimal `json:"basis_point_share"`

	// FixedFeePerTerminal is charged per terminal per month, >= 0
	FixedFeePerTerminal decimal.Decimal `json:"fixed_fee_per_terminal"`

	// FixedFeePerTransaction is charged on every transaction, >= 0
	FixedFeePerTransaction decimal.Decimal `json:"fixed_fee_per_transaction"`
}

// Validate rejects inputs the fee model is not defined for. It never clamps.
func (in PricingInput) Validate() error {
	if !in.AverageTicket.IsPositive() {
		return errors.InvalidInput("average_ticket", "must be greater than zero")
	}
	if err := ValidateAmount("average_ticket", in.AverageTicket); err != nil {
		return err
	}
	if in.TransactionsPerTerminal < 1 {
		return errors.InvalidInput("transactions_per_terminal", "must be at least 1")
	}
	if in.TerminalCount < 1 {
		return errors.InvalidInput("terminal_count", "must be at least 1")
	}
	return ValidateFeeParams(in.BasisPointShare, in.FixedFeePerTerminal, in.FixedFeePerTransaction)
}

// ValidateFeeParams checks the three pricing levers are non-negative.
func ValidateFeeParams(basisPointShare, fixedFeePerTerminal, fixedFeePerTransaction decimal.Decimal) error {
	if basisPointShare.IsNegative() {
		return errors.InvalidInput("basis_point_share", "must not be negative")
	}
	if fixedFeePerTerminal.IsNegative() {
		return errors.InvalidInput("fixed_fee_per_terminal", "must not be negative")
	}
	if fixedFeePerTransaction.IsNegative() {
		return errors.InvalidInput("fixed_fee_per_transaction", "must not be negative")
	}
	if err := ValidateAmount("basis_point_share", basisPointShare); err != nil {
		return err
	}
	if err := ValidateAmount("fixed_fee_per_terminal", fixedFeePerTerminal); err != nil {
		return err
	}
	return ValidateAmount("fixed_fee_per_transaction", fixedFeePerTransaction)
}

// DecimalFromFloat converts a float flag or field value, rejecting NaN and
// infinities which decimal cannot represent.
func DecimalFromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, errors.InvalidInput(field, "must be a finite number")
	}
	return decimal.NewFromFloat(f), nil
}

// Package modes dispatches a pricing input to one of the presentation modes
// and returns the mode's result variant.
package modes

import (
	"strings"

	"aevi-fee/internal/errors"
)

// PricingMode selects which result shape Evaluate produces
type PricingMode string

const (
	// ModeCumulative sums the variable fee and both fixed fees
	ModeCumulative PricingMode = "cumulative"

	// ModeCompare isolates each pricing lever
	ModeCompare PricingMode = "compare"

	// ModeBenchmarkAdyen contrasts the cumulative result with flat
	// per-transaction reference rates
	ModeBenchmarkAdyen PricingMode = "benchmark_adyen"
)

// String returns the string representation
func (m PricingMode) String() string {
	return string(m)
}

// Modes lists every supported mode in display order
func Modes() []PricingMode {
	return []PricingMode{ModeCumulative, ModeCompare, ModeBenchmarkAdyen}
}

// ParseMode accepts the canonical names plus "benchmark" and dash spellings.
func ParseMode(s string) (PricingMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch key {
	case "cumulative":
		return ModeCumulative, nil
	case "compare":
		return ModeCompare, nil
	case "benchmark_adyen", "benchmark", "adyen":
		return ModeBenchmarkAdyen, nil
	}
	return "", errors.InvalidInput("mode", "must be one of cumulative, compare, benchmark_adyen").
		WithContext("value", s)
}

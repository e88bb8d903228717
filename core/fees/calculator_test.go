package fees

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func defaultInput() types.PricingInput {
	return types.PricingInput{
		AverageTicket:           d("25.00"),
		TransactionsPerTerminal: 400,
		TerminalCount:           100,
		BasisPointShare:         d("20"),
		FixedFeePerTerminal:     decimal.Zero,
		FixedFeePerTransaction:  decimal.Zero,
	}
}

func TestComputeFeesDefaultScenario(t *testing.T) {
	in := defaultInput()

	b, err := ComputeFees(in)
	require.NoError(t, err)

	assertDecimal(t, "0.05", b.VariableFeePerTxn)
	assertDecimal(t, "0", b.FixedFeePerTxn)
	assertDecimal(t, "0.05", b.TotalFeePerTxn)
	assertDecimal(t, "20", b.RevenuePerTerminal)
	assertDecimal(t, "2000", EstateRevenue(b, in.TerminalCount))
}

func TestComputeFeesAmortizesTerminalFee(t *testing.T) {
	in := defaultInput()
	in.FixedFeePerTerminal = d("10")

	b, err := ComputeFees(in)
	require.NoError(t, err)

	assertDecimal(t, "0.025", b.FixedFeePerTxn)
	assertDecimal(t, "0.075", b.TotalFeePerTxn)
	assertDecimal(t, "30", b.RevenuePerTerminal)
	assertDecimal(t, "3000", EstateRevenue(b, in.TerminalCount))
}

func TestComputeMatchesRevenueFormula(t *testing.T) {
	// revenue per terminal = var*txns + fixedTxn*txns + fixedTerminal
	tests := []struct {
		name     string
		ticket   string
		txns     int64
		bps      string
		terminal string
		txn      string
	}{
		{"all levers", "25.00", 400, "20", "10", "0.02"},
		{"odd volume", "13.37", 7, "35.5", "9.99", "0.015"},
		{"single txn", "1000", 1, "1", "100", "0"},
		{"small ticket", "0.01", 3000, "150", "0", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compute(d(tt.ticket), tt.txns, d(tt.bps), d(tt.terminal), d(tt.txn))

			assert.True(t, b.TotalFeePerTxn.Equal(b.VariableFeePerTxn.Add(b.FixedFeePerTxn)))
			assert.True(t, b.TotalFeePerTxn.Mul(decimal.NewFromInt(tt.txns)).Sub(b.RevenuePerTerminal).Abs().
				LessThan(d("0.000000000000000000001")))

			txns := decimal.NewFromInt(tt.txns)
			want := b.VariableFeePerTxn.Mul(txns).
				Add(d(tt.txn).Mul(txns)).
				Add(d(tt.terminal))
			assert.True(t, want.Equal(b.RevenuePerTerminal), "want %s, got %s", want, b.RevenuePerTerminal)
		})
	}
}

func TestComputeKeepsFullPrecision(t *testing.T) {
	b := Compute(d("25"), 1, d("0.123456789012345678"), decimal.Zero, decimal.Zero)
	assertDecimal(t, "0.000308641972530864195", b.VariableFeePerTxn)

	b = Compute(d("1"), 3, decimal.Zero, d("10"), decimal.Zero)
	assertDecimal(t, "10", b.RevenuePerTerminal)
	assertDecimal(t, "3.3333333333333333333333333333", b.FixedFeePerTxn)
}

func TestComputeZeroFeesYieldZeroRevenue(t *testing.T) {
	in := defaultInput()
	in.BasisPointShare = decimal.Zero

	b, err := ComputeFees(in)
	require.NoError(t, err)

	assert.True(t, b.IsZero())
	assert.True(t, EstateRevenue(b, in.TerminalCount).IsZero())
}

func TestComputeDivisionGuard(t *testing.T) {
	b := Compute(d("25"), 0, d("20"), d("10"), d("0.02"))

	assertDecimal(t, "0.02", b.FixedFeePerTxn)
	assertDecimal(t, "0.07", b.TotalFeePerTxn)
	assert.True(t, b.RevenuePerTerminal.IsZero())
}

func TestComputeFeesRejectsInvalidInput(t *testing.T) {
	in := defaultInput()
	in.AverageTicket = decimal.Zero

	_, err := ComputeFees(in)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
}

func TestComputeFeesRejectsExtremeAmounts(t *testing.T) {
	for _, ticket := range []string{"1e-2147483648", "1e20000000"} {
		in := defaultInput()
		in.AverageTicket = d(ticket)

		assert.NotPanics(t, func() {
			_, err := ComputeFees(in)
			assert.True(t, errors.IsType(err, errors.TypeInvalidInput), ticket)
		})
	}
}

func TestMonthlyVolumePerTerminal(t *testing.T) {
	assertDecimal(t, "10000", MonthlyVolumePerTerminal(d("25.00"), 400))
}

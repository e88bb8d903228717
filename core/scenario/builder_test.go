package scenario

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aevi-fee/core/fees"
	"aevi-fee/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var wantLabels = []string{"Worst-case Merchant", "Average SMB", "Tier 1 Retail"}

func TestBuildAlwaysReturnsThreeOrderedRows(t *testing.T) {
	levers := []struct {
		name                 string
		bps, terminal, txnFe string
	}{
		{"zero", "0", "0", "0"},
		{"bps only", "20", "0", "0"},
		{"all levers", "35", "12.5", "0.03"},
		{"huge terminal fee", "0", "10000", "0"},
	}

	for _, tt := range levers {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Build(100, d(tt.bps), d(tt.terminal), d(tt.txnFe))
			require.NoError(t, err)
			require.Len(t, rows, 3)
			for i, row := range rows {
				assert.Equal(t, wantLabels[i], row.Profile.Label)
			}
		})
	}
}

func TestBuildMatchesCalculatorPerRow(t *testing.T) {
	rows, err := Build(250, d("20"), d("10"), d("0.01"))
	require.NoError(t, err)

	for i, p := range Profiles() {
		want := fees.Compute(p.AverageTicket, p.TransactionsPerTerminal, d("20"), d("10"), d("0.01"))
		row := rows[i]

		assert.True(t, want.TotalFeePerTxn.Equal(row.Breakdown.TotalFeePerTxn), p.Label)
		assert.True(t, want.RevenuePerTerminal.Mul(decimal.NewFromInt(250)).Equal(row.EstateRevenue), p.Label)
		assert.True(t, p.AverageTicket.Mul(decimal.NewFromInt(p.TransactionsPerTerminal)).Equal(row.MonthlyVolumePerTerminal))
	}
}

func TestBuildAverageSMBRow(t *testing.T) {
	rows, err := Build(100, d("20"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	smb := rows[1]
	assert.True(t, d("0.05").Equal(smb.Breakdown.TotalFeePerTxn))
	assert.True(t, d("20").Equal(smb.Breakdown.RevenuePerTerminal))
	assert.True(t, d("2000").Equal(smb.EstateRevenue))
}

func TestBuildZeroFees(t *testing.T) {
	rows, err := Build(10, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	for _, row := range rows {
		assert.True(t, row.Breakdown.IsZero(), row.Profile.Label)
		assert.True(t, row.EstateRevenue.IsZero(), row.Profile.Label)
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	_, err := Build(0, d("20"), decimal.Zero, decimal.Zero)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))

	_, err = Build(1, d("-1"), decimal.Zero, decimal.Zero)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))

	_, err = Build(1, d("1e-2147483648"), decimal.Zero, decimal.Zero)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))

	_, err = Build(1, decimal.Zero, d("1e20000000"), decimal.Zero)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
}

func TestProfilesReturnsCopy(t *testing.T) {
	p := Profiles()
	p[0].Label = "changed"

	assert.Equal(t, "Worst-case Merchant", Profiles()[0].Label)
}

package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"aevi-fee/core/modes"
	"aevi-fee/core/regional"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func input() types.PricingInput {
	return types.PricingInput{
		AverageTicket:           d("25"),
		TransactionsPerTerminal: 400,
		TerminalCount:           100,
		BasisPointShare:         d("20"),
		FixedFeePerTerminal:     d("10"),
	}
}

func TestEngineFees(t *testing.T) {
	e := New(nil, nil)

	res, err := e.Fees(input())
	require.NoError(t, err)

	assert.True(t, d("0.075").Equal(res.Breakdown.TotalFeePerTxn))
	assert.True(t, d("30").Equal(res.Breakdown.RevenuePerTerminal))
	assert.True(t, d("3000").Equal(res.EstateRevenue))
	assert.True(t, d("10000").Equal(res.MonthlyVolumePerTerminal))
	assert.Equal(t, regional.DefaultRateCardVersion, e.RateCard().Version())
}

func TestEngineCost(t *testing.T) {
	e := New(nil, nil)

	b, err := e.Cost(types.RegionEU, d("25"), d("0.05"))
	require.NoError(t, err)
	assert.True(t, d("0.1875").Equal(b.Total))

	_, err = e.Cost("LATAM", d("25"), d("0.05"))
	assert.True(t, errors.IsType(err, errors.TypeUnsupportedRegion))
}

func TestEngineEvaluateAndScenarios(t *testing.T) {
	e := New(nil, nil)

	res, err := e.Evaluate(modes.ModeCompare, input())
	require.NoError(t, err)
	assert.Equal(t, modes.ModeCompare, res.Mode())

	rows, err := e.Scenarios(100, d("20"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestEngineLogsRejections(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := New(nil, zap.New(core))

	bad := input()
	bad.AverageTicket = decimal.Zero
	_, err := e.Fees(bad)
	require.Error(t, err)

	entries := logs.FilterMessage("calculation rejected").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "fees", fields["op"])
	assert.Equal(t, "INVALID_INPUT", fields["error_type"])
	assert.Equal(t, regional.DefaultRateCardVersion, fields["rate_card"])
}

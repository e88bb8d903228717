package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aevi-fee/core/engine"
	"aevi-fee/core/modes"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func feesResult(t *testing.T) *engine.FeesResult {
	t.Helper()
	res, err := engine.New(nil, nil).Fees(types.PricingInput{
		AverageTicket:           d("25"),
		TransactionsPerTerminal: 400,
		TerminalCount:           100,
		BasisPointShare:         d("20"),
		FixedFeePerTerminal:     d("10"),
	})
	require.NoError(t, err)
	return res
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		value    string
		places   int32
		currency types.Currency
		want     string
	}{
		{"2000", 2, types.CurrencyEUR, "€2,000.00"},
		{"1234567.891", 2, types.CurrencyUSD, "$1,234,567.89"},
		{"0.075", 4, types.CurrencyGBP, "£0.0750"},
		{"-0.075", 4, types.CurrencyUSD, "-$0.0750"},
		{"-0.00001", 2, types.CurrencyEUR, "€0.00"},
		{"999", 2, types.Currency("CHF"), "CHF 999.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(d(tt.value), tt.places, tt.currency))
		})
	}
}

func TestFormatValueKinds(t *testing.T) {
	assert.Equal(t, "0.30%", FormatValue(Row{Value: d("0.003"), Kind: KindPercent, Places: 2}, types.CurrencyEUR))
	assert.Equal(t, "12,500", FormatValue(Row{Value: d("12500"), Kind: KindCount}, types.CurrencyEUR))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("xml")
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
}

func TestCLIRenderFees(t *testing.T) {
	f, err := NewFormatter(FormatCLI)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, FeesReport(feesResult(t), types.CurrencyEUR)))

	out := buf.String()
	assert.Contains(t, out, "AEVI FEE CALCULATOR")
	assert.Contains(t, out, "€10,000.00")
	assert.Contains(t, out, "€0.0750")
	assert.Contains(t, out, "€3,000.00")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), Disclaimer))
}

func TestMarkdownRenderCompare(t *testing.T) {
	result, err := engine.New(nil, nil).Evaluate(modes.ModeCompare, types.PricingInput{
		AverageTicket:           d("25"),
		TransactionsPerTerminal: 400,
		TerminalCount:           100,
		BasisPointShare:         d("20"),
		FixedFeePerTerminal:     d("10"),
		FixedFeePerTransaction:  d("0.02"),
	})
	require.NoError(t, err)

	f, err := NewFormatter(FormatMarkdown)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, ModeReport(result, types.CurrencyUSD)))

	out := buf.String()
	assert.Contains(t, out, "# Compare Pricing Levers")
	assert.Contains(t, out, "## BPs Share Only")
	assert.Contains(t, out, "## Fixed Fee per Terminal Only")
	assert.Contains(t, out, "| Total Aevi Fee per Transaction | $0.0200 |")
}

func TestJSONRenderKeepsFullPrecision(t *testing.T) {
	f, err := NewFormatter(FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, FeesReport(feesResult(t), types.CurrencyEUR)))

	var decoded struct {
		Title    string `json:"title"`
		Currency string `json:"currency"`
		Result   struct {
			Breakdown struct {
				TotalFeePerTxn string `json:"total_fee_per_txn"`
			} `json:"breakdown"`
			EstateRevenue string `json:"estate_revenue"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "EUR", decoded.Currency)
	assert.Equal(t, "0.075", decoded.Result.Breakdown.TotalFeePerTxn)
	assert.Equal(t, "3000", decoded.Result.EstateRevenue)
}

func TestRateCardReportListsEveryRegion(t *testing.T) {
	card := engine.New(nil, nil).RateCard()
	report := RateCardReport(card, types.CurrencyEUR)

	require.Len(t, report.Sections, len(card.Regions()))
	for i, region := range card.Regions() {
		assert.Equal(t, region.String(), report.Sections[i].Heading)
	}
}

func TestNewFormatterRejectsUnknown(t *testing.T) {
	_, err := NewFormatter(Format("pdf"))
	assert.Error(t, err)
}

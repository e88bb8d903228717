package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"aevi-fee/core/engine"
	"aevi-fee/core/modes"
	"aevi-fee/core/regional"
	"aevi-fee/core/scenario"
	"aevi-fee/core/types"
)

// Per-transaction figures show 4 places, everything else 2.
const (
	txnPlaces   int32 = 4
	totalPlaces int32 = 2
)

// Disclaimer closes every fee report
const Disclaimer = "This tool is a simplified revenue model. For detailed or custom pricing scenarios, consult the Aevi team."

func money(label string, v decimal.Decimal, places int32) Row {
	return Row{Label: label, Value: v, Kind: KindMoney, Places: places}
}

func breakdownRows(b types.FeeBreakdown) []Row {
	return []Row{
		money("Aevi Variable Fee per Transaction", b.VariableFeePerTxn, txnPlaces),
		money("Aevi Fixed Fee per Transaction", b.FixedFeePerTxn, txnPlaces),
		money("Total Aevi Fee per Transaction", b.TotalFeePerTxn, txnPlaces),
		money("Monthly Revenue per Terminal", b.RevenuePerTerminal, totalPlaces),
	}
}

// FeesReport renders a single fee calculation
func FeesReport(res *engine.FeesResult, currency types.Currency) *Report {
	rows := []Row{money("Monthly Transaction Volume per Terminal", res.MonthlyVolumePerTerminal, totalPlaces)}
	rows = append(rows, breakdownRows(res.Breakdown)...)
	rows = append(rows, money("Total Aevi Revenue per Month (Estate)", res.EstateRevenue, totalPlaces))

	return &Report{
		Title:    "Aevi Fee Calculator",
		Currency: currency,
		Sections: []Section{{Heading: "Results", Rows: rows}},
		Notes:    []string{Disclaimer},
		Data:     res,
	}
}

// CostReport renders an itemized regional cost
func CostReport(b *types.CostBreakdown, currency types.Currency) *Report {
	return &Report{
		Title:    "Total Cost per Transaction (" + b.Region.String() + ")",
		Currency: currency,
		Sections: []Section{{Rows: []Row{
			money("Interchange", b.Interchange, txnPlaces),
			money("Scheme", b.Scheme, txnPlaces),
			money("Acquirer", b.Acquirer, txnPlaces),
			money("Aevi Fee", b.AeviFee, txnPlaces),
			money("Total Cost per Transaction", b.Total, txnPlaces),
		}}},
		Data: b,
	}
}

// ModeReport renders any pricing mode result
func ModeReport(result modes.ModeResult, currency types.Currency) *Report {
	report := &Report{
		Currency: currency,
		Notes:    []string{Disclaimer},
		Data: struct {
			Mode   modes.PricingMode `json:"mode"`
			Result modes.ModeResult  `json:"result"`
		}{result.Mode(), result},
	}

	switch r := result.(type) {
	case *modes.CumulativeResult:
		report.Title = "Cumulative Pricing"
		report.Sections = cumulativeSections(r)
	case *modes.CompareResult:
		report.Title = "Compare Pricing Levers"
		report.Sections = []Section{
			isolatedSection("BPs Share Only", r.BPsOnly),
			isolatedSection("Fixed Fee per Transaction Only", r.FixedPerTxnOnly),
			isolatedSection("Fixed Fee per Terminal Only", r.FixedPerTerminalOnly),
		}
	case *modes.BenchmarkResult:
		report.Title = "Benchmark vs Adyen"
		report.Sections = cumulativeSections(&r.Cumulative)
		for _, b := range r.Benchmarks {
			report.Sections = append(report.Sections, Section{
				Heading: b.Label,
				Rows: []Row{
					money("Fee per Transaction", b.FeePerTxn, txnPlaces),
					money("Revenue per Terminal", b.RevenuePerTerminal, totalPlaces),
					money("Estate Revenue", b.EstateRevenue, totalPlaces),
				},
			})
		}
	}
	return report
}

func cumulativeSections(r *modes.CumulativeResult) []Section {
	rows := []Row{money("Monthly Transaction Volume per Terminal", r.MonthlyVolumePerTerminal, totalPlaces)}
	rows = append(rows, breakdownRows(r.Breakdown)...)
	rows = append(rows, money("Total Aevi Revenue per Month (Estate)", r.EstateRevenue, totalPlaces))

	return []Section{
		{Heading: "Aevi Fees", Rows: rows},
		{Heading: "Total Cost per Transaction", Rows: []Row{
			money("EU", r.EUCostPerTxn, txnPlaces),
			money("US (credit)", r.USCostPerTxn, txnPlaces),
		}},
	}
}

func isolatedSection(heading string, f modes.IsolatedFee) Section {
	rows := breakdownRows(f.Breakdown)
	rows = append(rows, money("Estate Revenue", f.EstateRevenue, totalPlaces))
	return Section{Heading: heading, Rows: rows}
}

// ScenarioReport renders the reference merchant table
func ScenarioReport(rows []scenario.Result, currency types.Currency) *Report {
	report := &Report{
		Title:    "Scenario Comparison",
		Currency: currency,
		Notes:    []string{Disclaimer},
		Data:     rows,
	}
	for _, r := range rows {
		report.Sections = append(report.Sections, Section{
			Heading: fmt.Sprintf("%s (%d txns × %s)", r.Profile.Label,
				r.Profile.TransactionsPerTerminal, FormatMoney(r.Profile.AverageTicket, totalPlaces, currency)),
			Rows: []Row{
				money("Total Aevi Fee per Transaction", r.Breakdown.TotalFeePerTxn, txnPlaces),
				money("Monthly Revenue per Terminal", r.Breakdown.RevenuePerTerminal, totalPlaces),
				money("Total Aevi Revenue per Month (Estate)", r.EstateRevenue, totalPlaces),
			},
		})
	}
	return report
}

// RateCardReport renders every region of a rate card
func RateCardReport(card *regional.RateCard, currency types.Currency) *Report {
	report := &Report{
		Title:    "Regional Rate Card " + card.Version(),
		Currency: currency,
		Data: struct {
			Version string                                      `json:"version"`
			Regions map[types.Region]regional.RegionalCostRates `json:"regions"`
		}{card.Version(), card.All()},
	}
	for _, region := range card.Regions() {
		rates, _ := card.Rates(region)
		report.Sections = append(report.Sections, Section{
			Heading: region.String(),
			Rows: []Row{
				{Label: "Interchange", Value: rates.InterchangeRate, Kind: KindPercent, Places: 2},
				money("Interchange (fixed)", rates.InterchangeFixed, totalPlaces),
				{Label: "Scheme", Value: rates.SchemeRate, Kind: KindPercent, Places: 2},
				money("Scheme (fixed)", rates.SchemeFixed, totalPlaces),
				{Label: "Acquirer", Value: rates.AcquirerRate, Kind: KindPercent, Places: 2},
				money("Acquirer (fixed)", rates.AcquirerFixed, totalPlaces),
			},
		})
	}
	return report
}

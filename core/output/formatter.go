// Package output renders calculation results for people and machines.
// Rounding happens here and nowhere else.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCLI, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", errors.InvalidInput("format", "must be one of cli, json, markdown").WithContext("value", s)
}

// Kind controls how a row value is displayed
type Kind int

const (
	KindMoney Kind = iota
	KindPercent
	KindCount
)

// Row is one labelled figure
type Row struct {
	Label  string
	Value  decimal.Decimal
	Kind   Kind
	Places int32
}

// Section groups rows under a heading
type Section struct {
	Heading string
	Rows    []Row
}

// Report is a rendered-agnostic view of a result
type Report struct {
	Title    string
	Currency types.Currency
	Sections []Section
	Notes    []string

	// Data is the structured result emitted by the JSON formatter
	Data interface{}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report to w
	Render(w io.Writer, report *Report) error
}

// NewFormatter returns the formatter for f
func NewFormatter(f Format) (Formatter, error) {
	switch f {
	case FormatCLI:
		return cliFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatMarkdown:
		return markdownFormatter{}, nil
	}
	return nil, errors.InvalidInput("format", "is not supported").WithContext("value", string(f))
}

// FormatValue renders a row value with its display rounding
func FormatValue(row Row, currency types.Currency) string {
	switch row.Kind {
	case KindPercent:
		return row.Value.Mul(decimal.NewFromInt(100)).StringFixed(row.Places) + "%"
	case KindCount:
		return groupThousands(row.Value.StringFixed(row.Places))
	}
	return FormatMoney(row.Value, row.Places, currency)
}

// FormatMoney renders an amount as e.g. "€2,000.00" or "-$0.0750"
func FormatMoney(value decimal.Decimal, places int32, currency types.Currency) string {
	s := groupThousands(value.Abs().StringFixed(places))
	if value.Round(places).IsNegative() {
		return "-" + currency.Symbol() + s
	}
	return currency.Symbol() + s
}

func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

type cliFormatter struct{}

func (cliFormatter) Format() Format { return FormatCLI }

func (cliFormatter) Render(w io.Writer, report *Report) error {
	const width = 73
	line := strings.Repeat("─", width)

	fmt.Fprintf(w, "┌%s┐\n", line)
	fmt.Fprintf(w, "│ %-*s │\n", width-2, strings.ToUpper(truncate(report.Title, width-2)))
	for _, section := range report.Sections {
		fmt.Fprintf(w, "├%s┤\n", line)
		if section.Heading != "" {
			fmt.Fprintf(w, "│ %-*s │\n", width-2, truncate(section.Heading, width-2))
		}
		for _, row := range section.Rows {
			fmt.Fprintf(w, "│   %-46s %22s │\n", truncate(row.Label, 46), FormatValue(row, report.Currency))
		}
	}
	fmt.Fprintf(w, "└%s┘\n", line)

	for _, note := range report.Notes {
		fmt.Fprintf(w, "%s\n", note)
	}
	return nil
}

type markdownFormatter struct{}

func (markdownFormatter) Format() Format { return FormatMarkdown }

func (markdownFormatter) Render(w io.Writer, report *Report) error {
	fmt.Fprintf(w, "# %s\n", report.Title)
	for _, section := range report.Sections {
		fmt.Fprintln(w)
		if section.Heading != "" {
			fmt.Fprintf(w, "## %s\n\n", section.Heading)
		}
		fmt.Fprintln(w, "| Metric | Value |")
		fmt.Fprintln(w, "|---|---:|")
		for _, row := range section.Rows {
			fmt.Fprintf(w, "| %s | %s |\n", row.Label, FormatValue(row, report.Currency))
		}
	}
	if len(report.Notes) > 0 {
		fmt.Fprintln(w)
		for _, note := range report.Notes {
			fmt.Fprintf(w, "_%s_\n", note)
		}
	}
	return nil
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Title    string         `json:"title"`
		Currency types.Currency `json:"currency"`
		Result   interface{}    `json:"result"`
	}{report.Title, report.Currency, report.Data})
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

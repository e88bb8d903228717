// Package ratecard loads versioned regional rate cards from HCL files.
//
//	version = "2025.2"
//
//	region "EU" {
//	  interchange_rate = 0.003
//	  scheme_rate      = 0.001
//	  acquirer_rate    = 0.0015
//	}
package ratecard

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"aevi-fee/core/regional"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

type fileSchema struct {
	Version string        `hcl:"version"`
	Regions []regionBlock `hcl:"region,block"`
}

type regionBlock struct {
	Name             string  `hcl:"name,label"`
	InterchangeRate  float64 `hcl:"interchange_rate,optional"`
	InterchangeFixed float64 `hcl:"interchange_fixed,optional"`
	SchemeRate       float64 `hcl:"scheme_rate,optional"`
	SchemeFixed      float64 `hcl:"scheme_fixed,optional"`
	AcquirerRate     float64 `hcl:"acquirer_rate,optional"`
	AcquirerFixed    float64 `hcl:"acquirer_fixed,optional"`
}

// Loader parses rate card files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new rate card loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// LoadFile reads and parses the rate card at path
func (l *Loader) LoadFile(path string) (*regional.RateCard, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read rate card", err).WithContext("path", path)
	}
	return l.Parse(src, path)
}

// Parse decodes an HCL rate card. The parser caches by filename, so a Loader
// returns the first parse for a repeated name.
func (l *Loader) Parse(src []byte, filename string) (*regional.RateCard, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid rate card", diagError(diags))
	}

	var doc fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Parsing("invalid rate card", diagError(diags))
	}

	regions := make(map[types.Region]regional.RegionalCostRates, len(doc.Regions))
	for _, block := range doc.Regions {
		region := types.ParseRegion(block.Name)
		if _, dup := regions[region]; dup {
			return nil, errors.Parsing(fmt.Sprintf("region %s declared twice", region), nil)
		}
		regions[region] = regional.RegionalCostRates{
			InterchangeRate:  decimal.NewFromFloat(block.InterchangeRate),
			InterchangeFixed: decimal.NewFromFloat(block.InterchangeFixed),
			SchemeRate:       decimal.NewFromFloat(block.SchemeRate),
			SchemeFixed:      decimal.NewFromFloat(block.SchemeFixed),
			AcquirerRate:     decimal.NewFromFloat(block.AcquirerRate),
			AcquirerFixed:    decimal.NewFromFloat(block.AcquirerFixed),
		}
	}

	return regional.NewRateCard(doc.Version, regions)
}

// diagError keeps the first error diagnostic with its source position
func diagError(diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		if diag.Subject != nil {
			return fmt.Errorf("%s:%d: %s: %s", diag.Subject.Filename, diag.Subject.Start.Line, diag.Summary, diag.Detail)
		}
		return fmt.Errorf("%s: %s", diag.Summary, diag.Detail)
	}
	return diags
}

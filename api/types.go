// Package api - API types for the fee model
// These types define the contract for the /api endpoints.
// API is stateless, idempotent, and deterministic.
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"aevi-fee/core/types"
)

// EvaluateRequest is the input to POST /api/evaluate. Decimal fields accept
// JSON numbers or strings.
type EvaluateRequest struct {
	// Mode is cumulative, compare or benchmark_adyen (default cumulative)
	Mode string `json:"mode"`

	types.PricingInput
}

// CostRequest is the input to POST /api/costs
type CostRequest struct {
	Region        string          `json:"region"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	AeviFeePerTxn decimal.Decimal `json:"aevi_fee_per_txn"`
}

// ScenarioRequest is the input to POST /api/scenarios
type ScenarioRequest struct {
	TerminalCount          int64           `json:"terminal_count"`
	BasisPointShare        decimal.Decimal `json:"basis_point_share"`
	FixedFeePerTerminal    decimal.Decimal `json:"fixed_fee_per_terminal"`
	FixedFeePerTransaction decimal.Decimal `json:"fixed_fee_per_transaction"`
}

// Response wraps every calculation result
type Response struct {
	Currency types.Currency   `json:"currency"`
	Mode     string           `json:"mode,omitempty"`
	Result   json.RawMessage  `json:"result"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	RequestID     string `json:"request_id"`
	InputHash     string `json:"input_hash,omitempty"`
	EngineVersion string `json:"engine_version"`
	RateCard      string `json:"rate_card"`
	Cached        bool   `json:"cached"`
	DurationMs    int64  `json:"duration_ms"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable code and a readable message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

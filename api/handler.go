// Package api - HTTP handlers for the fee model
// This handler wraps the engine - it contains NO fee logic.
// All logic is delegated to core packages.
package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"aevi-fee/adapters/cache"
	"aevi-fee/core/engine"
	"aevi-fee/core/modes"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

// Handler handles calculation requests
type Handler struct {
	// Dependencies
	engine *engine.Engine
	cache  cache.Cache
	logger *zap.Logger

	// Configuration
	cacheTTL time.Duration
	currency types.Currency
	version  string
}

// NewHandler creates a new handler
func NewHandler(eng *engine.Engine, opts Options) *Handler {
	if eng == nil {
		eng = engine.New(nil, opts.Logger)
	}
	return &Handler{
		engine:   eng,
		cache:    opts.Cache,
		logger:   opts.Logger,
		cacheTTL: opts.CacheTTL,
		currency: opts.Currency,
		version:  opts.Version,
	}
}

// Rates handles GET /api/rates
func (h *Handler) Rates(c *fiber.Ctx) error {
	card := h.engine.RateCard()
	return h.respond(c, "", "", struct {
		Version string      `json:"version"`
		Regions interface{} `json:"regions"`
	}{card.Version(), card.All()}, time.Now())
}

// Fees handles POST /api/fees
func (h *Handler) Fees(c *fiber.Ctx) error {
	start := time.Now()

	var in types.PricingInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return writeInvalidJSON(c, err)
	}

	// Execute engine (NO FEE LOGIC HERE)
	res, err := h.engine.Fees(in)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, "", "", res, start)
}

// Costs handles POST /api/costs
func (h *Handler) Costs(c *fiber.Ctx) error {
	start := time.Now()

	var req CostRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return writeInvalidJSON(c, err)
	}

	res, err := h.engine.Cost(types.ParseRegion(req.Region), req.AverageTicket, req.AeviFeePerTxn)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, "", "", res, start)
}

// Evaluate handles POST /api/evaluate
func (h *Handler) Evaluate(c *fiber.Ctx) error {
	start := time.Now()

	var req EvaluateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return writeInvalidJSON(c, err)
	}
	if req.Mode == "" {
		req.Mode = string(modes.ModeCumulative)
	}
	mode, err := modes.ParseMode(req.Mode)
	if err != nil {
		return writeError(c, err)
	}
	req.Mode = string(mode)

	return h.cached(c, "evaluate", string(mode), req, start, func() (interface{}, error) {
		return h.engine.Evaluate(mode, req.PricingInput)
	})
}

// Scenarios handles POST /api/scenarios
func (h *Handler) Scenarios(c *fiber.Ctx) error {
	start := time.Now()

	var req ScenarioRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return writeInvalidJSON(c, err)
	}

	return h.cached(c, "scenarios", "", req, start, func() (interface{}, error) {
		return h.engine.Scenarios(req.TerminalCount, req.BasisPointShare, req.FixedFeePerTerminal, req.FixedFeePerTransaction)
	})
}

// cached serves a response from the cache when the same request was priced
// before, otherwise runs compute and stores the result. Cache failures are
// logged and never fail the request.
func (h *Handler) cached(c *fiber.Ctx, op, mode string, req interface{}, start time.Time, compute func() (interface{}, error)) error {
	ctx := c.UserContext()
	inputHash := computeInputHash(op, h.engine.RateCard().Version(), req)
	key := op + ":" + inputHash

	if data, ok, err := h.cache.Get(ctx, key); err != nil {
		h.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return h.write(c, mode, inputHash, true, data, start)
	}

	res, err := compute()
	if err != nil {
		return writeError(c, err)
	}
	data, err := json.Marshal(res)
	if err != nil {
		return writeError(c, errors.Internal("failed to encode result", err))
	}

	h.store(ctx, key, data)
	return h.write(c, mode, inputHash, false, data, start)
}

func (h *Handler) store(ctx context.Context, key string, data []byte) {
	if err := h.cache.Set(ctx, key, data, h.cacheTTL); err != nil {
		h.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (h *Handler) respond(c *fiber.Ctx, mode, inputHash string, res interface{}, start time.Time) error {
	data, err := json.Marshal(res)
	if err != nil {
		return writeError(c, errors.Internal("failed to encode result", err))
	}
	return h.write(c, mode, inputHash, false, data, start)
}

func (h *Handler) write(c *fiber.Ctx, mode, inputHash string, hit bool, data []byte, start time.Time) error {
	currency, err := h.requestCurrency(c)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON(c, fiber.StatusOK, Response{
		Currency: currency,
		Mode:     mode,
		Result:   data,
		Metadata: ResponseMetadata{
			RequestID:     requestID(c),
			InputHash:     inputHash,
			EngineVersion: h.version,
			RateCard:      h.engine.RateCard().Version(),
			Cached:        hit,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	})
}

func (h *Handler) requestCurrency(c *fiber.Ctx) (types.Currency, error) {
	q := c.Query("currency")
	if q == "" {
		return h.currency, nil
	}
	currency, ok := types.ParseCurrency(q)
	if !ok {
		return "", errors.InvalidInput("currency", "must be one of EUR, USD, GBP").WithContext("value", q)
	}
	return currency, nil
}

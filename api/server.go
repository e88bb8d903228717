// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration, output serialization.
// The API NEVER performs fee logic.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"aevi-fee/adapters/cache"
	"aevi-fee/core/engine"
	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
)

const requestIDKey = "requestid"

// Options configures a Server
type Options struct {
	// Version is reported by /health and /version
	Version string

	// Currency labels responses; requests may override it with ?currency=
	Currency types.Currency

	// CORSOrigins is a comma-separated allow list
	CORSOrigins string

	// Cache stores evaluate and scenario responses; nil disables caching
	Cache cache.Cache

	// CacheTTL is how long cached responses live
	CacheTTL time.Duration

	// Logger receives one line per request
	Logger *zap.Logger
}

// Server is the API server
type Server struct {
	app     *fiber.App
	handler *Handler
	version string
	logger  *zap.Logger
}

// NewServer creates a new API server around eng
func NewServer(eng *engine.Engine, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cache == nil {
		opts.Cache = cache.Noop{}
	}
	if opts.Currency == "" {
		opts.Currency = types.CurrencyEUR
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	s := &Server{
		handler: NewHandler(eng, opts),
		version: opts.Version,
		logger:  opts.Logger,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "aevi-fee",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	// logRequests wraps recover so panicking requests are logged with their 500
	s.app.Use(s.logRequests)
	s.app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Supporting endpoints
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/version", s.handleVersion)

	// Core endpoints
	api := s.app.Group("/api")
	api.Get("/rates", s.handler.Rates)
	api.Post("/fees", s.handler.Fees)
	api.Post("/costs", s.handler.Costs)
	api.Post("/evaluate", s.handler.Evaluate)
	api.Post("/scenarios", s.handler.Scenarios)
}

// App exposes the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the server
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr), zap.String("version", s.version))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version":     s.version,
		"engine":      "aevi-fee",
		"rate_card":   s.handler.engine.RateCard().Version(),
		"api_version": "v1",
	})
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
		err = nil
	}

	s.logger.Info("request",
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

// handleError turns errors escaping handlers into the error envelope
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return writeJSON(c, fe.Code, ErrorResponse{Error: ErrorBody{Code: code, Message: fe.Message}})
	}
	return writeError(c, err)
}

// Helper functions

func writeJSON(c *fiber.Ctx, status int, v interface{}) error {
	return c.Status(status).JSON(v)
}

// writeError maps domain errors onto HTTP statuses
func writeError(c *fiber.Ctx, err error) error {
	body := ErrorBody{Code: string(errors.TypeInternal), Message: "internal error"}
	status := fiber.StatusInternalServerError

	if de, ok := errors.As(err); ok {
		switch de.Type {
		case errors.TypeInvalidInput, errors.TypeUnsupportedRegion, errors.TypeParsing:
			status = fiber.StatusBadRequest
			body.Code = string(de.Type)
			body.Message = de.Message
			if field, ok := de.Context["field"].(string); ok {
				body.Field = field
			}
		}
	}
	return writeJSON(c, status, ErrorResponse{Error: body})
}

func writeInvalidJSON(c *fiber.Ctx, err error) error {
	return writeJSON(c, fiber.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    "INVALID_JSON",
		Message: err.Error(),
	}})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// computeInputHash fingerprints a request together with the operation and
// rate card that will price it.
func computeInputHash(op, rateCard string, req interface{}) string {
	data, _ := json.Marshal(struct {
		Op       string      `json:"op"`
		RateCard string      `json:"rate_card"`
		Request  interface{} `json:"request"`
	}{op, rateCard, req})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"aevi-fee/core/types"
	"aevi-fee/internal/errors"
	"aevi-fee/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "AEVI_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Cache contains cache configuration
	Cache CacheConfig `json:"cache"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// DefaultCurrency selects the display symbol
	DefaultCurrency types.Currency `json:"default_currency"`

	// RateCardPath is an HCL rate card; empty uses the built-in rates
	RateCardPath string `json:"rate_card_path,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, markdown, json)
	DefaultFormat string `json:"default_format"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// CORSOrigins is a comma-separated allow list
	CORSOrigins string `json:"cors_origins"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	// Enabled enables response caching
	Enabled bool `json:"enabled"`

	// RedisAddr selects redis; empty means an in-process cache
	RedisAddr string `json:"redis_addr,omitempty"`

	// RedisPassword authenticates to redis
	RedisPassword string `json:"-"`

	// RedisDB is the redis database index
	RedisDB int `json:"redis_db"`

	// TTLSeconds is how long to keep responses
	TTLSeconds int `json:"ttl_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			DefaultCurrency: types.CurrencyEUR,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: "*",
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: 3600,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.aevi-fee.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".aevi-fee.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err).WithContext("path", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config", err).WithContext("path", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadEnv loads a .env file into the process environment if present.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logging.Debug("no .env file loaded")
	}
}

// ApplyEnv overrides fields from AEVI_* environment variables
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("CURRENCY"); ok {
		c.Pricing.DefaultCurrency = types.Currency(v)
	}
	if v, ok := lookup("RATE_CARD"); ok {
		c.Pricing.RateCardPath = v
	}
	if v, ok := lookup("OUTPUT_FORMAT"); ok {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookup("ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup("CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok {
		c.Cache.RedisAddr = v
		c.Cache.Enabled = true
	}
	if v, ok := lookup("REDIS_PASSWORD"); ok {
		c.Cache.RedisPassword = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.Logging.Format = v
	}

	var err error
	if c.Cache.Enabled, err = lookupBool("CACHE_ENABLED", c.Cache.Enabled); err != nil {
		return err
	}
	if c.Cache.TTLSeconds, err = lookupInt("CACHE_TTL_SECONDS", c.Cache.TTLSeconds); err != nil {
		return err
	}
	if c.Cache.RedisDB, err = lookupInt("REDIS_DB", c.Cache.RedisDB); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	currency, ok := types.ParseCurrency(string(c.Pricing.DefaultCurrency))
	if !ok {
		return errors.Config("unsupported currency "+string(c.Pricing.DefaultCurrency), nil)
	}
	c.Pricing.DefaultCurrency = currency

	switch c.Output.DefaultFormat {
	case "cli", "markdown", "json":
	default:
		return errors.Config("unsupported output format "+c.Output.DefaultFormat, nil)
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.Config("cache ttl_seconds must not be negative", nil)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func lookupInt(key string, def int) (int, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def, errors.Config(EnvPrefix+key+" must be an integer", err)
	}
	return i, nil
}

func lookupBool(key string, def bool) (bool, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, errors.Config(EnvPrefix+key+" must be a boolean", err)
	}
	return b, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

// Package config materializes the wallet emulator's settings from an optional
// YAML file and environment variables, with environment taking precedence.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither file nor environment provide a value.
const (
	DefaultGatewayHost   = "localhost"
	DefaultGatewayPort   = 50051
	DefaultNetwork       = "devnet"
	DefaultAmountIn      = 1000
	DefaultStatusRetries = 10
	DefaultStatusDelayMs = 2000
)

// ConfigError reports unusable configuration material, such as malformed
// private-key bytes.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config %s: %v", e.Field, e.Err) }

func (e *ConfigError) Unwrap() error { return e.Err }

// Config is the flat settings record for one run. Beyond numeric coercion no
// validation happens here; a bad private key surfaces when the wallet loads.
type Config struct {
	PrivateKey  string `yaml:"private_key"`
	GatewayHost string `yaml:"gateway_host"`
	GatewayPort int    `yaml:"gateway_port"`

	TokenMintX string `yaml:"token_mint_x"`
	TokenMintY string `yaml:"token_mint_y"`
	AmountIn   uint64 `yaml:"amount_in"`
	MinOut     uint64 `yaml:"min_out"`
	IsSwapXToY bool   `yaml:"is_swap_x_to_y"`
	Network    string `yaml:"network"`
	RefCode    string `yaml:"ref_code"`
	Label      string `yaml:"label"`

	StatusRetries int `yaml:"status_retries"`
	StatusDelayMs int `yaml:"status_delay_ms"`

	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`

	// TrackingID is generated per run. Random, not collision-resistant.
	TrackingID string `yaml:"-"`
}

// Load hydrates a Config from an optional YAML file at path (empty path skips
// the file), applies environment overrides, then fills defaults and generates
// the run's tracking id.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.TrackingID = newTrackingID()
	return &cfg, nil
}

// FromEnv loads configuration from the environment alone.
func FromEnv() (*Config, error) { return Load("") }

// GatewayURL is the base URL of the gateway's HTTP surface.
func (c *Config) GatewayURL() string {
	return fmt.Sprintf("http://%s:%d", c.GatewayHost, c.GatewayPort)
}

// StatusDelay is the fixed pause between status polls.
func (c *Config) StatusDelay() time.Duration {
	return time.Duration(c.StatusDelayMs) * time.Millisecond
}

// Environment overrides carry a DARKLAKE_ prefix.
func (c *Config) applyEnv() error {
	setString(&c.PrivateKey, "DARKLAKE_PRIVATE_KEY")
	setString(&c.GatewayHost, "DARKLAKE_GATEWAY_HOST")
	setString(&c.TokenMintX, "DARKLAKE_TOKEN_MINT_X")
	setString(&c.TokenMintY, "DARKLAKE_TOKEN_MINT_Y")
	setString(&c.Network, "DARKLAKE_NETWORK")
	setString(&c.RefCode, "DARKLAKE_REF_CODE")
	setString(&c.Label, "DARKLAKE_LABEL")
	setString(&c.LogLevel, "DARKLAKE_LOG_LEVEL")
	setString(&c.MetricsAddr, "DARKLAKE_METRICS_ADDR")

	if err := setInt(&c.GatewayPort, "DARKLAKE_GATEWAY_PORT"); err != nil {
		return err
	}
	if err := setUint64(&c.AmountIn, "DARKLAKE_AMOUNT_IN"); err != nil {
		return err
	}
	if err := setUint64(&c.MinOut, "DARKLAKE_MIN_OUT"); err != nil {
		return err
	}
	if err := setInt(&c.StatusRetries, "DARKLAKE_STATUS_RETRIES"); err != nil {
		return err
	}
	if err := setInt(&c.StatusDelayMs, "DARKLAKE_STATUS_DELAY_MS"); err != nil {
		return err
	}
	if v := os.Getenv("DARKLAKE_SWAP_X_TO_Y"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Field: "DARKLAKE_SWAP_X_TO_Y", Err: err}
		}
		c.IsSwapXToY = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.GatewayHost == "" {
		c.GatewayHost = DefaultGatewayHost
	}
	if c.GatewayPort == 0 {
		c.GatewayPort = DefaultGatewayPort
	}
	if c.Network == "" {
		c.Network = DefaultNetwork
	}
	if c.AmountIn == 0 {
		c.AmountIn = DefaultAmountIn
	}
	if c.StatusRetries == 0 {
		c.StatusRetries = DefaultStatusRetries
	}
	if c.StatusDelayMs == 0 {
		c.StatusDelayMs = DefaultStatusDelayMs
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ConfigError{Field: key, Err: err}
	}
	*dst = n
	return nil
}

func setUint64(dst *uint64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return &ConfigError{Field: key, Err: err}
	}
	*dst = n
	return nil
}

// newTrackingID yields "trk-" plus 16 hex characters. Unique per run in
// practice, not guaranteed collision-free.
func newTrackingID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "trk-" + hex.EncodeToString(b[:])
}

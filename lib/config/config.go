// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load and LoadFile.
const (
	EnvConfigFile = "BOXOFFICE_CONFIG"
	EnvAPIURL     = "BOXOFFICE_API_URL"
	EnvLogLevel   = "BOXOFFICE_LOG_LEVEL"
)

// DotEnvFile is the file Load reads environment variables from.
const DotEnvFile = ".env"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is a platform running on the developer's machine.
	Development Environment = "development"
	// Staging is a shared pre-production platform.
	Staging Environment = "staging"
	// Production is the live box office.
	Production Environment = "production"
)

// Config is the complete client configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	API          APIConfig          `yaml:"api"`
	Autocomplete AutocompleteConfig `yaml:"autocomplete"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Display      DisplayConfig      `yaml:"display"`
	Session      SessionConfig      `yaml:"session"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Per-environment overrides, applied after the base values.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains the fields an environment section may set.
// Empty values leave the base value alone.
type ConfigOverrides struct {
	API      *APIConfig     `yaml:"api,omitempty"`
	Display  *DisplayConfig `yaml:"display,omitempty"`
	LogLevel string         `yaml:"log_level,omitempty"`
}

// APIConfig locates the ticketing platform.
type APIConfig struct {
	// BaseURL is the platform root, e.g. https://tickets.example.com.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request, as a Go duration.
	// Default: 15s
	Timeout string `yaml:"timeout"`

	// Compression negotiates gzip/zstd response bodies.
	// Default: true
	Compression *bool `yaml:"compression,omitempty"`
}

// AutocompleteConfig tunes the search box.
type AutocompleteConfig struct {
	// MinChars is the shortest input that triggers suggestions.
	MinChars int `yaml:"min_chars"`
	// Debounce is the quiet period before a request, as a Go duration.
	Debounce string `yaml:"debounce"`
	// MaxSuggestions caps the list.
	MaxSuggestions int `yaml:"max_suggestions"`
}

// CatalogConfig tunes ticket loading.
type CatalogConfig struct {
	// Limit bounds a single ticket or event list request.
	Limit int `yaml:"limit"`
}

// DisplayConfig controls how prices, dates and notices are shown.
type DisplayConfig struct {
	// Currency is the ISO 4217 code prices are shown in.
	Currency string `yaml:"currency"`
	// Language is the BCP 47 tag used for number grouping.
	Language string `yaml:"language"`
	// TimeLayout is a Go time layout for event dates.
	TimeLayout string `yaml:"time_layout"`
	// TimeZone is an IANA zone name; "Local" uses the system zone.
	TimeZone string `yaml:"time_zone"`
	// NoticeDuration is how long confirmations stay visible.
	NoticeDuration string `yaml:"notice_duration"`
}

// SessionConfig locates the persisted session.
type SessionConfig struct {
	// File overrides the default session file location. Empty uses
	// BOXOFFICE_SESSION_FILE or the XDG config directory.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: "15s",
		},
		Autocomplete: AutocompleteConfig{
			MinChars:       2,
			Debounce:       "180ms",
			MaxSuggestions: 10,
		},
		Catalog: CatalogConfig{
			Limit: 1000,
		},
		Display: DisplayConfig{
			Currency:       "EUR",
			Language:       "en",
			TimeLayout:     "Mon 2 Jan 2006 15:04",
			TimeZone:       "Local",
			NoticeDuration: "3s",
		},
		LogLevel: "info",
	}
}

// Load loads .env, then the file named by BOXOFFICE_CONFIG, or the
// defaults when it is unset. Environment overrides are applied last.
func Load() (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	path := os.Getenv(EnvConfigFile)
	if path == "" {
		cfg := Default()
		cfg.finish()
		return cfg, nil
	}
	return loadPath(path)
}

// LoadFile loads .env, then configuration from path.
func LoadFile(path string) (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	return loadPath(path)
}

// LoadDotEnv adds the variables in path to the process environment
// without replacing ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func loadPath(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.finish()
	return cfg, nil
}

// finish applies the environment section, the process environment,
// and variable expansion, in that order.
func (c *Config) finish() {
	c.applyEnvironmentOverrides()
	c.applyProcessEnvironment()
	c.expandVariables()
}

// loadFile merges a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
		if overrides.API.Compression != nil {
			c.API.Compression = overrides.API.Compression
		}
	}

	if overrides.Display != nil {
		if overrides.Display.Currency != "" {
			c.Display.Currency = overrides.Display.Currency
		}
		if overrides.Display.Language != "" {
			c.Display.Language = overrides.Display.Language
		}
		if overrides.Display.TimeLayout != "" {
			c.Display.TimeLayout = overrides.Display.TimeLayout
		}
		if overrides.Display.TimeZone != "" {
			c.Display.TimeZone = overrides.Display.TimeZone
		}
		if overrides.Display.NoticeDuration != "" {
			c.Display.NoticeDuration = overrides.Display.NoticeDuration
		}
	}

	if overrides.LogLevel != "" {
		c.LogLevel = overrides.LogLevel
	}
}

func (c *Config) applyProcessEnvironment() {
	if value := strings.TrimSpace(os.Getenv(EnvAPIURL)); value != "" {
		c.API.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogLevel)); value != "" {
		c.LogLevel = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	c.Session.File = expandVars(c.Session.File)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an http or https URL, got %q", c.API.BaseURL))
	}

	errs = appendDurationError(errs, "api.timeout", c.API.Timeout)
	errs = appendDurationError(errs, "autocomplete.debounce", c.Autocomplete.Debounce)
	errs = appendDurationError(errs, "display.notice_duration", c.Display.NoticeDuration)

	if c.Autocomplete.MinChars < 1 {
		errs = append(errs, fmt.Errorf("autocomplete.min_chars must be at least 1"))
	}
	if c.Autocomplete.MaxSuggestions < 1 {
		errs = append(errs, fmt.Errorf("autocomplete.max_suggestions must be at least 1"))
	}
	if c.Catalog.Limit < 1 {
		errs = append(errs, fmt.Errorf("catalog.limit must be at least 1"))
	}

	if _, err := currency.ParseISO(c.Display.Currency); err != nil {
		errs = append(errs, fmt.Errorf("display.currency %q is not an ISO 4217 code", c.Display.Currency))
	}
	if _, err := language.Parse(c.Display.Language); err != nil {
		errs = append(errs, fmt.Errorf("display.language %q is not a BCP 47 tag", c.Display.Language))
	}
	if c.Display.TimeLayout == "" {
		errs = append(errs, fmt.Errorf("display.time_layout is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func appendDurationError(errs []error, field, value string) []error {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", field, err))
	}
	if duration <= 0 {
		return append(errs, fmt.Errorf("%s must be positive, got %s", field, value))
	}
	return errs
}

// duration parses a validated duration field, falling back on
// malformed input.
func duration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// RequestTimeout is api.timeout.
func (c *Config) RequestTimeout() time.Duration {
	return duration(c.API.Timeout, 15*time.Second)
}

// CompressionEnabled is api.compression, true when unset.
func (c *Config) CompressionEnabled() bool {
	return c.API.Compression == nil || *c.API.Compression
}

// Debounce is autocomplete.debounce.
func (c *Config) Debounce() time.Duration {
	return duration(c.Autocomplete.Debounce, 180*time.Millisecond)
}

// NoticeDuration is display.notice_duration.
func (c *Config) NoticeDuration() time.Duration {
	return duration(c.Display.NoticeDuration, 3*time.Second)
}

// Location resolves display.time_zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Display.TimeZone {
	case "", "Local":
		return time.Local, nil
	}
	location, err := time.LoadLocation(c.Display.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("display.time_zone: %w", err)
	}
	return location, nil
}

// SlogLevel parses log_level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

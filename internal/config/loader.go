package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultDotEnv is read when present; its absence is not an error.
const DefaultDotEnv = ".env"

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	file     string
	dotenv   []string
	required bool
}

// WithFile layers the YAML file at path over the environment.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = strings.TrimSpace(path)
	}
}

// WithDotEnv reads the given dotenv files instead of DefaultDotEnv. Explicit
// files must exist.
func WithDotEnv(files ...string) Option {
	return func(o *loadOptions) {
		o.dotenv = files
		o.required = true
	}
}

// Load resolves defaults, dotenv, environment and file layers. Flags are the
// caller's responsibility; call Validate once they are applied.
func Load(options ...Option) (*Config, error) {
	opts := loadOptions{dotenv: []string{DefaultDotEnv}}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	// Existing environment variables win over dotenv entries.
	if err := godotenv.Load(opts.dotenv...); err != nil {
		if opts.required || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load dotenv: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}

	if opts.file != "" {
		if err := mergeFile(&cfg, opts.file); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Decode a second time into a node so absent keys leave lower layers
	// untouched.
	var present map[string]any
	if err := yaml.Unmarshal(raw, &present); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.merge(file, present)
}

func (c *Config) merge(file Config, present map[string]any) error {
	has := func(key string) bool {
		_, ok := present[key]
		return ok
	}

	if has("endpoint") {
		c.Endpoint = file.Endpoint
	}
	if has("output") {
		c.Output = file.Output
	}
	if has("interactive") {
		c.Interactive = file.Interactive
	}
	if has("timeout") {
		c.Timeout = file.Timeout
	}
	if has("log_level") {
		c.LogLevel = file.LogLevel
	}
	if has("layout") {
		c.Layout = file.Layout
	}
	if has("strict_contract") {
		c.StrictContract = file.StrictContract
	}
	if has("theme") {
		c.Theme = file.Theme
	}
	if has("variant") {
		c.Variant = file.Variant
	}
	if breaker, ok := present["breaker"].(map[string]any); ok {
		if _, ok := breaker["threshold"]; ok {
			c.Breaker.Threshold = file.Breaker.Threshold
		}
		if _, ok := breaker["open_timeout"]; ok {
			c.Breaker.OpenTimeout = file.Breaker.OpenTimeout
		}
	} else if present["breaker"] != nil {
		return errors.New("config: breaker must be a mapping")
	}
	for field, value := range file.Values {
		c.SetValue(field, value)
	}
	return nil
}

// Package config assembles the CLI configuration. Layers apply lowest to
// highest: struct defaults, a dotenv file, WEATHERFORM_* environment
// variables, an optional YAML file, then command line flags applied by the
// caller before Validate.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// EnvPrefix namespaces environment variables (WEATHERFORM_ENDPOINT, ...).
const EnvPrefix = "WEATHERFORM"

// Config is the resolved CLI configuration.
type Config struct {
	Endpoint       string        `envconfig:"ENDPOINT" default:"http://localhost:5000/predict" yaml:"endpoint" validate:"required,url"`
	Output         string        `envconfig:"OUTPUT" default:"pretty" yaml:"output" validate:"oneof=pretty json html"`
	Interactive    bool          `envconfig:"INTERACTIVE" default:"false" yaml:"interactive"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"0s" yaml:"timeout" validate:"gte=0"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info" yaml:"log_level" validate:"oneof=debug info warn error"`
	Layout         string        `envconfig:"LAYOUT" default:"extended" yaml:"layout" validate:"oneof=basic extended"`
	StrictContract bool          `envconfig:"STRICT_CONTRACT" default:"false" yaml:"strict_contract"`
	Theme          string        `envconfig:"THEME" default:"default" yaml:"theme" validate:"required"`
	Variant        string        `envconfig:"VARIANT" default:"light" yaml:"variant"`
	Breaker        BreakerConfig `envconfig:"BREAKER" yaml:"breaker"`

	// Values prefill form controls keyed by field name. Only the YAML file
	// and flags set them.
	Values map[string]string `ignored:"true" yaml:"values"`
}

// BreakerConfig tunes the client circuit breaker. A zero threshold leaves
// the breaker off.
type BreakerConfig struct {
	Threshold   uint32        `envconfig:"THRESHOLD" default:"0" yaml:"threshold"`
	OpenTimeout time.Duration `envconfig:"OPEN_TIMEOUT" default:"30s" yaml:"open_timeout" validate:"gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

// SetValue records a form value, allocating Values on first use.
func (c *Config) SetValue(field, value string) {
	if c.Values == nil {
		c.Values = make(map[string]string)
	}
	c.Values[field] = value
}

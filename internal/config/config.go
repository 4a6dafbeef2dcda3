// Package config resolves runtime settings for the heroes CLI.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML config
// file, HEROES_* environment variables, command-line flags bound by the
// caller.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roach88/heroes/internal/gateway"
	"github.com/roach88/heroes/internal/query"
)

// Keys understood in config files, env vars (upper-cased, HEROES_ prefix)
// and flag bindings.
const (
	KeyLatency    = "latency"
	KeyPageSize   = "page_size"
	KeyMatchBrand = "match_brand"
	KeyCatalog    = "catalog"
	KeyVerbose    = "verbose"
)

// EnvPrefix is the prefix of environment overrides, e.g. HEROES_PAGE_SIZE.
const EnvPrefix = "HEROES"

// Config holds resolved settings.
type Config struct {
	Latency    time.Duration `mapstructure:"latency" json:"latency"`
	PageSize   int           `mapstructure:"page_size" json:"page_size"`
	MatchBrand bool          `mapstructure:"match_brand" json:"match_brand"`
	Catalog    string        `mapstructure:"catalog" json:"catalog,omitempty"` // empty means the embedded catalog
	Verbose    bool          `mapstructure:"verbose" json:"verbose"`
}

// New returns a viper instance with defaults and env overrides applied and,
// if configFile is non-empty, the file read in. Callers bind flags on the
// result and then call Resolve.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyLatency, gateway.DefaultLatency)
	v.SetDefault(KeyPageSize, query.DefaultPageSize)
	v.SetDefault(KeyMatchBrand, false)
	v.SetDefault(KeyCatalog, "")
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return v, nil
}

// Resolve unmarshals v into a Config and validates it.
func Resolve(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("%s: %w", KeyPageSize, query.ErrInvalidPageSize))
	}
	if c.Latency < 0 {
		errs = append(errs, fmt.Errorf("%s: must not be negative, got %s", KeyLatency, c.Latency))
	}
	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PROPDASH_CONFIG is set
//  3. env (prefix PROPDASH_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PROPDASH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PROPDASH_ADDR, PROPDASH_MAX_LIMIT, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PROPDASH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "propdash_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DefaultLimit < 1:
		return fmt.Errorf("%w: default_limit must be positive", ErrInvalidConfig)
	case c.MaxLimit < c.DefaultLimit:
		return fmt.Errorf("%w: max_limit must be >= default_limit", ErrInvalidConfig)
	case c.RequestTimeoutMS < 1:
		return fmt.Errorf("%w: request_timeout_ms must be positive", ErrInvalidConfig)
	case c.CommitWeight < 0 || c.PRWeight < 0 || c.ReviewWeight < 0 || c.CommentWeight < 0 || c.IssueWeight < 0:
		return fmt.Errorf("%w: score weights must be non-negative", ErrInvalidConfig)
	}
	return nil
}

package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PICKEM_CONFIG is set
//  3. env (prefix PICKEM_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PICKEM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PICKEM_ADDR, PICKEM_ADMIN_KEY, ...
	// Map env keys like PICKEM_REVEAL_DOW -> reveal_dow (flat keys).
	envProvider := env.Provider("PICKEM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "pickem_")
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
	case c.RevealDow < 0 || c.RevealDow > 6:
		return fmt.Errorf("%w: reveal_dow must be 0-6, got %d", ErrInvalidConfig, c.RevealDow)
	case c.RevealHour < 0 || c.RevealHour > 23:
		return fmt.Errorf("%w: reveal_hour must be 0-23, got %d", ErrInvalidConfig, c.RevealHour)
	case c.RevealMinute < 0 || c.RevealMinute > 59:
		return fmt.Errorf("%w: reveal_minute must be 0-59, got %d", ErrInvalidConfig, c.RevealMinute)
	case len(c.Roster) == 0:
		return fmt.Errorf("%w: roster must not be empty", ErrInvalidConfig)
	case len(c.Season) == 0:
		return fmt.Errorf("%w: season must not be empty", ErrInvalidConfig)
	}

	if c.StoreBackend != StoreMemory && c.StoreBackend != StoreNATS {
		return fmt.Errorf("%w: store_backend must be %q or %q, got %q",
			ErrInvalidConfig, StoreMemory, StoreNATS, c.StoreBackend)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return nil
}

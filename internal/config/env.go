package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by ParseEnv.
const EnvPrefix = "BERTRAND_"

// ParseEnv overlays BERTRAND_* environment variables onto target.
// Unset variables leave fields unchanged.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

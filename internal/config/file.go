package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadFile overlays the TOML file at path onto target. Keys that do not
// match a Config field are rejected.
func LoadFile(path string, target *Config) error {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Package config loads the bertrand command configuration.
//
// Values are layered: Default, then an optional TOML file, then BERTRAND_*
// environment variables. The command applies its flags last and calls
// Validate.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/gogpu/bertrand/render"
	"github.com/gogpu/bertrand/sim"
)

// AllMethods selects every chord method.
const AllMethods = "all"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the process configuration.
type Config struct {
	// Method is a chord method accepted by sim.ParseMethod, or "all".
	Method string `toml:"method" env:"METHOD"`
	// Trials is the number of chords per method. Zero selects the
	// command's default.
	Trials int `toml:"trials" env:"TRIALS"`
	// Seed seeds the random source. Zero seeds from the clock.
	Seed uint64 `toml:"seed" env:"SEED"`
	// Workers is the number of sampling goroutines.
	Workers int `toml:"workers" env:"WORKERS"`
	// Radius of the circle, centered in the window.
	Radius float64 `toml:"radius" env:"RADIUS"`
	Width  int     `toml:"width" env:"WIDTH"`
	Height int     `toml:"height" env:"HEIGHT"`
	// Output is the rendered file; its extension picks the format.
	Output string `toml:"output" env:"OUTPUT"`
	// Lang is the BCP 47 tag used to format reports.
	Lang     string `toml:"lang" env:"LANG"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
	// ChordColor and LongerColor are render.ParseColor inputs for chords
	// shorter and longer than the triangle side.
	ChordColor  string `toml:"chord_color" env:"CHORD_COLOR"`
	LongerColor string `toml:"longer_color" env:"LONGER_COLOR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Method:      AllMethods,
		Workers:     1,
		Radius:      300,
		Width:       render.DefaultWindow.Width,
		Height:      render.DefaultWindow.Height,
		Output:      "bertrand.png",
		Lang:        "en",
		LogLevel:    "warn",
		ChordColor:  "light blue",
		LongerColor: "dark orange",
	}
}

// Load returns Default overlaid with the TOML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Methods(); err != nil {
		errs = append(errs, err)
	}
	if c.Trials < 0 {
		errs = append(errs, fmt.Errorf("trials must not be negative, got %d", c.Trials))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if !(c.Radius > 0) {
		errs = append(errs, fmt.Errorf("radius must be positive, got %v", c.Radius))
	}
	if err := c.Window().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Language(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Style(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Methods returns the selected chord methods.
func (c Config) Methods() ([]sim.Method, error) {
	if strings.EqualFold(strings.TrimSpace(c.Method), AllMethods) {
		return sim.Methods, nil
	}
	m, err := sim.ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}
	return []sim.Method{m}, nil
}

// Window returns the drawing surface size.
func (c Config) Window() render.Window {
	return render.Window{Width: c.Width, Height: c.Height}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// Language parses Lang.
func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Lang)
	if err != nil {
		return language.Und, fmt.Errorf("lang: %w", err)
	}
	return tag, nil
}

// Style returns render.DefaultStyle with the configured chord colors.
func (c Config) Style() (render.Style, error) {
	st := render.DefaultStyle()
	chord, err := render.ParseColor(c.ChordColor)
	if err != nil {
		return st, fmt.Errorf("chord color: %w", err)
	}
	longer, err := render.ParseColor(c.LongerColor)
	if err != nil {
		return st, fmt.Errorf("longer color: %w", err)
	}
	st.Chord, st.Longer = chord, longer
	return st, nil
}

// Command bertrand estimates and draws the three answers of Bertrand's
// paradox.
//
// Usage:
//
//	bertrand estimate --trials 10000 --seed 1
//	bertrand draw --method area --trials 10 --output chords.png
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/gogpu/bertrand"
	"github.com/gogpu/bertrand/internal/config"
	"github.com/gogpu/bertrand/internal/report"
	"github.com/gogpu/bertrand/internal/telemetry"
	"github.com/gogpu/bertrand/render"
	"github.com/gogpu/bertrand/sim"
)

const (
	serviceName = "bertrand"

	defaultEstimateTrials = 60
	defaultDrawTrials     = 10

	telemetryShutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bertrand: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "bertrand",
		Usage:   "sample random chords and estimate Bertrand's paradox",
		Version: bertrand.Version,
		Commands: []*cli.Command{
			{
				Name:   "estimate",
				Usage:  "run the chord methods and print the estimated probabilities",
				Flags:  flags(),
				Action: estimate,
			},
			{
				Name:   "draw",
				Usage:  "sample chords and render them to a PNG or SVG file",
				Flags:  flags(),
				Action: draw,
			},
		},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "TOML configuration file"},
		&cli.StringFlag{Name: "method", Aliases: []string{"m"}, Usage: "chord method: 1|2|3|endpoints|radial|area|all"},
		&cli.IntFlag{Name: "trials", Aliases: []string{"n"}, Usage: "chords per method (default 60 for estimate, 10 for draw)"},
		&cli.Uint64Flag{Name: "seed", Usage: "random seed, 0 seeds from the clock"},
		&cli.IntFlag{Name: "workers", Usage: "sampling goroutines"},
		&cli.FloatFlag{Name: "radius", Usage: "circle radius"},
		&cli.IntFlag{Name: "width", Usage: "window width"},
		&cli.IntFlag{Name: "height", Usage: "window height"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "rendered file (.png or .svg)"},
		&cli.StringFlag{Name: "lang", Usage: "report language (BCP 47)"},
		&cli.StringFlag{Name: "log-level", Usage: "debug|info|warn|error"},
		&cli.StringFlag{Name: "chord-color", Usage: "color of chords not longer than the triangle side"},
		&cli.StringFlag{Name: "longer-color", Usage: "color of chords longer than the triangle side"},
	}
}

// loadConfig layers flags over the file and environment configuration.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return cfg, err
	}
	if cmd.IsSet("method") {
		cfg.Method = cmd.String("method")
	}
	if cmd.IsSet("trials") {
		cfg.Trials = cmd.Int("trials")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("radius") {
		cfg.Radius = cmd.Float("radius")
	}
	if cmd.IsSet("width") {
		cfg.Width = cmd.Int("width")
	}
	if cmd.IsSet("height") {
		cfg.Height = cmd.Int("height")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("lang") {
		cfg.Lang = cmd.String("lang")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("chord-color") {
		cfg.ChordColor = cmd.String("chord-color")
	}
	if cmd.IsSet("longer-color") {
		cfg.LongerColor = cmd.String("longer-color")
	}
	return cfg, cfg.Validate()
}

// session is the state shared by both subcommands.
type session struct {
	cfg     config.Config
	methods []sim.Method
	circle  bertrand.Circle
	seed    uint64
	tracer  *telemetry.Provider
}

func newSession(cmd *cli.Command, defaultTrials int) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	level, _ := cfg.Level()
	bertrand.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.Trials == 0 {
		cfg.Trials = defaultTrials
	}
	methods, _ := cfg.Methods()

	center := bertrand.Pt(float64(cfg.Width)/2, float64(cfg.Height)/2).Named("A")
	circle, err := bertrand.NewCircle(center, cfg.Radius)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	bertrand.Logger().Info("bertrand: starting", "circle", circle.String(), "trials", cfg.Trials, "seed", seed)

	return &session{cfg: cfg, methods: methods, circle: circle.Named("C"), seed: seed}, nil
}

func (s *session) options(extra ...sim.Option) []sim.Option {
	opts := []sim.Option{sim.WithSeed(s.seed), sim.WithWorkers(s.cfg.Workers)}
	if s.tracer != nil {
		opts = append(opts, sim.WithTracerProvider(s.tracer))
	}
	return append(opts, extra...)
}

// withTelemetry sets up tracing from the environment, routes the session's
// runs through it and calls fn.
func (s *session) withTelemetry(ctx context.Context, fn func(context.Context) error) error {
	tp, err := telemetry.Setup(ctx, serviceName)
	if err != nil {
		return err
	}
	s.tracer = tp
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			bertrand.Logger().Warn("bertrand: telemetry shutdown", "error", err)
		}
	}()
	return fn(ctx)
}

func estimate(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd, defaultEstimateTrials)
	if err != nil {
		return err
	}
	return s.withTelemetry(ctx, func(ctx context.Context) error {
		results := make([]sim.Result, 0, len(s.methods))
		for _, m := range s.methods {
			res, err := sim.Run(ctx, s.circle, m, s.cfg.Trials, s.options()...)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		tag, _ := s.cfg.Language()
		return report.Write(cmd.Root().Writer, tag, results)
	})
}

func draw(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd, defaultDrawTrials)
	if err != nil {
		return err
	}
	return s.withTelemetry(ctx, func(ctx context.Context) error {
		style, err := s.cfg.Style()
		if err != nil {
			return err
		}
		tri := s.circle.EquilateralTriangle()
		for _, m := range s.methods {
			var chords []bertrand.Line
			res, err := sim.Run(ctx, s.circle, m, s.cfg.Trials, s.options(
				sim.WithObserver(func(t sim.Trial, _ float64) {
					chords = append(chords, t.Chord)
				}),
			)...)
			if err != nil {
				return err
			}

			path := outputPath(s.cfg.Output, m, len(s.methods) > 1)
			if err := drawFile(path, s.cfg.Window(), render.Scene{
				Circle:   s.circle,
				Triangle: &tri,
				Chords:   chords,
				Points:   []bertrand.Point{s.circle.Center()},
				Caption:  fmt.Sprintf("%s: %d/%d longer, p = %.3f", m, res.Successes, res.Trials, res.Probability),
				Style:    style,
			}); err != nil {
				return err
			}
			bertrand.Logger().Info("bertrand: wrote", "path", path, "method", m.String())
			fmt.Fprintln(cmd.Root().Writer, path)
		}
		return nil
	})
}

func drawFile(path string, win render.Window, sc render.Scene) (err error) {
	sink, err := render.Create(path, win)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return render.DrawScene(sink, sc)
}

// outputPath inserts the method name before the extension when several
// methods share one output setting.
func outputPath(base string, m sim.Method, several bool) string {
	if !several {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + m.String() + ext
}

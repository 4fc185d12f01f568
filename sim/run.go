// Package sim estimates the Bertrand paradox probabilities by repeated
// chord sampling.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gogpu/bertrand"
	"github.com/gogpu/bertrand/internal/parallel"
)

const tracerName = "github.com/gogpu/bertrand/sim"

// batchesPerWorker controls how finely parallel runs are split. More batches
// than workers lets idle workers steal.
const batchesPerWorker = 4

// ErrInvalidTrials is returned for a negative trial count.
var ErrInvalidTrials = errors.New("sim: trial count must not be negative")

// Trial is the outcome of one sampled chord.
type Trial struct {
	Index  int
	Chord  bertrand.Line
	Longer bool
}

// Observer receives every trial with the running estimate after it.
// Calls are serialized, but in parallel runs they arrive out of index order.
type Observer func(t Trial, estimate float64)

// Result summarizes a completed run.
type Result struct {
	Method      Method
	Trials      int
	Successes   int
	Probability float64
	// Threshold is the side length of the inscribed equilateral triangle.
	Threshold float64
	Elapsed   time.Duration
}

// Expected returns the classical answer for the run's method.
func (r Result) Expected() float64 {
	return r.Method.Expected()
}

// Deviation returns Probability - Expected.
func (r Result) Deviation() float64 {
	return r.Probability - r.Expected()
}

type options struct {
	seed     uint64
	workers  int
	observer Observer
	tracer   trace.TracerProvider
}

// Option configures Run.
type Option func(*options)

// WithSeed fixes the random seed. The default seed is 1.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers runs trials on n goroutines. Values below 2 run sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithObserver registers fn to receive every trial.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithTracerProvider sets the provider used for run spans. The default is
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = tp }
}

func defaultOptions() options {
	return options{seed: 1, workers: 1}
}

// Run samples n chords of c with method m and estimates the probability
// that a chord is longer than the side of c's inscribed equilateral
// triangle. Cancelling ctx stops the run between trials.
func Run(ctx context.Context, c bertrand.Circle, m Method, n int, opts ...Option) (Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.GetTracerProvider()
	}

	ctx, span := o.tracer.Tracer(tracerName).Start(ctx, "sim.Run", trace.WithAttributes(
		attribute.String("bertrand.method", m.String()),
		attribute.Int("bertrand.trials", n),
		attribute.Int("bertrand.workers", o.workers),
		attribute.Float64("bertrand.radius", c.Radius()),
	))
	defer span.End()

	res, err := run(ctx, c, m, n, o)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(
		attribute.Int("bertrand.successes", res.Successes),
		attribute.Float64("bertrand.probability", res.Probability),
	)
	bertrand.Logger().Info("sim: run complete",
		"method", m.String(),
		"trials", res.Trials,
		"probability", res.Probability,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func run(ctx context.Context, c bertrand.Circle, m Method, n int, o options) (Result, error) {
	if !m.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	if n < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTrials, n)
	}

	start := time.Now()
	threshold := c.EquilateralTriangle().SideLen()
	s := &sampler{
		circle:    c,
		method:    m,
		threshold: threshold,
		observer:  o.observer,
	}

	var err error
	if o.workers < 2 || n < 2 {
		err = s.sample(ctx, bertrand.NewRand(o.seed), parallel.Range{Start: 0, End: n})
	} else {
		err = s.sampleParallel(ctx, o.seed, o.workers, n)
	}

	res := Result{
		Method:      m,
		Trials:      s.est.Trials(),
		Successes:   s.est.Successes(),
		Probability: s.est.Probability(),
		Threshold:   threshold,
		Elapsed:     time.Since(start),
	}
	if err != nil {
		return res, fmt.Errorf("sim %s: %w", m, err)
	}
	return res, nil
}

type sampler struct {
	circle    bertrand.Circle
	method    Method
	threshold float64
	est       Estimator

	mu       sync.Mutex
	observer Observer
}

// sample runs the trials of r with rng.
func (s *sampler) sample(ctx context.Context, rng *rand.Rand, r parallel.Range) error {
	log := bertrand.Logger()
	for i := r.Start; i < r.End; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		chord, err := s.method.Chord(s.circle, rng)
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		longer := chord.Length() > s.threshold
		s.est.Add(longer)
		log.Debug("sim: trial", "index", i, "length", chord.Length(), "longer", longer)

		if s.observer != nil {
			s.mu.Lock()
			s.observer(Trial{Index: i, Chord: chord, Longer: longer}, s.est.Probability())
			s.mu.Unlock()
		}
	}
	return nil
}

// sampleParallel splits the trials into batches, each with its own random
// stream, so results depend only on the seed and the worker count.
func (s *sampler) sampleParallel(ctx context.Context, seed uint64, workers, n int) error {
	pool := parallel.NewPool(workers)
	defer pool.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := parallel.Split(n, workers*batchesPerWorker)
	errs := make([]error, len(batches))
	work := make([]func(), len(batches))
	for i, r := range batches {
		work[i] = func() {
			if err := s.sample(ctx, bertrand.NewStream(seed, uint64(i)), r); err != nil {
				errs[i] = err
				cancel()
			}
		}
	}
	pool.ExecuteAll(work)

	// Report the root cause rather than the cancellations it triggered.
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return errors.Join(errs...)
}

// RunAll runs every method of Methods on c with the same options.
func RunAll(ctx context.Context, c bertrand.Circle, n int, opts ...Option) ([]Result, error) {
	results := make([]Result, 0, len(Methods))
	for _, m := range Methods {
		res, err := Run(ctx, c, m, n, opts...)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

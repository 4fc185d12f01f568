package sim

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/gogpu/bertrand"
)

func scenarioCircle(t testing.TB) bertrand.Circle {
	t.Helper()
	c, err := bertrand.NewCircle(bertrand.Pt(500, 500), 300)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in     string
		expect Method
	}{
		{"1", Endpoints},
		{"endpoints", Endpoints},
		{"2", RadialPoint},
		{" Radial ", RadialPoint},
		{"3", AreaPoint},
		{"AREA", AreaPoint},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if err != nil {
			t.Errorf("ParseMethod(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.expect {
			t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.expect)
		}
	}

	for _, bad := range []string{"", "0", "4", "all", "random"} {
		if _, err := ParseMethod(bad); !errors.Is(err, ErrUnknownMethod) {
			t.Errorf("ParseMethod(%q) error = %v, want ErrUnknownMethod", bad, err)
		}
	}
}

func TestMethod_String(t *testing.T) {
	for _, m := range Methods {
		back, err := ParseMethod(m.String())
		if err != nil || back != m {
			t.Errorf("ParseMethod(%v.String()) = %v, %v", m, back, err)
		}
	}
	if got := Method(9).String(); got != "Method(9)" {
		t.Errorf("Method(9).String() = %q", got)
	}
	if Method(0).Valid() || Method(4).Valid() {
		t.Error("out of range methods reported valid")
	}
}

func TestMethod_ChordUnknown(t *testing.T) {
	_, err := Method(7).Chord(scenarioCircle(t), bertrand.NewRand(1))
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Chord() error = %v, want ErrUnknownMethod", err)
	}
}

func TestEstimator(t *testing.T) {
	var e Estimator
	if e.Probability() != 0 {
		t.Errorf("empty Probability() = %v, want 0", e.Probability())
	}
	for _, longer := range []bool{true, false, false, true} {
		e.Add(longer)
	}
	if e.Trials() != 4 || e.Successes() != 2 || e.Probability() != 0.5 {
		t.Errorf("Estimator = %d/%d (%v), want 2/4", e.Successes(), e.Trials(), e.Probability())
	}
}

func TestEstimator_Concurrent(t *testing.T) {
	var e Estimator
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 1000 {
				e.Add((i+j)%2 == 0)
				if p := e.Probability(); p > 1 {
					t.Errorf("Probability() = %v during concurrent adds", p)
					return
				}
			}
		}()
	}
	wg.Wait()
	if e.Trials() != 8000 || e.Successes() != 4000 {
		t.Errorf("Estimator = %d/%d, want 4000/8000", e.Successes(), e.Trials())
	}
}

func TestRun_Convergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10,000-trial runs in short mode")
	}
	c := scenarioCircle(t)
	for _, m := range Methods {
		t.Run(m.String(), func(t *testing.T) {
			res, err := Run(context.Background(), c, m, 10_000, WithSeed(2024))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if res.Trials != 10_000 {
				t.Errorf("Trials = %d, want 10000", res.Trials)
			}
			if math.Abs(res.Deviation()) > 0.02 {
				t.Errorf("Probability = %.4f, want %.4f ± 0.02", res.Probability, res.Expected())
			}
			if math.Abs(res.Threshold-519.615) > 1e-3 {
				t.Errorf("Threshold = %v, want ~519.615", res.Threshold)
			}
		})
	}
}

func TestRun_ParallelConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10,000-trial runs in short mode")
	}
	results, err := RunAll(context.Background(), scenarioCircle(t), 10_000, WithSeed(7), WithWorkers(4))
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if len(results) != len(Methods) {
		t.Fatalf("RunAll() returned %d results", len(results))
	}
	for _, res := range results {
		if res.Trials != 10_000 {
			t.Errorf("%v: Trials = %d", res.Method, res.Trials)
		}
		if math.Abs(res.Deviation()) > 0.02 {
			t.Errorf("%v: Probability = %.4f, want %.4f ± 0.02", res.Method, res.Probability, res.Expected())
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	c := scenarioCircle(t)
	for _, workers := range []int{1, 3} {
		a, err := Run(context.Background(), c, AreaPoint, 500, WithSeed(99), WithWorkers(workers))
		if err != nil {
			t.Fatal(err)
		}
		b, err := Run(context.Background(), c, AreaPoint, 500, WithSeed(99), WithWorkers(workers))
		if err != nil {
			t.Fatal(err)
		}
		if a.Successes != b.Successes {
			t.Errorf("workers=%d: successes %d != %d for the same seed", workers, a.Successes, b.Successes)
		}
	}
}

func TestRun_Observer(t *testing.T) {
	c := scenarioCircle(t)
	var trials []Trial
	var last float64
	res, err := Run(context.Background(), c, Endpoints, 60, WithObserver(func(tr Trial, estimate float64) {
		trials = append(trials, tr)
		last = estimate
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 60 {
		t.Fatalf("observer called %d times, want 60", len(trials))
	}
	longer := 0
	for i, tr := range trials {
		if tr.Index != i {
			t.Errorf("trial %d has index %d", i, tr.Index)
		}
		if tr.Longer != (tr.Chord.Length() > res.Threshold) {
			t.Errorf("trial %d verdict %v disagrees with length %v", i, tr.Longer, tr.Chord.Length())
		}
		if tr.Longer {
			longer++
		}
	}
	if longer != res.Successes || last != res.Probability {
		t.Errorf("observer saw %d successes (last estimate %v), result %d (%v)", longer, last, res.Successes, res.Probability)
	}
}

func TestRun_Errors(t *testing.T) {
	c := scenarioCircle(t)
	if _, err := Run(context.Background(), c, Method(0), 10); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Run(Method(0)) error = %v, want ErrUnknownMethod", err)
	}
	if _, err := Run(context.Background(), c, Endpoints, -1); !errors.Is(err, ErrInvalidTrials) {
		t.Errorf("Run(n=-1) error = %v, want ErrInvalidTrials", err)
	}
	res, err := Run(context.Background(), c, Endpoints, 0)
	if err != nil || res.Trials != 0 || res.Probability != 0 {
		t.Errorf("Run(n=0) = %+v, %v", res, err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	c := scenarioCircle(t)
	for _, workers := range []int{1, 4} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := Run(ctx, c, RadialPoint, 1000, WithWorkers(workers))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: error = %v, want context.Canceled", workers, err)
		}
		if res.Trials != 0 {
			t.Errorf("workers=%d: ran %d trials after cancellation", workers, res.Trials)
		}
	}
}

func TestRun_RetryLimitPropagates(t *testing.T) {
	// Every perimeter point of this circle rounds to the origin.
	c, err := bertrand.NewCircle(bertrand.Pt(0, 0), 0.4)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Run(context.Background(), c, Endpoints, 5, WithWorkers(2))
	if !errors.Is(err, bertrand.ErrRetryLimit) {
		t.Errorf("Run() error = %v, want ErrRetryLimit", err)
	}
}

func TestRun_Span(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	res, err := Run(context.Background(), scenarioCircle(t), AreaPoint, 50, WithTracerProvider(tp))
	if err != nil {
		t.Fatal(err)
	}
	_, _ = Run(context.Background(), scenarioCircle(t), Endpoints, -3, WithTracerProvider(tp))

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	ok := spans[0]
	if ok.Name() != "sim.Run" {
		t.Errorf("span name = %q", ok.Name())
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ok.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["bertrand.method"].AsString() != "area" {
		t.Errorf("method attribute = %v", attrs["bertrand.method"])
	}
	if attrs["bertrand.probability"].AsFloat64() != res.Probability {
		t.Errorf("probability attribute = %v, want %v", attrs["bertrand.probability"], res.Probability)
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("failed run span status = %v, want Error", spans[1].Status())
	}
}

func BenchmarkRun(b *testing.B) {
	c := scenarioCircle(b)
	for _, m := range Methods {
		b.Run(m.String(), func(b *testing.B) {
			for b.Loop() {
				_, _ = Run(context.Background(), c, m, 100)
			}
		})
	}
}

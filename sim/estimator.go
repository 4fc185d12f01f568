package sim

import "sync/atomic"

// Estimator accumulates the running success ratio of a sampling run.
// It is safe for concurrent use.
type Estimator struct {
	trials    atomic.Int64
	successes atomic.Int64
}

// Add records one trial.
func (e *Estimator) Add(longer bool) {
	e.trials.Add(1)
	if longer {
		e.successes.Add(1)
	}
}

// Trials returns the number of recorded trials.
func (e *Estimator) Trials() int {
	return int(e.trials.Load())
}

// Successes returns the number of trials whose chord was longer.
func (e *Estimator) Successes() int {
	return int(e.successes.Load())
}

// Probability returns successes/trials, or 0 before the first trial.
func (e *Estimator) Probability() float64 {
	// Trials is incremented first, so loading successes first keeps the
	// ratio at or below 1 while other goroutines are adding.
	s := e.successes.Load()
	n := e.trials.Load()
	if n == 0 {
		return 0
	}
	return float64(s) / float64(n)
}

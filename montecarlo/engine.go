package montecarlo

import (
	"time"
)

// Config is the launch configuration of a run.
type Config struct {
	Samples int64
	Workers int
	// Base seeds the run. Worker i gets DeriveSeed(Base, i).
	Base   uint32
	Policy Policy
}

// Run partitions the work, starts one goroutine per worker and blocks until
// the reduction is done. Configuration errors are returned before any
// worker starts.
func Run(cfg Config, opts ...Option) (AggregateResult, error) {
	assignments, err := Partition(cfg.Samples, cfg.Workers, cfg.Base, cfg.Policy)
	if err != nil {
		return AggregateResult{}, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	workers := make([]Joiner, len(assignments))
	for i, a := range assignments {
		workers[i] = Launch(a, o.sampler)
	}

	res := Reduce(workers, opts...)
	res.Elapsed = time.Since(start)
	return res, nil
}

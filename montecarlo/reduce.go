package montecarlo

import (
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Anomaly records a worker whose contribution was dropped.
type Anomaly struct {
	Index int
	Err   error
}

// AggregateResult is the combined outcome of a run.
type AggregateResult struct {
	TotalHits    int64
	TotalSamples int64
	// Pi is NaN when TotalSamples is zero.
	Pi float64

	Workers   int
	Partials  []PartialResult
	Anomalies []Anomaly
	// JoinErr is set when aggregation stopped before every worker was joined.
	JoinErr error
	Elapsed time.Duration
}

// Defined reports whether Pi holds an estimate.
func (r AggregateResult) Defined() bool {
	return r.TotalSamples > 0
}

// Collected is the number of workers whose result made it into TotalHits.
func (r AggregateResult) Collected() int {
	return len(r.Partials)
}

// Estimate returns 4 * hits / samples, or NaN when samples is not positive.
func Estimate(hits, samples int64) float64 {
	if samples <= 0 {
		return math.NaN()
	}
	return 4.0 * float64(hits) / float64(samples)
}

// Option configures Run and Reduce.
type Option func(*options)

type options struct {
	logger    *log.Logger
	progress  io.Writer
	warnEvery rate.Limit
	warnBurst int
	sampler   Sampler
}

func defaultOptions() options {
	return options{
		logger:    log.Default(),
		warnEvery: rate.Inf,
		sampler:   Sample,
	}
}

// WithLogger sets where warnings go.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProgress draws a progress bar on w, advanced as workers are joined.
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

// WithWarnLimit throttles per-worker warnings. Warnings are not throttled
// unless this is set. Workers whose warning was held back are named in one
// line at the end.
func WithWarnLimit(every rate.Limit, burst int) Option {
	return func(o *options) {
		o.warnEvery = every
		o.warnBurst = burst
	}
}

// WithSampler replaces the inner loop run by each worker.
func WithSampler(s Sampler) Option {
	return func(o *options) { o.sampler = s }
}

// Reduce waits for every worker in order and sums their hits. A worker that
// ends without a valid result contributes zero and is logged. A join failure
// stops the loop and the result covers what was collected so far.
func Reduce(workers []Joiner, opts ...Option) AggregateResult {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	res := AggregateResult{
		Workers:  len(workers),
		Partials: make([]PartialResult, 0, len(workers)),
	}
	for _, w := range workers {
		res.TotalSamples += w.Assignment().Samples
	}

	var bar *pb.ProgressBar
	if o.progress != nil {
		bar = pb.New(len(workers)).SetWriter(o.progress).Start()
		defer bar.Finish()
	}

	limiter := rate.NewLimiter(o.warnEvery, o.warnBurst)
	var suppressed []string
	warn := func(index int, err error) {
		if limiter.Allow() {
			o.logger.Printf("warning: worker %d: %v", index, err)
			return
		}
		suppressed = append(suppressed, strconv.Itoa(index))
	}

	for _, w := range workers {
		index := w.Assignment().Index
		partial, err := w.Join()
		if bar != nil {
			bar.Increment()
		}

		switch {
		case err == nil:
			res.TotalHits += partial.Hits
			res.Partials = append(res.Partials, partial)
		case errors.Is(err, ErrJoin):
			o.logger.Printf("error: joining worker %d: %v", index, err)
			res.JoinErr = err
		default:
			res.Anomalies = append(res.Anomalies, Anomaly{Index: index, Err: err})
			warn(index, err)
		}
		if res.JoinErr != nil {
			break
		}
	}

	if len(suppressed) > 0 {
		o.logger.Printf("warning: %d more worker warnings suppressed (%d anomalies in total), workers: %s",
			len(suppressed), len(res.Anomalies), strings.Join(suppressed, ", "))
	}

	res.Pi = Estimate(res.TotalHits, res.TotalSamples)
	return res
}

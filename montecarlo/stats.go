package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes the spread of a run.
type Summary struct {
	// Mean and StdDev are taken over the per-worker estimates.
	Mean   float64
	StdDev float64
	// StdErr is the binomial standard error of the aggregate estimate.
	StdErr float64
	// Low and High bound the confidence interval around the estimate.
	Low, High float64
	// Throughput is samples per second.
	Throughput float64
}

// Summarize computes the spread of res at the given confidence level,
// e.g. 0.95.
func Summarize(res AggregateResult, confidence float64) Summary {
	nan := math.NaN()
	s := Summary{Mean: nan, StdDev: nan, StdErr: nan, Low: nan, High: nan}

	estimates := make([]float64, 0, len(res.Partials))
	for _, p := range res.Partials {
		if p.Samples > 0 {
			estimates = append(estimates, Estimate(p.Hits, p.Samples))
		}
	}
	switch len(estimates) {
	case 0:
	case 1:
		s.Mean, s.StdDev = estimates[0], 0
	default:
		s.Mean, s.StdDev = stat.MeanStdDev(estimates, nil)
	}

	if res.Defined() {
		p := float64(res.TotalHits) / float64(res.TotalSamples)
		s.StdErr = 4 * math.Sqrt(p*(1-p)/float64(res.TotalSamples))

		z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
		s.Low = res.Pi - z*s.StdErr
		s.High = res.Pi + z*s.StdErr
	}

	if secs := res.Elapsed.Seconds(); secs > 0 {
		s.Throughput = float64(res.TotalSamples) / secs
	}
	return s
}

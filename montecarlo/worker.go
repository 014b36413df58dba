package montecarlo

// PartialResult is what one worker hands back after its loop.
type PartialResult struct {
	Index   int
	Samples int64
	Hits    int64
}

// Sampler turns an assignment into a partial result.
type Sampler func(SampleAssignment) PartialResult

// Sample draws a.Samples points from the worker's private stream and counts
// those inside the unit quarter circle. Points on the arc count as hits.
func Sample(a SampleAssignment) PartialResult {
	rng := NewRand48(a.Seed)

	var hits int64
	for i := int64(0); i < a.Samples; i++ {
		x := rng.Float64()
		y := rng.Float64()

		if x*x+y*y <= 1.0 {
			hits++
		}
	}
	return PartialResult{Index: a.Index, Samples: a.Samples, Hits: hits}
}

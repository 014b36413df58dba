package montecarlo

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const (
	DefaultSamples int64 = 1 << 21
	DefaultWorkers       = 32
)

// Policy decides how a sample count is handed out to workers.
type Policy int

const (
	// PerWorker gives every worker the full sample count, so the work done
	// is samples * workers.
	PerWorker Policy = iota
	// Split divides the sample count across workers. The last worker also
	// takes the remainder.
	Split
)

func (p Policy) String() string {
	switch p {
	case PerWorker:
		return "per-worker"
	case Split:
		return "split"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// SampleAssignment is the immutable unit of work given to one worker.
type SampleAssignment struct {
	Index   int
	Samples int64
	Seed    Seed
}

// DeriveSeed returns the seed of worker i for a run started with base.
// Distinct indices below 2^16 always yield distinct seeds.
func DeriveSeed(base uint32, i int) Seed {
	v := base + uint32(i)
	return Seed{uint16(v), uint16(v >> 8), uint16(v >> 16)}
}

// Partition builds one assignment per worker. It fails before anything is
// launched if workers is not positive or samples is negative.
func Partition(samples int64, workers int, base uint32, policy Policy) ([]SampleAssignment, error) {
	if workers <= 0 {
		return nil, errors.Wrapf(ErrInvalidWorkers, "got %d", workers)
	}
	if samples < 0 {
		return nil, errors.Wrapf(ErrInvalidSamples, "got %d", samples)
	}

	per, remainder := samples, int64(0)
	switch policy {
	case PerWorker:
		if samples > math.MaxInt64/int64(workers) {
			return nil, errors.Wrapf(ErrInvalidSamples, "%d samples on each of %d workers overflows the total", samples, workers)
		}
	case Split:
		per = samples / int64(workers)
		remainder = samples % int64(workers)
	default:
		return nil, errors.Errorf("unknown partition policy %v", policy)
	}

	assignments := make([]SampleAssignment, workers)
	for i := range assignments {
		assignments[i] = SampleAssignment{
			Index:   i,
			Samples: per,
			Seed:    DeriveSeed(base, i),
		}
	}
	assignments[workers-1].Samples += remainder
	return assignments, nil
}

// TotalSamples is the number of points the assignments will draw together.
func TotalSamples(assignments []SampleAssignment) int64 {
	var total int64
	for _, a := range assignments {
		total += a.Samples
	}
	return total
}

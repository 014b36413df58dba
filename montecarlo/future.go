package montecarlo

import (
	"github.com/pkg/errors"
)

// Joiner is a launched worker the reducer can wait on.
type Joiner interface {
	Assignment() SampleAssignment
	// Join blocks until the worker has finished.
	Join() (PartialResult, error)
}

// Future runs one assignment on its own goroutine and holds its result.
type Future struct {
	assignment SampleAssignment
	done       chan struct{}
	result     PartialResult
	err        error
}

// Launch starts sample on a new goroutine for a.
func Launch(a SampleAssignment, sample Sampler) *Future {
	f := &Future{
		assignment: a,
		done:       make(chan struct{}),
	}
	go f.run(sample)
	return f
}

func (f *Future) run(sample Sampler) {
	defer close(f.done)
	defer func() {
		if r := recover(); r != nil {
			f.err = errors.Wrapf(ErrNoResult, "worker %d panicked: %v", f.assignment.Index, r)
		}
	}()

	res := sample(f.assignment)
	if res.Hits < 0 || res.Hits > f.assignment.Samples {
		f.err = errors.Wrapf(ErrInvalidResult, "worker %d counted %d hits out of %d samples",
			f.assignment.Index, res.Hits, f.assignment.Samples)
		return
	}
	res.Index = f.assignment.Index
	res.Samples = f.assignment.Samples
	f.result = res
}

func (f *Future) Assignment() SampleAssignment {
	return f.assignment
}

func (f *Future) Join() (PartialResult, error) {
	<-f.done
	return f.result, f.err
}

// Package montecarlo estimates Pi by drawing points in the unit square and
// counting the ones that land inside the quarter circle.
//
// Work is fanned out to one goroutine per worker, each with its own 48-bit
// random stream, and fanned back in by a single reducing goroutine once each
// worker is done. Workers share no mutable state.
package montecarlo

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidWorkers = errors.New("number of workers must be positive")
	ErrInvalidSamples = errors.New("number of samples must not be negative")

	// ErrNoResult means a worker stopped without producing a count.
	ErrNoResult = errors.New("worker returned no result")
	// ErrInvalidResult means a worker produced a count outside [0, samples].
	ErrInvalidResult = errors.New("worker returned an invalid result")
	// ErrJoin means waiting on a worker failed. Aggregation stops there.
	ErrJoin = errors.New("failed to join worker")
)

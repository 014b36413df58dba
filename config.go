package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bcap/pi/montecarlo"
	"github.com/pkg/errors"
)

const usage = `usage: %s [options] [samples [workers]]
Estimate Pi with a parallel Monte Carlo method.

  samples  points drawn by each worker (default %d, or $PI_SAMPLES)
  workers  number of parallel workers (default %d, or $PI_WORKERS)

With -split, samples is the total divided across workers instead.

Options:
`

var errConfig = errors.New("invalid configuration")

type settings struct {
	samples  int64
	workers  int
	split    bool
	base     baseVar
	progress bool
	stats    bool
	history  string
	resume   bool
}

func (s settings) engineConfig() montecarlo.Config {
	policy := montecarlo.PerWorker
	if s.split {
		policy = montecarlo.Split
	}
	return montecarlo.Config{
		Samples: s.samples,
		Workers: s.workers,
		Base:    s.base.value(),
		Policy:  policy,
	}
}

// defaults reads environment overrides. Invalid values are ignored.
func defaults(getenv func(string) string) settings {
	s := settings{
		samples: montecarlo.DefaultSamples,
		workers: montecarlo.DefaultWorkers,
	}
	if v, err := strconv.ParseInt(getenv("PI_SAMPLES"), 10, 64); err == nil && v >= 0 {
		s.samples = v
	}
	if v, err := strconv.Atoi(getenv("PI_WORKERS")); err == nil && v > 0 {
		s.workers = v
	}
	s.history = getenv("PI_HISTORY")
	return s
}

// parseArgs applies flags and positional arguments on top of s.
func parseArgs(s settings, program string, args []string, out io.Writer) (settings, error) {
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.BoolVar(&s.split, "split", s.split, "divide samples across workers instead of giving each worker all of them")
	fs.Var(&s.base, "seed", "base seed of the run (default: current time)")
	fs.BoolVar(&s.progress, "progress", s.progress, "show a progress bar on stderr")
	fs.BoolVar(&s.stats, "stats", s.stats, "log spread, confidence interval and throughput")
	fs.StringVar(&s.history, "history", s.history, "directory of the run history ledger")
	fs.BoolVar(&s.resume, "resume", s.resume, "also print the estimate over every run in the history")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usage, program, montecarlo.DefaultSamples, montecarlo.DefaultWorkers)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return s, err
		}
		return s, errors.Wrap(errConfig, err.Error())
	}

	switch fs.NArg() {
	case 2:
		workers, err := strconv.Atoi(fs.Arg(1))
		if err != nil || workers <= 0 {
			return s, errors.Wrapf(errConfig, "invalid number of workers %q", fs.Arg(1))
		}
		s.workers = workers
		fallthrough
	case 1:
		samples, err := strconv.ParseInt(fs.Arg(0), 10, 64)
		if err != nil || samples < 0 {
			return s, errors.Wrapf(errConfig, "invalid number of samples %q", fs.Arg(0))
		}
		s.samples = samples
	case 0:
	default:
		return s, errors.Wrap(errConfig, "too many arguments")
	}

	if s.resume && s.history == "" {
		return s, errors.Wrap(errConfig, "-resume needs -history")
	}
	return s, nil
}

// baseVar is a seed flag that falls back to the clock when unset.
type baseVar struct {
	set  bool
	base uint32
}

func (b *baseVar) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatUint(uint64(b.base), 10)
}

func (b *baseVar) Set(s string) error {
	val, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return err
	}
	b.base = uint32(val)
	b.set = true
	return nil
}

func (b *baseVar) value() uint32 {
	if b.set {
		return b.base
	}
	return uint32(time.Now().Unix())
}

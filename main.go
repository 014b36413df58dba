package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/bcap/pi/history"
	"github.com/bcap/pi/montecarlo"
)

//
// This program estimates Pi using a Monte Carlo method: points are drawn in
// the unit square and the fraction landing inside the quarter circle tends to
// Pi/4.
//
// Each worker draws the full number of samples given on the command line, so
// the work done is samples * workers. Pass -split to divide the samples across
// workers instead.
//
// With -history, every finished run is kept in a ledger and -resume prints
// the estimate over all of them, so precision keeps improving across runs.
//

func main() {
	log.SetPrefix("pi: ")
	log.SetFlags(0)

	s, err := parseArgs(defaults(os.Getenv), os.Args[0], os.Args[1:], os.Stderr)
	switch {
	case err == flag.ErrHelp:
		return
	case err != nil:
		log.Fatalf("error: %v", err)
	}

	if err := run(s, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run(s settings, stdout io.Writer, stderr io.Writer) error {
	var store *history.Store
	if s.history != "" {
		var err error
		store, err = history.Open(s.history)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	logger := log.New(stderr, "pi: ", 0)
	opts := []montecarlo.Option{montecarlo.WithLogger(logger)}
	if s.progress {
		opts = append(opts, montecarlo.WithProgress(stderr))
	}

	cfg := s.engineConfig()
	started := time.Now()
	res, err := montecarlo.Run(cfg, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "hits: %d\n", res.TotalHits)
	if res.Defined() {
		fmt.Fprintf(stdout, "Pi: %.16f\n", res.Pi)
	} else {
		fmt.Fprintln(stdout, "Pi: undefined")
	}

	if s.stats {
		logStats(logger, res)
	}
	if len(res.Anomalies) > 0 {
		logger.Printf("warning: %d of %d workers did not contribute", len(res.Anomalies), res.Workers)
	}

	if store == nil {
		return nil
	}
	if res.JoinErr != nil {
		logger.Printf("warning: run not added to history: %v", res.JoinErr)
	} else if err := record(store, cfg, res, started); err != nil {
		return err
	}
	if s.resume {
		in, total, err := store.Sum()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Pi (all runs): %s, in/total (sum): %d/%d\n",
			history.Pi(in, total).FloatString(30), in, total)
	}
	return nil
}

func record(store *history.Store, cfg montecarlo.Config, res montecarlo.AggregateResult, started time.Time) error {
	// only count samples whose hits were collected
	var samples int64
	for _, p := range res.Partials {
		samples += p.Samples
	}
	_, err := store.Append(history.Record{
		StartedAt: started.UnixNano(),
		Workers:   res.Workers,
		Policy:    cfg.Policy.String(),
		Samples:   samples,
		Hits:      res.TotalHits,
		Anomalies: len(res.Anomalies),
	})
	return err
}

func logStats(logger *log.Logger, res montecarlo.AggregateResult) {
	sum := montecarlo.Summarize(res, 0.95)
	logger.Printf(
		"workers: %d/%d, worker mean: %.10f, worker stddev: %.10f, stderr: %.10f, 95%% interval: [%.10f, %.10f], elapsed: %v, samples per sec: %.0fK",
		res.Collected(), res.Workers, sum.Mean, sum.StdDev, sum.StdErr, sum.Low, sum.High,
		res.Elapsed.Round(time.Millisecond), sum.Throughput/1000,
	)
}

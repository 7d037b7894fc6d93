// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pllsim

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// SweepConfig configures a parameter sweep of the analog loop.
//
type SweepConfig struct {
	Base   LoopConfig // configuration shared by all runs
	Field  string     // swept field, see LoopParameters.With
	Values []float64  // swept values, one run per value
	Seed   int64      // run i uses a Source seeded with Seed+i
	// Workers is the number of goroutines running simulations. If less or
	// equal to 0, the value of GOMAXPROCS will be used.
	Workers int
	// LockTolerance is the frequency tolerance passed to LoopResult.LockStep.
	LockTolerance float64
}

// SweepPoint is the outcome of one sweep run.
//
type SweepPoint struct {
	Value    float64
	Result   *LoopResult
	LockStep int   // see LoopResult.LockStep
	Overflow error // see LoopResult.Overflow
}

// Sweep runs one analog loop simulation per value of cfg.Values and returns
// the results in the same order.
//
// Every run owns an independently seeded Source so the results do not depend
// on the number of workers or on goroutine scheduling.
//
func Sweep(cfg SweepConfig) ([]SweepPoint, error) {
	if len(cfg.Values) == 0 {
		return nil, errors.New("empty value list")
	}
	if cfg.LockTolerance < 0 {
		return nil, &ParamError{Model: "sweep", Field: "tolerance", Value: cfg.LockTolerance, Reason: "must be >= 0"}
	}

	// validate every configuration upfront so that no run starts on error.
	cfgs := make([]LoopConfig, len(cfg.Values))
	for i, v := range cfg.Values {
		c := cfg.Base
		p, err := c.LoopParameters.With(cfg.Field, v)
		if err != nil {
			return nil, err
		}
		c.LoopParameters = p
		if err := c.Validate(); err != nil {
			return nil, errors.Wrapf(err, "sweep value #%d", i)
		}
		cfgs[i] = c
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers > len(cfgs) {
		workers = len(cfgs)
	}

	pts := make([]SweepPoint, len(cfgs))
	errs := make([]error, len(cfgs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := SimulateLoop(cfgs[i], NewSource(cfg.Seed+int64(i)))
				if err != nil {
					errs[i] = err
					continue
				}
				pts[i] = SweepPoint{
					Value:    cfg.Values[i],
					Result:   r,
					LockStep: r.LockStep(cfg.LockTolerance),
					Overflow: r.Overflow(),
				}
			}
		}()
	}
	for i := range cfgs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "sweep value #%d", i)
		}
	}
	return pts, nil
}

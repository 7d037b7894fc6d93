// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command pllsim runs the analog PLL, digital delay line and CDR models and
// writes their output sequences as CSV tables and PNG plots.
//
//	pllsim -set "kvco=25, loop_filter=0.05" -seed 3 -out results
//	pllsim -sweep "kvco=1..30:8" -v
//	pllsim -list
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/db47h/pllsim"
	"github.com/db47h/pllsim/internal/render"
	"github.com/db47h/pllsim/params"
	"github.com/pkg/errors"
)

type options struct {
	set        string
	sweep      string
	seed       int64
	loopSteps  int
	delaySteps int
	cdrSteps   int
	out        string
	csv        bool
	png        bool
	list       bool
	workers    int
	tolerance  float64
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("pllsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.set, "set", "", "parameter overrides, e.g. \"kpd=3, kvco=10\"")
	fs.StringVar(&o.sweep, "sweep", "", "sweep a loop parameter: name=from..to:count")
	fs.Int64Var(&o.seed, "seed", 1, "random seed")
	fs.IntVar(&o.loopSteps, "steps-loop", pllsim.DefaultLoopSteps, "analog loop step count")
	fs.IntVar(&o.delaySteps, "steps-delay", pllsim.DefaultDelaySteps, "delay line sample count")
	fs.IntVar(&o.cdrSteps, "steps-cdr", pllsim.DefaultCDRSteps, "CDR sample count")
	fs.StringVar(&o.out, "out", "", "output directory (default: no files)")
	fs.BoolVar(&o.csv, "csv", true, "write CSV tables to the output directory")
	fs.BoolVar(&o.png, "png", true, "write PNG plots to the output directory")
	fs.BoolVar(&o.list, "list", false, "list parameters and exit")
	fs.IntVar(&o.workers, "workers", 0, "sweep worker count (0: GOMAXPROCS)")
	fs.Float64Var(&o.tolerance, "lock-tol", 0.05, "frequency tolerance for lock detection")
	fs.BoolVar(&o.verbose, "v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return o, nil
}

func listParams(w io.Writer, r *params.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODEL\tMIN\tMAX\tVALUE\tDESCRIPTION")
	for _, p := range r.Params() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Model, p.Format(p.Min), p.Format(p.Max), p.Format(r.Get(p.Name)), p.Label)
	}
	return tw.Flush()
}

func writeFile(name string, f func(w io.Writer) error) (err error) {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return f(out)
}

func (o *options) write(base string, cols []render.Column, panels []render.Panel) error {
	if o.out == "" {
		return nil
	}
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return err
	}
	if o.csv {
		name := filepath.Join(o.out, base+".csv")
		if err := writeFile(name, func(w io.Writer) error { return render.WriteCSV(w, cols...) }); err != nil {
			return errors.Wrap(err, name)
		}
		o.logf("wrote %s", name)
	}
	if o.png {
		name := filepath.Join(o.out, base+".png")
		if err := writeFile(name, func(w io.Writer) error { return render.WritePNG(w, panels...) }); err != nil {
			return errors.Wrap(err, name)
		}
		o.logf("wrote %s", name)
	}
	return nil
}

func (o *options) logf(format string, args ...interface{}) {
	if o.verbose {
		log.Printf(format, args...)
	}
}

func runSweep(o *options, r *params.Registry, stdout io.Writer) error {
	name, values, err := params.ParseRange(o.sweep)
	if err != nil {
		return err
	}
	if p := r.Param(name); p == nil || p.Model != "loop" {
		return errors.Errorf("%q is not an analog loop parameter", name)
	}
	pts, err := pllsim.Sweep(pllsim.SweepConfig{
		Base:          r.LoopConfig(o.loopSteps),
		Field:         name,
		Values:        values,
		Seed:          o.seed,
		Workers:       o.workers,
		LockTolerance: o.tolerance,
	})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tLOCK STEP\tFINAL FREQ\tSTATUS\n", name)
	for _, p := range pts {
		status := "ok"
		if p.Overflow != nil {
			status = p.Overflow.Error()
		} else if p.LockStep < 0 {
			status = "no lock"
		}
		fmt.Fprintf(tw, "%g\t%d\t%g\t%s\n", p.Value, p.LockStep, p.Result.Final.FreqVCO, status)
	}
	return tw.Flush()
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	r := params.Default()
	if err := r.Apply(o.set); err != nil {
		return errors.Wrap(err, "-set")
	}
	if o.list {
		return listParams(stdout, r)
	}
	if o.sweep != "" {
		return runSweep(o, r, stdout)
	}

	// each model gets its own source, as if run by independent requests.
	lr, err := pllsim.SimulateLoop(r.LoopConfig(o.loopSteps), pllsim.NewSource(o.seed))
	if err != nil {
		return err
	}
	if err := lr.Overflow(); err != nil {
		log.Printf("analog loop diverged: %v", err)
	}
	fmt.Fprintf(stdout, "analog loop: %d steps, lock step %d, final freq %g\n",
		lr.Len(), lr.LockStep(o.tolerance), lr.Final.FreqVCO)
	if err := o.write("loop", render.LoopColumns(lr), render.LoopPanels(lr)); err != nil {
		return err
	}

	dc, err := r.DelayConfig(o.delaySteps)
	if err != nil {
		return err
	}
	dr, err := pllsim.SimulateDelay(dc)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "delay line:  %d samples, delay %d\n", dr.Len(), dc.Delay)
	if err := o.write("delay", render.DelayColumns(dr), render.DelayPanels(dr)); err != nil {
		return err
	}

	cr, err := pllsim.SimulateCDR(r.CDRConfig(o.cdrSteps), pllsim.NewSource(o.seed+1))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "cdr:         %d samples, %d clock edges, %d recovered edges, %d mismatches\n",
		cr.Len(), cr.Edges(), cr.RecoveredEdges(), cr.Mismatches())
	return o.write("cdr", render.CDRColumns(cr), render.CDRPanels(cr))
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("pllsim: ")
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// Package host drives the engine the way a compiler drives an annotation
// processor: it reloads the packages every round and hands newly marked
// packages to the session until nothing is left to do.
package host

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inflater-generator/internal/analyze"
	"inflater-generator/internal/common"
	"inflater-generator/internal/diagnostic"
	"inflater-generator/internal/unit"
)

var (
	// ErrUnfinished is returned when units are still pending after the last round.
	ErrUnfinished = errors.New("inflater generation unfinished")
	// ErrPackageErrors is returned when the loaded packages do not type-check.
	ErrPackageErrors = errors.New("packages have errors")
)

// DefaultMaxRounds bounds a run when Options.MaxRounds is not set.
const DefaultMaxRounds = 5

// Source loads the symbol trees of the packages matching patterns.
type Source interface {
	Load(patterns ...string) (*analyze.Program, error)
}

// Engine is the round-based processor fed by the driver.
type Engine interface {
	ProcessRound(annotated []*analyze.Symbol) error
	Pending() []*unit.Unit
	Completed() []*unit.Unit
}

// Options configures a Driver.
type Options struct {
	Patterns  []string
	MaxRounds int
	// Marker selects the packages delivered to the engine.
	Marker string
	Sink   diagnostic.Sink
}

// Report summarizes a run.
type Report struct {
	Rounds    int
	Completed []string
	Pending   []string
}

// Driver runs rounds against an Engine.
type Driver struct {
	source Source
	engine Engine
	opts   Options

	delivered map[string]bool
}

// New creates a Driver.
func New(source Source, engine Engine, opts Options) *Driver {
	if common.IsEmpty(opts.Patterns) {
		opts.Patterns = []string{"./..."}
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.Marker == "" {
		opts.Marker = analyze.MarkerCreate
	}
	if opts.Sink == nil {
		opts.Sink = &diagnostic.Diagnostics{}
	}

	return &Driver{
		source:    source,
		engine:    engine,
		opts:      opts,
		delivered: make(map[string]bool),
	}
}

// Run executes rounds until no unit is pending or the round limit is hit.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	var report Report

	for report.Rounds < d.opts.MaxRounds {
		if err := ctx.Err(); err != nil {
			return d.finish(report), fmt.Errorf("round %d canceled: %w", report.Rounds+1, err)
		}

		report.Rounds++

		prog, err := d.source.Load(d.opts.Patterns...)
		if err != nil {
			return d.finish(report), fmt.Errorf("round %d: %w", report.Rounds, err)
		}

		if prog.HasErrors() {
			d.opts.Sink.Report(diagnostic.DiagnosticWarning, "Pending errors present, aborting layout processing", nil)
			return d.finish(report), fmt.Errorf("round %d: %w", report.Rounds, errors.Join(append([]error{ErrPackageErrors}, prog.Errors...)...))
		}

		annotated := d.fresh(prog.Annotated(d.opts.Marker))
		d.opts.Sink.Report(diagnostic.DiagnosticInfo,
			fmt.Sprintf("Round %d: %d newly marked packages", report.Rounds, len(annotated)), nil)

		if err := d.engine.ProcessRound(annotated); err != nil {
			return d.finish(report), fmt.Errorf("round %d: %w", report.Rounds, err)
		}

		if common.IsEmpty(d.engine.Pending()) {
			return d.finish(report), nil
		}
	}

	report = d.finish(report)
	d.opts.Sink.Report(diagnostic.DiagnosticWarning,
		"Unable to finish inflater generation for: "+strings.Join(report.Pending, ", "), nil)

	return report, ErrUnfinished
}

// fresh filters out packages delivered in an earlier round.
func (d *Driver) fresh(annotated []*analyze.Symbol) []*analyze.Symbol {
	var out []*analyze.Symbol

	for _, sym := range annotated {
		key := sym.ID.PkgPath
		if d.delivered[key] {
			continue
		}

		d.delivered[key] = true
		out = append(out, sym)
	}

	return out
}

func (d *Driver) finish(report Report) Report {
	report.Completed = names(d.engine.Completed())
	report.Pending = names(d.engine.Pending())

	return report
}

func names(units []*unit.Unit) []string {
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, u.Name())
	}

	return out
}

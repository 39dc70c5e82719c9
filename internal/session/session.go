// Package session holds the engine state that lives across compilation rounds.
//
// A Session owns the pending and completed unit sets and the resolved
// resource directory. The host calls ProcessRound once per round with the
// symbols that carry the trigger marker for the first time.
package session

import (
	"errors"
	"fmt"

	"inflater-generator/internal/analyze"
	"inflater-generator/internal/common"
	"inflater-generator/internal/diagnostic"
	"inflater-generator/internal/manifest"
	"inflater-generator/internal/round"
	"inflater-generator/internal/scan"
	"inflater-generator/internal/unit"
)

// ArgResourceDir is the name of the option that configures the resource directory.
const ArgResourceDir = "resourceDir"

const resourceDirName = "res"

// ErrResourceDirUnknown is returned by ProcessRound when new units were
// annotated but no resource directory could be resolved.
var ErrResourceDirUnknown = errors.New("resource directory unknown, failed to proceed")

var resourceDirMessage = "Supply " + ArgResourceDir + " argument with full path" +
	" of Android resource directory to annotation processor. See documentation of" +
	" your compiler and build system for details."

// Locator finds the manifest from a source directory.
type Locator interface {
	Locate(sourceRoot string) manifest.Result
	FileName() string
}

// Options configures a Session.
type Options struct {
	// ResourceDir is the configured resource directory. Empty triggers probing.
	ResourceDir string
	// Filer creates the probe resource used to find the source directory.
	Filer Filer
	// Locator finds the manifest. Defaults to manifest.NewChain().
	Locator Locator
	// Processor finishes discovered units. Required.
	Processor round.Processor
	// Sink receives diagnostics. Defaults to discarding them.
	Sink diagnostic.Sink
	// Target overrides the simple name of the container type.
	Target string
}

// Session is the process-wide engine state for one compilation.
type Session struct {
	configured  string
	resourceDir string

	filer     Filer
	locator   Locator
	processor round.Processor
	sink      diagnostic.Sink

	sets    *unit.Sets
	scanner *scan.Scanner
}

// New creates a Session. It does not touch the filesystem.
func New(opts Options) *Session {
	s := &Session{
		configured: opts.ResourceDir,
		filer:      opts.Filer,
		locator:    opts.Locator,
		processor:  opts.Processor,
		sink:       opts.Sink,
		sets:       unit.NewSets(),
	}

	if s.locator == nil {
		s.locator = manifest.NewChain()
	}
	if s.sink == nil {
		s.sink = &diagnostic.Diagnostics{}
	}

	s.scanner = scan.New(s.sets, scan.WithTarget(opts.Target))

	return s
}

// ResourceDir returns the configured resource directory, or probes the
// filesystem for one. A resolved value is cached; an unresolved one is
// probed again on the next call.
func (s *Session) ResourceDir() (string, bool) {
	if s.resourceDir != "" {
		return s.resourceDir, true
	}

	if s.configured != "" {
		s.resourceDir = s.configured
		return s.resourceDir, true
	}

	s.notice("Failed to get Android resource directory from compiler options, guessing the hard way")

	dir, ok := s.guessResourceDir()
	if ok {
		s.resourceDir = dir
	}

	return dir, ok
}

// ProcessRound runs one round. New containers found under the annotated
// symbols become pending; then every pending unit is processed once.
// When symbols were annotated and no resource directory can be resolved,
// a single error is reported against the first symbol and the round is
// aborted with ErrResourceDirUnknown.
func (s *Session) ProcessRound(annotated []*analyze.Symbol) error {
	for _, sym := range annotated {
		s.discover(sym)
	}

	if first, ok := common.First(annotated); ok {
		if _, ok := s.ResourceDir(); !ok {
			s.errorOut(resourceDirMessage, first)
			return ErrResourceDirUnknown
		}
	}

	for _, u := range s.sets.Pending() {
		out := s.process(u)

		switch out.State {
		case round.StateError:
			s.errorOut(out.Message, out.Symbol)
		case round.StateComplete:
			s.sets.Complete(u.Name())
			s.log("Generated inflater for " + u.Name())
		case round.StatePartial:
			// retried next round
		}
	}

	return nil
}

// Pending returns the units waiting to be processed, sorted by name.
func (s *Session) Pending() []*unit.Unit {
	return s.sets.Pending()
}

// Completed returns the fully processed units, sorted by name.
func (s *Session) Completed() []*unit.Unit {
	return s.sets.Completed()
}

func (s *Session) discover(sym *analyze.Symbol) {
	u, err := s.scanner.Scan(sym)
	if err != nil {
		s.errorOut(err.Error(), sym)
		return
	}

	if u != nil && s.sets.Track(u) {
		s.log("Discovered " + u.Name())
	}
}

// process runs the processor for one unit. A panicking processor fails
// only its own unit.
func (s *Session) process(u *unit.Unit) (out round.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = round.Failed(u.Symbol, fmt.Sprintf("processing %s panicked: %v", u.Name(), r))
		}
	}()

	return s.processor.Process(u, s.resourceDir)
}

func (s *Session) log(message string) {
	s.sink.Report(diagnostic.DiagnosticInfo, message, nil)
}

func (s *Session) notice(message string) {
	s.sink.Report(diagnostic.DiagnosticNotice, message, nil)
}

func (s *Session) warn(message string) {
	s.sink.Report(diagnostic.DiagnosticWarning, message, nil)
}

func (s *Session) errorOut(message string, sym *analyze.Symbol) {
	s.sink.Report(diagnostic.DiagnosticError, message, sym)
}

// Package scan finds the generated container type inside a symbol tree.
package scan

import (
	"fmt"
	"strings"

	"inflater-generator/internal/analyze"
	"inflater-generator/internal/common"
	"inflater-generator/internal/unit"
)

// DefaultTarget is the simple name of the generated container type.
const DefaultTarget = "R"

// Tracker reports whether a unit identity is already pending or completed.
type Tracker interface {
	IsTracked(id analyze.TypeID) bool
}

// AmbiguityError is returned when a subtree holds more than one container type.
type AmbiguityError struct {
	Root    *analyze.Symbol
	Matches []*analyze.Symbol
}

// Error implements the error interface.
func (e *AmbiguityError) Error() string {
	names := make([]string, 0, len(e.Matches))
	for _, m := range e.Matches {
		names = append(names, m.QualifiedName())
	}

	return fmt.Sprintf("%s declares %d candidate container types: %s",
		e.Root.QualifiedName(), len(e.Matches), strings.Join(names, ", "))
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithTarget overrides the simple name of the container type.
func WithTarget(name string) Option {
	return func(s *Scanner) {
		if name != "" {
			s.target = name
		}
	}
}

// Scanner walks symbol trees depth-first looking for the container type.
type Scanner struct {
	target  string
	tracker Tracker
}

// New creates a Scanner that skips units already known to tracker.
func New(tracker Tracker, opts ...Option) *Scanner {
	s := &Scanner{
		target:  DefaultTarget,
		tracker: tracker,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Target returns the simple name being searched for.
func (s *Scanner) Target() string {
	return s.target
}

// Scan searches the tree rooted at root. It returns the newly discovered
// unit, or nil when the tree has no container type or the one it has is
// already tracked. More than one container type in the tree is an
// *AmbiguityError and yields no unit.
func (s *Scanner) Scan(root *analyze.Symbol) (*unit.Unit, error) {
	if root == nil {
		return nil, nil
	}

	w := &walk{scanner: s}
	found := w.visit(root, nil)

	if common.IsMultiple(w.matches) {
		return nil, &AmbiguityError{Root: root, Matches: w.matches}
	}

	return found, nil
}

// walk holds the state of one Scan call.
type walk struct {
	scanner *Scanner
	matches []*analyze.Symbol
}

// visit dispatches on the symbol kind. The running result is threaded
// through the children: a non-nil child result replaces it, otherwise the
// last found result is kept.
func (w *walk) visit(sym *analyze.Symbol, last *unit.Unit) *unit.Unit {
	switch sym.Kind {
	case analyze.SymbolClass:
		if found := w.test(sym); found != nil {
			last = found
		}

		return w.children(sym, last)
	default:
		// packages and other kinds are traversed generically, never rejected
		return w.children(sym, last)
	}
}

func (w *walk) children(sym *analyze.Symbol, last *unit.Unit) *unit.Unit {
	for _, child := range sym.Children {
		if found := w.visit(child, last); found != nil {
			last = found
		}
	}

	return last
}

// test applies the name test to a class symbol. Struct fields only name
// a shape, so they are descended into but never match.
func (w *walk) test(sym *analyze.Symbol) *unit.Unit {
	if sym.Field || sym.Name != w.scanner.target {
		return nil
	}

	w.matches = append(w.matches, sym)

	if w.scanner.tracker != nil && w.scanner.tracker.IsTracked(sym.ID) {
		return nil
	}

	return unit.New(sym)
}

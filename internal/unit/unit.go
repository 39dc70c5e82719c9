// Package unit tracks the generated container types discovered across rounds.
package unit

import (
	"maps"
	"slices"

	"inflater-generator/internal/analyze"
	"inflater-generator/internal/common"
)

// Unit identifies one discovered generated-container type.
// Two units with the same canonical name are the same unit.
type Unit struct {
	ID     analyze.TypeID
	Pkg    *analyze.PackageInfo
	Symbol *analyze.Symbol
}

// New creates a Unit for the container declared by sym.
func New(sym *analyze.Symbol) *Unit {
	return &Unit{
		ID:     sym.ID,
		Pkg:    sym.Pkg,
		Symbol: sym,
	}
}

// Name returns the canonical name used as the unit's identity.
func (u *Unit) Name() string {
	return u.ID.String()
}

// PackageName returns the Go package name of the owning package.
func (u *Unit) PackageName() string {
	if u.Pkg == nil || u.Pkg.Name == "" {
		return common.PkgAlias(u.ID.PkgPath)
	}

	return u.Pkg.Name
}

// Dir returns the directory of the owning package.
func (u *Unit) Dir() string {
	if u.Pkg == nil {
		return ""
	}

	return u.Pkg.Dir
}

// Sets holds the pending and completed units of a session.
// A name is present in at most one of the two maps, and a completed
// name never returns to pending.
type Sets struct {
	pending   map[string]*Unit
	completed map[string]*Unit
}

// NewSets creates empty unit sets.
func NewSets() *Sets {
	return &Sets{
		pending:   make(map[string]*Unit),
		completed: make(map[string]*Unit),
	}
}

// IsTracked reports whether a unit with the given identity is pending or completed.
func (s *Sets) IsTracked(id analyze.TypeID) bool {
	name := id.String()
	_, pending := s.pending[name]
	_, completed := s.completed[name]

	return pending || completed
}

// Track adds u to the pending set. It returns false and changes nothing
// when the unit is already pending or completed.
func (s *Sets) Track(u *Unit) bool {
	if s.IsTracked(u.ID) {
		return false
	}

	s.pending[u.Name()] = u

	return true
}

// Complete moves the named unit from pending to completed.
// It returns false when the unit is not pending.
func (s *Sets) Complete(name string) bool {
	u, ok := s.pending[name]
	if !ok {
		return false
	}

	delete(s.pending, name)
	s.completed[name] = u

	return true
}

// IsPending reports whether the named unit is pending.
func (s *Sets) IsPending(name string) bool {
	_, ok := s.pending[name]
	return ok
}

// IsCompleted reports whether the named unit is completed.
func (s *Sets) IsCompleted(name string) bool {
	_, ok := s.completed[name]
	return ok
}

// Pending returns the pending units sorted by name.
func (s *Sets) Pending() []*Unit {
	return sorted(s.pending)
}

// Completed returns the completed units sorted by name.
func (s *Sets) Completed() []*Unit {
	return sorted(s.completed)
}

// Len returns the number of pending and completed units.
func (s *Sets) Len() (pending, completed int) {
	return len(s.pending), len(s.completed)
}

func sorted(m map[string]*Unit) []*Unit {
	out := make([]*Unit, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[name])
	}

	return out
}

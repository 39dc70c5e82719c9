package analyze

import (
	"go/token"
	"slices"

	"inflater-generator/internal/common"
)

// Marker directives recognised in package doc comments.
const (
	// MarkerCreate triggers inflater generation for the package.
	MarkerCreate = "inflater:create"
	// MarkerLayout scopes layout-to-type mappings. It is recorded but not interpreted.
	MarkerLayout = "inflater:layout"
)

// TypeID uniquely identifies a declaration by its package path and name.
// Nested declarations use a dotted name (e.g., "R.Layout").
type TypeID struct {
	PkgPath string // e.g., "example.com/app/res"
	Name    string // e.g., "R"
}

// String returns the canonical name of the declaration.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	if t.Name == "" {
		return t.PkgPath
	}

	return t.PkgPath + "." + t.Name
}

// Nested returns the TypeID of a declaration nested inside t.
func (t TypeID) Nested(name string) TypeID {
	if t.Name == "" {
		return TypeID{PkgPath: t.PkgPath, Name: name}
	}

	return TypeID{PkgPath: t.PkgPath, Name: t.Name + "." + name}
}

// SymbolKind discriminates the Symbol union.
type SymbolKind int

const (
	SymbolUnknown SymbolKind = iota
	SymbolPackage            // a loaded package
	SymbolClass              // a struct type, named or nested
	SymbolOther              // funcs, vars, consts, methods, non-struct types
)

// String returns a human-readable representation of the SymbolKind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolPackage:
		return "package"
	case SymbolClass:
		return "class"
	case SymbolOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Files []string // Absolute paths of the Go source files
}

// Symbol is one node of a symbol tree.
type Symbol struct {
	Kind     SymbolKind
	Name     string         // Simple name; the package name for packages
	ID       TypeID         // Canonical identity
	Pos      token.Position // Declaration position, zero when unknown
	Pkg      *PackageInfo   // Owning package
	Markers  []string       // Directives found on the declaration
	Field    bool           // Anonymous struct field rather than a named type
	Children []*Symbol
}

// QualifiedName returns the canonical name of the symbol.
func (s *Symbol) QualifiedName() string {
	return s.ID.String()
}

// HasMarker reports whether the symbol carries the given directive.
func (s *Symbol) HasMarker(marker string) bool {
	return slices.Contains(s.Markers, marker)
}

// String returns "kind name" for diagnostics.
func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}

	return s.Kind.String() + " " + s.QualifiedName()
}

// Program is the result of one load: a package symbol per loaded package.
type Program struct {
	Packages []*Symbol
	Errors   []error
}

// HasErrors reports whether any loaded package had errors.
func (p *Program) HasErrors() bool {
	return len(p.Errors) > 0
}

// Annotated returns the package symbols that carry the marker, in load order.
func (p *Program) Annotated(marker string) []*Symbol {
	var out []*Symbol

	for _, pkg := range p.Packages {
		if pkg.HasMarker(marker) {
			out = append(out, pkg)
		}
	}

	return out
}

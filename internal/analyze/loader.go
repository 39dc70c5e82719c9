package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Loader loads Go packages and builds their symbol trees.
type Loader struct {
	dir string
}

// NewLoader creates a Loader resolving patterns relative to dir.
// An empty dir means the current working directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load loads the packages matching patterns (e.g., "./...", "example.com/app/res").
// Package-level errors do not fail the load; they are collected in Program.Errors.
func (l *Loader) Load(patterns ...string) (*Program, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  l.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	prog := &Program{}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			prog.Errors = append(prog.Errors, e)
		}

		if pkg.Types == nil {
			continue
		}

		prog.Packages = append(prog.Packages, buildPackage(pkg))
	}

	return prog, nil
}

// buildPackage turns a loaded package into a package symbol.
func buildPackage(pkg *packages.Package) *Symbol {
	info := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Files: pkg.GoFiles,
	}
	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	sym := &Symbol{
		Kind: SymbolPackage,
		Name: pkg.Name,
		ID:   TypeID{PkgPath: pkg.PkgPath},
		Pkg:  info,
	}

	// The marker may sit on any file's package clause; the first one wins the position.
	for _, file := range pkg.Syntax {
		markers := directives(file.Doc)
		if len(markers) == 0 {
			continue
		}

		if !sym.Pos.IsValid() {
			sym.Pos = pkg.Fset.Position(file.Package)
		}
		sym.Markers = appendUnique(sym.Markers, markers...)
	}

	b := &builder{fset: pkg.Fset, pkg: info}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		sym.Children = append(sym.Children, b.object(scope.Lookup(name)))
	}

	return sym
}

type builder struct {
	fset *token.FileSet
	pkg  *PackageInfo
}

// object builds the symbol of a package-level declaration.
func (b *builder) object(obj types.Object) *Symbol {
	sym := &Symbol{
		Kind: SymbolOther,
		Name: obj.Name(),
		ID:   TypeID{PkgPath: b.pkg.Path, Name: obj.Name()},
		Pos:  b.fset.Position(obj.Pos()),
		Pkg:  b.pkg,
	}

	typeName, ok := obj.(*types.TypeName)
	if !ok {
		return sym
	}

	if st, ok := typeName.Type().Underlying().(*types.Struct); ok && !typeName.IsAlias() {
		sym.Kind = SymbolClass
		sym.Children = b.fields(sym.ID, st)
	}

	if named, ok := typeName.Type().(*types.Named); ok {
		for i := range named.NumMethods() {
			m := named.Method(i)
			sym.Children = append(sym.Children, &Symbol{
				Kind: SymbolOther,
				Name: m.Name(),
				ID:   sym.ID.Nested(m.Name()),
				Pos:  b.fset.Position(m.Pos()),
				Pkg:  b.pkg,
			})
		}
	}

	return sym
}

// fields builds nested class symbols for anonymous struct-typed fields.
// Fields of named types are references, not declarations, and are skipped.
func (b *builder) fields(parent TypeID, st *types.Struct) []*Symbol {
	var out []*Symbol

	for i := range st.NumFields() {
		field := st.Field(i)

		nested, ok := field.Type().(*types.Struct)
		if !ok {
			continue
		}

		id := parent.Nested(field.Name())
		out = append(out, &Symbol{
			Kind:     SymbolClass,
			Name:     field.Name(),
			ID:       id,
			Pos:      b.fset.Position(field.Pos()),
			Pkg:      b.pkg,
			Field:    true,
			Children: b.fields(id, nested),
		})
	}

	return out
}

// directives extracts "//name:arg" directives from a comment group.
// CommentGroup.Text drops directives, so the raw list is scanned.
func directives(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var out []string
	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, "//")
		if !ok || text == "" || text[0] == ' ' {
			continue
		}

		if name, _, _ := strings.Cut(text, " "); strings.Contains(name, ":") {
			out = append(out, name)
		}
	}

	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}

	return dst
}

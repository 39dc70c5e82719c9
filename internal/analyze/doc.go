// Package analyze loads Go packages and turns them into symbol trees.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// hierarchical model of what each package declares:
//   - Symbol: a tagged union over package, class and other kinds
//   - TypeID: package import path + dotted declaration name (canonical name)
//   - PackageInfo: name, directory and source files of the owning package
//
// Named struct types are class-kind symbols. Anonymous struct-typed fields
// of a class become nested class symbols, so `R.Layout` in
//
//	type R struct {
//		Layout struct{ Main int }
//	}
//
// is reachable from R the same way an inner class would be.
//
// Packages opt into generation with a directive in their doc comment:
//
//	//inflater:create
//	package res
package analyze

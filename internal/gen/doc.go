// Package gen renders the inflater source for a discovered container type.
//
// Generation uses text/template + go/format, the same way for every unit:
//   - layouts are collected from layout*/ directories of the resource dir
//   - one constant per layout name, plus a lookup table of layout files
//   - output is written atomically next to the container's package sources
package gen

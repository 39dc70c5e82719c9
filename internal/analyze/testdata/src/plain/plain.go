// Package plain carries no marker.
package plain

type R struct{}

var Count int

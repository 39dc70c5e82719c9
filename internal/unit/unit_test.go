package unit

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inflater-generator/internal/analyze"
)

func newUnit(pkg string) *Unit {
	return New(&analyze.Symbol{
		Kind: analyze.SymbolClass,
		Name: "R",
		ID:   analyze.TypeID{PkgPath: pkg, Name: "R"},
		Pkg:  &analyze.PackageInfo{Path: pkg, Name: "res", Dir: "/src/" + pkg},
	})
}

func TestUnit_Accessors(t *testing.T) {
	u := newUnit("example.com/app/res")

	assert.Equal(t, "example.com/app/res.R", u.Name())
	assert.Equal(t, "res", u.PackageName())
	assert.Equal(t, "/src/example.com/app/res", u.Dir())

	bare := &Unit{ID: analyze.TypeID{Name: "R"}}
	assert.Empty(t, bare.PackageName())
	assert.Empty(t, bare.Dir())

	aliased := &Unit{ID: analyze.TypeID{PkgPath: "example.com/app/views", Name: "R"}}
	assert.Equal(t, "views", aliased.PackageName())
}

func TestSets_TrackDeduplicates(t *testing.T) {
	s := NewSets()

	require.True(t, s.Track(newUnit("a")))
	assert.False(t, s.Track(newUnit("a")), "same canonical name is the same unit")

	pending, completed := s.Len()
	assert.Equal(t, 1, pending)
	assert.Equal(t, 0, completed)
}

func TestSets_CompleteNeverReturnsToPending(t *testing.T) {
	s := NewSets()
	u := newUnit("a")

	require.True(t, s.Track(u))
	require.True(t, s.Complete(u.Name()))

	assert.False(t, s.IsPending(u.Name()))
	assert.True(t, s.IsCompleted(u.Name()))
	assert.False(t, s.Track(newUnit("a")))
	assert.False(t, s.Complete(u.Name()))
	assert.True(t, s.IsTracked(u.ID))
}

func TestSets_PendingSorted(t *testing.T) {
	s := NewSets()
	s.Track(newUnit("c"))
	s.Track(newUnit("a"))
	s.Track(newUnit("b"))

	var names []string
	for _, u := range s.Pending() {
		names = append(names, u.Name())
	}

	assert.Equal(t, []string{"a.R", "b.R", "c.R"}, names)
	assert.Empty(t, s.Completed())
}

// TestSets_PartitionProperty drives random track/complete sequences and
// checks that pending and completed stay disjoint and completed only grows.
func TestSets_PartitionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pending and completed stay disjoint", prop.ForAll(
		func(ops []int) bool {
			s := NewSets()
			done := make(map[string]bool)

			for _, op := range ops {
				name := fmt.Sprintf("p%d", op%5)
				if op%2 == 0 {
					s.Track(newUnit(name))
				} else {
					s.Complete(name + ".R")
				}

				for _, u := range s.Pending() {
					if s.IsCompleted(u.Name()) || done[u.Name()] {
						return false
					}
				}

				for _, u := range s.Completed() {
					done[u.Name()] = true
				}

				for name := range done {
					if !s.IsCompleted(name) {
						return false
					}
				}
			}

			return true
		},
		gen.SliceOf(gen.IntRange(0, 19)),
	))

	properties.TestingRun(t)
}

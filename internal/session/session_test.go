package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inflater-generator/internal/analyze"
	"inflater-generator/internal/diagnostic"
	"inflater-generator/internal/manifest"
	"inflater-generator/internal/round"
	"inflater-generator/internal/unit"
)

// packageWithR builds a package symbol declaring a container type R.
func packageWithR(pkgPath string) *analyze.Symbol {
	info := &analyze.PackageInfo{Path: pkgPath, Name: filepath.Base(pkgPath), Dir: "/src/" + pkgPath}
	pkgID := analyze.TypeID{PkgPath: pkgPath}

	return &analyze.Symbol{
		Kind: analyze.SymbolPackage,
		Name: info.Name,
		ID:   pkgID,
		Pkg:  info,
		Children: []*analyze.Symbol{
			{Kind: analyze.SymbolClass, Name: "R", ID: pkgID.Nested("R"), Pkg: info},
		},
	}
}

// recorder is a Processor returning scripted outcomes per unit name.
type recorder struct {
	outcomes map[string][]round.Outcome
	calls    []string
	dirs     []string
}

func (r *recorder) Process(u *unit.Unit, resourceDir string) round.Outcome {
	r.calls = append(r.calls, u.Name())
	r.dirs = append(r.dirs, resourceDir)

	script := r.outcomes[u.Name()]
	if len(script) == 0 {
		return round.Complete()
	}

	out := script[0]
	r.outcomes[u.Name()] = script[1:]

	return out
}

func newRecorder() *recorder {
	return &recorder{outcomes: make(map[string][]round.Outcome)}
}

func names(units []*unit.Unit) []string {
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, u.Name())
	}

	return out
}

func TestSession_ConfiguredResourceDir(t *testing.T) {
	diags := &diagnostic.Diagnostics{}
	s := New(Options{ResourceDir: "/res", Processor: newRecorder(), Sink: diags})

	dir, ok := s.ResourceDir()
	assert.True(t, ok)
	assert.Equal(t, "/res", dir)
	assert.Empty(t, diags.Notices, "no fallback when configured")
}

func TestSession_NoFilerLeavesResourceDirUnresolved(t *testing.T) {
	diags := &diagnostic.Diagnostics{}
	s := New(Options{Processor: newRecorder(), Sink: diags})

	_, ok := s.ResourceDir()
	assert.False(t, ok)
	require.Len(t, diags.Notices, 1)
	assert.Contains(t, diags.Notices[0].Message, "guessing the hard way")
	assert.NotEmpty(t, diags.Warnings)

	_, ok = s.ResourceDir()
	assert.False(t, ok)
	assert.Len(t, diags.Notices, 2, "unresolved values are probed again")
}

func TestSession_ProbeFindsResourceDir(t *testing.T) {
	project := t.TempDir()
	output := filepath.Join(project, "target", "generated-sources", "annotations")
	require.NoError(t, os.MkdirAll(output, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "src", "main", "res"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "src", "main", manifest.DefaultFileName), nil, 0o644))

	diags := &diagnostic.Diagnostics{}
	s := New(Options{
		Filer:     NewDirFiler("", output),
		Processor: newRecorder(),
		Sink:      diags,
	})

	dir, ok := s.ResourceDir()
	require.True(t, ok, "diagnostics: %+v", diags)
	assert.Equal(t, filepath.Join(project, "src", "main", "res"), dir)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	assert.Empty(t, entries, "the probe file is deleted")

	require.Len(t, diags.Warnings, 1, "the unavailable source path is reported")
	assert.Contains(t, diags.Warnings[0].Message, "Failed to probe resources location")

	_, ok = s.ResourceDir()
	assert.True(t, ok)
	assert.Len(t, diags.Notices, 1, "resolved values are cached")
}

func TestSession_ProbeWithoutResDir(t *testing.T) {
	project := t.TempDir()
	output := filepath.Join(project, ".apt_generated")
	require.NoError(t, os.MkdirAll(output, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, manifest.DefaultFileName), nil, 0o644))

	diags := &diagnostic.Diagnostics{}
	s := New(Options{Filer: NewDirFiler(output, ""), Processor: newRecorder(), Sink: diags})

	_, ok := s.ResourceDir()
	assert.False(t, ok)
	require.NotEmpty(t, diags.Warnings)
	assert.Contains(t, diags.Warnings[len(diags.Warnings)-1].Message, "no res directory")
}

func TestSession_ProbeManifestNotFound(t *testing.T) {
	output := filepath.Join(t.TempDir(), "target", "generated-sources")
	require.NoError(t, os.MkdirAll(output, 0o755))

	diags := &diagnostic.Diagnostics{}
	s := New(Options{Filer: NewDirFiler(output, ""), Processor: newRecorder(), Sink: diags})

	_, ok := s.ResourceDir()
	assert.False(t, ok)
	require.NotEmpty(t, diags.Warnings)
	assert.Contains(t, diags.Warnings[len(diags.Warnings)-1].Message, "Unable to find")
}

func TestSession_AbortWhenResourceDirUnknown(t *testing.T) {
	diags := &diagnostic.Diagnostics{}
	proc := newRecorder()
	s := New(Options{Processor: proc, Sink: diags})

	first := packageWithR("example.com/a")
	second := packageWithR("example.com/b")

	err := s.ProcessRound([]*analyze.Symbol{first, second})
	require.ErrorIs(t, err, ErrResourceDirUnknown)

	require.Len(t, diags.Errors, 1)
	assert.Same(t, first, diags.Errors[0].Symbol)
	assert.Contains(t, diags.Errors[0].Message, "Supply resourceDir argument")

	assert.Empty(t, proc.calls, "no unit is processed in an aborted round")
	assert.Equal(t, []string{"example.com/a.R", "example.com/b.R"}, names(s.Pending()))
	assert.Empty(t, s.Completed())
}

func TestSession_EmptyRoundDoesNotResolve(t *testing.T) {
	diags := &diagnostic.Diagnostics{}
	s := New(Options{Processor: newRecorder(), Sink: diags})

	require.NoError(t, s.ProcessRound(nil))
	assert.Empty(t, diags.Notices)
	assert.Empty(t, diags.Errors)
}

func TestSession_CompleteMovesUnit(t *testing.T) {
	proc := newRecorder()
	s := New(Options{ResourceDir: "/res", Processor: proc})

	require.NoError(t, s.ProcessRound([]*analyze.Symbol{packageWithR("example.com/a")}))

	assert.Empty(t, s.Pending())
	assert.Equal(t, []string{"example.com/a.R"}, names(s.Completed()))
	assert.Equal(t, []string{"/res"}, proc.dirs)

	require.NoError(t, s.ProcessRound([]*analyze.Symbol{packageWithR("example.com/a")}))
	assert.Len(t, proc.calls, 1, "completed units are neither rediscovered nor reprocessed")
	assert.Empty(t, s.Pending())
}

func TestSession_PartialIsRetried(t *testing.T) {
	proc := newRecorder()
	proc.outcomes["example.com/a.R"] = []round.Outcome{round.Partial(), round.Partial()}
	diags := &diagnostic.Diagnostics{}
	s := New(Options{ResourceDir: "/res", Processor: proc, Sink: diags})

	sym := packageWithR("example.com/a")
	require.NoError(t, s.ProcessRound([]*analyze.Symbol{sym}))
	pending := s.Pending()
	require.Len(t, pending, 1)

	require.NoError(t, s.ProcessRound(nil))
	require.Len(t, s.Pending(), 1)
	assert.Same(t, pending[0], s.Pending()[0], "the same unit is retried without rediscovery")

	require.NoError(t, s.ProcessRound(nil))
	assert.Empty(t, s.Pending())
	assert.Equal(t, []string{"example.com/a.R"}, names(s.Completed()))
	assert.Len(t, proc.calls, 3)
	assert.Empty(t, diags.Errors, "partial outcomes are silent")
}

func TestSession_ErrorKeepsUnitPending(t *testing.T) {
	proc := newRecorder()
	failing := packageWithR("example.com/a")
	proc.outcomes["example.com/a.R"] = []round.Outcome{round.Failed(failing.Children[0], "layout broken")}
	diags := &diagnostic.Diagnostics{}
	s := New(Options{ResourceDir: "/res", Processor: proc, Sink: diags})

	err := s.ProcessRound([]*analyze.Symbol{failing, packageWithR("example.com/b")})
	require.NoError(t, err)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "layout broken", diags.Errors[0].Message)
	assert.Same(t, failing.Children[0], diags.Errors[0].Symbol)

	assert.Equal(t, []string{"example.com/a.R"}, names(s.Pending()))
	assert.Equal(t, []string{"example.com/b.R"}, names(s.Completed()), "siblings still complete")

	require.NoError(t, s.ProcessRound(nil))
	assert.Empty(t, s.Pending())
}

func TestSession_PanicFailsOnlyItsUnit(t *testing.T) {
	diags := &diagnostic.Diagnostics{}
	proc := round.Func(func(u *unit.Unit, _ string) round.Outcome {
		if u.ID.PkgPath == "example.com/a" {
			panic("boom")
		}
		return round.Complete()
	})
	s := New(Options{ResourceDir: "/res", Processor: proc, Sink: diags})

	require.NoError(t, s.ProcessRound([]*analyze.Symbol{packageWithR("example.com/a"), packageWithR("example.com/b")}))

	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "panicked: boom")
	assert.Equal(t, []string{"example.com/a.R"}, names(s.Pending()))
	assert.Equal(t, []string{"example.com/b.R"}, names(s.Completed()))
}

func TestSession_DiscoveryIsIdempotent(t *testing.T) {
	proc := newRecorder()
	proc.outcomes["example.com/a.R"] = []round.Outcome{round.Partial(), round.Partial()}
	s := New(Options{ResourceDir: "/res", Processor: proc})

	sym := packageWithR("example.com/a")
	require.NoError(t, s.ProcessRound([]*analyze.Symbol{sym}))
	require.NoError(t, s.ProcessRound([]*analyze.Symbol{sym}))

	assert.Len(t, s.Pending(), 1)
	assert.Equal(t, []string{"example.com/a.R", "example.com/a.R"}, proc.calls)
}

func TestSession_AmbiguousContainer(t *testing.T) {
	diags := &diagnostic.Diagnostics{}
	sym := packageWithR("example.com/a")
	sym.Children = append(sym.Children, &analyze.Symbol{
		Kind: analyze.SymbolClass,
		Name: "Holder",
		ID:   sym.ID.Nested("Holder"),
		Children: []*analyze.Symbol{
			{Kind: analyze.SymbolClass, Name: "R", ID: sym.ID.Nested("Holder.R")},
		},
	})

	s := New(Options{ResourceDir: "/res", Processor: newRecorder(), Sink: diags})
	require.NoError(t, s.ProcessRound([]*analyze.Symbol{sym}))

	require.Len(t, diags.Errors, 1)
	assert.Same(t, sym, diags.Errors[0].Symbol)
	assert.Contains(t, diags.Errors[0].Message, "candidate container types")
	assert.Empty(t, s.Pending())
	assert.Empty(t, s.Completed())
}

func TestSession_CustomTarget(t *testing.T) {
	sym := packageWithR("example.com/a")
	sym.Children[0].Name = "Resources"
	sym.Children[0].ID = sym.ID.Nested("Resources")

	s := New(Options{ResourceDir: "/res", Processor: newRecorder(), Target: "Resources"})
	require.NoError(t, s.ProcessRound([]*analyze.Symbol{sym}))
	assert.Equal(t, []string{"example.com/a.Resources"}, names(s.Completed()))
}

func TestSession_PartitionAcrossRounds(t *testing.T) {
	proc := newRecorder()
	proc.outcomes["example.com/a.R"] = []round.Outcome{round.Partial(), round.Failed(nil, "x")}
	proc.outcomes["example.com/b.R"] = []round.Outcome{round.Failed(nil, "y")}
	s := New(Options{ResourceDir: "/res", Processor: proc})

	syms := []*analyze.Symbol{packageWithR("example.com/a"), packageWithR("example.com/b"), packageWithR("example.com/c")}
	seenCompleted := make(map[string]bool)

	for i := range 4 {
		var annotated []*analyze.Symbol
		if i < len(syms) {
			annotated = syms[:i+1]
		}
		require.NoError(t, s.ProcessRound(annotated))

		pending := make(map[string]bool)
		for _, u := range s.Pending() {
			pending[u.Name()] = true
			assert.False(t, seenCompleted[u.Name()], "%s returned to pending", u.Name())
		}
		for _, u := range s.Completed() {
			assert.False(t, pending[u.Name()], "%s is both pending and completed", u.Name())
			seenCompleted[u.Name()] = true
		}
	}

	assert.Len(t, s.Completed(), 3)
}

func TestErrResourceDirUnknown(t *testing.T) {
	wrapped := errors.Join(errors.New("round 1"), ErrResourceDirUnknown)
	assert.ErrorIs(t, wrapped, ErrResourceDirUnknown)
}

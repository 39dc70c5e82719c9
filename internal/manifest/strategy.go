package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultFileName is the manifest searched for when no other name is configured.
const DefaultFileName = "AndroidManifest.xml"

// Strategy proposes directories that may hold the manifest.
type Strategy interface {
	// Name identifies the strategy in logs and results.
	Name() string
	// Applies reports whether the strategy understands the source root.
	Applies(sourceRoot string) bool
	// Candidates returns candidate directories in priority order.
	Candidates(sourceRoot string) []string
}

// Searcher is implemented by strategies that search the filesystem themselves
// instead of proposing candidate directories.
type Searcher interface {
	// Search returns the manifest path, "" when nothing was found, or an
	// error when the filesystem could not be read.
	Search(sourceRoot, fileName string) (string, error)
}

// PatternStrategy matches a build-tool source root and derives candidate
// locations from the matched groups. The first group is the anchor that
// every location is resolved against.
type PatternStrategy struct {
	name      string
	pattern   *regexp.Regexp
	locations func(groups []string) []string
}

// NewPatternStrategy creates a strategy from a pattern whose first group
// captures the anchor directory.
func NewPatternStrategy(name string, pattern *regexp.Regexp, locations func(groups []string) []string) *PatternStrategy {
	return &PatternStrategy{
		name:      name,
		pattern:   pattern,
		locations: locations,
	}
}

var (
	gradleGenFolder  = regexp.MustCompile(`^(.*?)build[\\/]generated[\\/]source[\\/]apt(.*)$`)
	mavenGenFolder   = regexp.MustCompile(`^(.*?)target[\\/]generated-sources.*$`)
	eclipseGenFolder = regexp.MustCompile(`^(.*?)\.apt_generated.*$`)
)

// Gradle matches build/generated/source/apt<variant> and looks in the merged
// manifest and bundle directories of the same variant.
func Gradle() *PatternStrategy {
	return NewPatternStrategy("Gradle", gradleGenFolder, func(groups []string) []string {
		variant := strings.ReplaceAll(groups[2], `\`, "/")

		return []string{
			"build/intermediates/manifests/full" + variant,
			"build/bundles" + variant,
		}
	})
}

// Maven matches target/generated-sources.
func Maven() *PatternStrategy {
	return NewPatternStrategy("Maven", mavenGenFolder, func([]string) []string {
		return []string{"target", "src/main", ""}
	})
}

// Eclipse matches .apt_generated and looks in the project directory.
func Eclipse() *PatternStrategy {
	return NewPatternStrategy("Eclipse", eclipseGenFolder, func([]string) []string {
		return []string{""}
	})
}

// Name implements Strategy.
func (s *PatternStrategy) Name() string {
	return s.name
}

// Applies implements Strategy. The pattern must match the whole path.
func (s *PatternStrategy) Applies(sourceRoot string) bool {
	return s.pattern.MatchString(sourceRoot)
}

// Anchor returns the directory captured by the first group.
func (s *PatternStrategy) Anchor(sourceRoot string) (string, bool) {
	groups := s.pattern.FindStringSubmatch(sourceRoot)
	if groups == nil {
		return "", false
	}

	return groups[1], true
}

// Locations returns the relative location templates for the source root.
func (s *PatternStrategy) Locations(sourceRoot string) []string {
	groups := s.pattern.FindStringSubmatch(sourceRoot)
	if groups == nil {
		return nil
	}

	return s.locations(groups)
}

// Candidates implements Strategy.
func (s *PatternStrategy) Candidates(sourceRoot string) []string {
	anchor, ok := s.Anchor(sourceRoot)
	if !ok {
		return nil
	}

	locations := s.Locations(sourceRoot)
	out := make([]string, 0, len(locations))
	for _, loc := range locations {
		out = append(out, filepath.Join(anchor, filepath.FromSlash(loc)))
	}

	return out
}

// isFile reports whether path exists and is not a directory.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

package manifest

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultMaxDepth   = 4
	defaultMaxParents = 10
)

// Blind searches the filesystem around the source root. It always applies
// and is meant to be the last strategy of a chain.
//
// Starting at the source root it checks for the file directly, then searches
// up to maxDepth levels below, then moves to the parent and repeats. At most
// maxParents directories are used as search roots.
type Blind struct {
	maxDepth   int
	maxParents int
}

// BlindOption configures a Blind strategy.
type BlindOption func(*Blind)

// WithMaxDepth bounds how deep below each search root the file may sit.
func WithMaxDepth(depth int) BlindOption {
	return func(b *Blind) {
		b.maxDepth = depth
	}
}

// WithMaxParents bounds how many directories, the source root included,
// are used as search roots.
func WithMaxParents(n int) BlindOption {
	return func(b *Blind) {
		b.maxParents = n
	}
}

// NewBlind creates a blind search strategy.
func NewBlind(opts ...BlindOption) *Blind {
	b := &Blind{
		maxDepth:   defaultMaxDepth,
		maxParents: defaultMaxParents,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name implements Strategy.
func (b *Blind) Name() string {
	return "Blind"
}

// Applies implements Strategy.
func (b *Blind) Applies(string) bool {
	return true
}

// Candidates implements Strategy. The blind strategy has no fixed
// candidates; see Search.
func (b *Blind) Candidates(string) []string {
	return nil
}

// Search implements Searcher. Any filesystem access failure ends the whole
// search and is returned so the caller can log it.
func (b *Blind) Search(sourceRoot, fileName string) (string, error) {
	root, err := filepath.Abs(sourceRoot)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", sourceRoot, err)
	}

	// finished search roots; a parent search never re-enters them
	done := make(map[string]struct{})

	for range b.maxParents {
		if direct := filepath.Join(root, fileName); isFile(direct) {
			return direct, nil
		}

		found, err := b.searchInside(root, fileName, done)
		if err != nil {
			return "", err
		}

		if found != "" {
			return found, nil
		}

		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", root, err)
		}
		done[resolved] = struct{}{}

		parent := filepath.Dir(root)
		if parent == root {
			break
		}
		root = parent
	}

	return "", nil
}

type dirEntry struct {
	path  string
	depth int
}

// searchInside walks dir breadth-first, so the shallowest match wins and
// every directory is first reached with its largest remaining depth budget.
// Directories are keyed by their resolved path; within one walk a symlink
// leading back to a visited directory is not entered again. Directories in
// done were searched as roots of an earlier walk and are skipped.
func (b *Blind) searchInside(dir, fileName string, done map[string]struct{}) (string, error) {
	queue := []dirEntry{{path: dir}}
	visited := maps.Clone(done)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		resolved, err := filepath.EvalSymlinks(current.path)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", current.path, err)
		}

		if _, seen := visited[resolved]; seen {
			continue
		}
		visited[resolved] = struct{}{}

		entries, err := os.ReadDir(current.path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", current.path, err)
		}

		for _, entry := range entries {
			path := filepath.Join(current.path, entry.Name())

			if isDirEntry(path, entry) {
				if current.depth+1 < b.maxDepth {
					queue = append(queue, dirEntry{path: path, depth: current.depth + 1})
				}

				continue
			}

			if strings.EqualFold(entry.Name(), fileName) {
				return path, nil
			}
		}
	}

	return "", nil
}

// isDirEntry reports whether the entry is a directory, following symlinks.
// A dangling symlink counts as a file.
func isDirEntry(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}

	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

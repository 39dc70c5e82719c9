package manifest

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Result is the outcome of a Chain lookup.
type Result struct {
	// Path is the manifest file, empty when nothing was found.
	Path string
	// Strategy names the strategy that was used.
	Strategy string
}

// Found reports whether a manifest was located.
func (r Result) Found() bool {
	return r.Path != ""
}

// Chain tries strategies in priority order.
type Chain struct {
	strategies []Strategy
	fileName   string
	logger     *log.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithFileName overrides the manifest file name.
func WithFileName(name string) Option {
	return func(c *Chain) {
		if name != "" {
			c.fileName = name
		}
	}
}

// WithLogger sets the logger used for strategy traces and access failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStrategies replaces the strategy list.
func WithStrategies(strategies ...Strategy) Option {
	return func(c *Chain) {
		c.strategies = strategies
	}
}

// NewChain creates the default chain: Gradle, Maven, Eclipse, then Blind.
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		strategies: []Strategy{Gradle(), Maven(), Eclipse(), NewBlind()},
		fileName:   DefaultFileName,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FileName returns the manifest file name searched for.
func (c *Chain) FileName() string {
	return c.fileName
}

// Locate finds the manifest for the source root using the first strategy
// that applies. Later strategies are not consulted even when it finds nothing.
func (c *Chain) Locate(sourceRoot string) Result {
	for _, s := range c.strategies {
		if !s.Applies(sourceRoot) {
			continue
		}

		c.logger.Debug("manifest strategy applies", "strategy", s.Name(), "source_root", sourceRoot)

		return Result{
			Path:     c.find(s, sourceRoot),
			Strategy: s.Name(),
		}
	}

	return Result{}
}

func (c *Chain) find(s Strategy, sourceRoot string) string {
	if searcher, ok := s.(Searcher); ok {
		path, err := searcher.Search(sourceRoot, c.fileName)
		if err != nil {
			c.logger.Warn("manifest search aborted", "strategy", s.Name(), "err", err)
			return ""
		}

		return path
	}

	for _, dir := range s.Candidates(sourceRoot) {
		path := filepath.Join(dir, c.fileName)
		if isFile(path) {
			return path
		}

		c.logger.Debug("manifest candidate missing", "strategy", s.Name(), "path", path)
	}

	return ""
}

package session

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"inflater-generator/internal/common"
)

// Location names a root the Filer can create resources under.
type Location int

const (
	// LocationSourcePath is the directory holding the sources being processed.
	LocationSourcePath Location = iota
	// LocationSourceOutput is the directory generated sources are written to.
	LocationSourceOutput
)

// String returns a human-readable location name.
func (l Location) String() string {
	switch l {
	case LocationSourcePath:
		return "source path"
	case LocationSourceOutput:
		return "source output"
	default:
		return common.UnknownStr
	}
}

// ErrLocationUnavailable is returned when a Filer has no root for a location.
var ErrLocationUnavailable = errors.New("location unavailable")

// Filer creates and deletes transient resources under the project's source tree.
type Filer interface {
	// CreateResource creates an empty resource and returns its path or file: URI.
	CreateResource(loc Location, name string) (string, error)
	// Delete removes a resource returned by CreateResource.
	Delete(resource string) error
}

// DirFiler is a Filer backed by plain directories.
type DirFiler struct {
	roots map[Location]string
}

// NewDirFiler creates a DirFiler. Empty roots leave the location unavailable.
func NewDirFiler(sourcePath, sourceOutput string) *DirFiler {
	roots := make(map[Location]string, 2)
	if sourcePath != "" {
		roots[LocationSourcePath] = sourcePath
	}
	if sourceOutput != "" {
		roots[LocationSourceOutput] = sourceOutput
	}

	return &DirFiler{roots: roots}
}

// CreateResource implements Filer.
func (f *DirFiler) CreateResource(loc Location, name string) (string, error) {
	root, ok := f.roots[loc]
	if !ok {
		return "", fmt.Errorf("%s: %w", loc, ErrLocationUnavailable)
	}

	path, err := filepath.Abs(filepath.Join(root, name))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}

// Delete implements Filer.
func (f *DirFiler) Delete(resource string) error {
	path, err := resourcePath(resource)
	if err != nil {
		return err
	}

	return os.Remove(path)
}

// resourcePath converts a Filer resource into a filesystem path. Plain
// paths are returned as is; "file:" URIs in any of the forms
// "file:/a", "file:///a" or "file://host/a" are parsed.
func resourcePath(resource string) (string, error) {
	rest, ok := strings.CutPrefix(resource, "file:")
	if !ok {
		return resource, nil
	}

	if !strings.HasPrefix(rest, "//") {
		rest = "//" + rest
	}

	u, err := url.Parse("file:" + rest)
	if err != nil {
		return "", fmt.Errorf("unable to resolve filesystem path of %s: %w", resource, err)
	}

	if u.Path == "" {
		return "", fmt.Errorf("unable to resolve filesystem path of %s: empty path", resource)
	}

	return filepath.FromSlash(u.Path), nil
}

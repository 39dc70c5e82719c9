package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// probingRoots are tried in order when guessing the source directory.
var probingRoots = []Location{LocationSourcePath, LocationSourceOutput}

// guessResourceDir finds the manifest and expects the resource directory
// next to it.
func (s *Session) guessResourceDir() (string, bool) {
	manifestPath, ok := s.guessManifestPath()
	if !ok {
		return "", false
	}

	res := filepath.Join(filepath.Dir(manifestPath), resourceDirName)
	if info, err := os.Stat(res); err != nil || !info.IsDir() {
		s.warn(fmt.Sprintf("Found %s, but no %s directory next to it", manifestPath, resourceDirName))
		return "", false
	}

	s.log("Using resource directory " + res)

	return res, true
}

func (s *Session) guessManifestPath() (string, bool) {
	dir, ok := s.guessSourcesDir()
	if !ok {
		return "", false
	}

	s.log(fmt.Sprintf("Assuming, that %s is below %s in filesystem", dir, s.locator.FileName()))

	res := s.locator.Locate(dir)
	if !res.Found() {
		s.warn(fmt.Sprintf("Unable to find %s starting from %s", s.locator.FileName(), dir))
		return "", false
	}

	s.log(fmt.Sprintf("%s strategy found %s", res.Strategy, res.Path))

	return res.Path, true
}

// guessSourcesDir creates a uniquely named probe resource, reads back where
// it landed and deletes it again.
func (s *Session) guessSourcesDir() (string, bool) {
	if s.filer == nil {
		s.warn("No filer available, unable to probe source locations")
		return "", false
	}

	name := "dummy" + uuid.NewString()

	var probe string
	for _, loc := range probingRoots {
		created, err := s.filer.CreateResource(loc, name)
		if err != nil {
			s.warn("Failed to probe resources location: " + err.Error())
			continue
		}

		probe = created
		break
	}

	if probe == "" {
		return "", false
	}

	defer func() {
		if err := s.filer.Delete(probe); err != nil {
			s.warn(fmt.Sprintf("Failed to delete temporary dummy file %s: %v", name, err))
		}
	}()

	path, err := resourcePath(probe)
	if err != nil {
		s.warn("Unable to resolve filesystem path to dummy file: " + err.Error())
		return "", false
	}

	return filepath.Dir(path), true
}

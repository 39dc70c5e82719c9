package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Layout is one layout resource name and the files that define it.
type Layout struct {
	// Name is the file name without extension (e.g., "activity_main").
	Name string
	// Files are resource-relative paths, one per qualifier directory
	// (e.g., "layout/activity_main.xml", "layout-land/activity_main.xml").
	Files []string
}

// ScanLayouts collects the layouts under resDir. Only directories named
// "layout" or "layout-<qualifier>" are read, and only .xml files count.
// The result is sorted by name.
func ScanLayouts(resDir string) ([]Layout, error) {
	entries, err := os.ReadDir(resDir)
	if err != nil {
		return nil, fmt.Errorf("reading resource directory: %w", err)
	}

	byName := make(map[string]*Layout)

	for _, entry := range entries {
		if !entry.IsDir() || !isLayoutDir(entry.Name()) {
			continue
		}

		files, err := os.ReadDir(filepath.Join(resDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		for _, f := range files {
			if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".xml") {
				continue
			}

			name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			l, ok := byName[name]
			if !ok {
				l = &Layout{Name: name}
				byName[name] = l
			}
			l.Files = append(l.Files, entry.Name()+"/"+f.Name())
		}
	}

	out := make([]Layout, 0, len(byName))
	for _, l := range byName {
		slices.Sort(l.Files)
		out = append(out, *l)
	}
	slices.SortFunc(out, func(a, b Layout) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out, nil
}

func isLayoutDir(name string) bool {
	return name == "layout" || strings.HasPrefix(name, "layout-")
}

// Identifier converts a resource name into an exported Go identifier:
// "activity_main" becomes "ActivityMain".
func Identifier(name string) string {
	var b strings.Builder

	upper := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			upper = true
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

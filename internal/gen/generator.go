package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"inflater-generator/internal/unit"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the generated file inside the unit's package.
	Filename string
	// GenerateComments enables generation of doc comments.
	GenerateComments bool
	// DebugDir receives unformatted output when formatting fails. Empty disables it.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         "inflater_gen.go",
		GenerateComments: true,
	}
}

// Generator renders inflater sources.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultGeneratorConfig().Filename
	}

	return &Generator{config: config}
}

// Filename returns the name of the generated file.
func (g *Generator) Filename() string {
	return g.config.Filename
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "inflater_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// templateData holds all data needed for the inflater template.
type templateData struct {
	PackageName      string
	Container        string
	GenerateComments bool
	Layouts          []layoutData
}

type layoutData struct {
	Const string
	Name  string
	Files []string
}

var inflaterTemplate = template.Must(template.New("inflater").Parse(`// Code generated by inflater-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .GenerateComments}}// Layout names declared in the resource directory for {{.Container}}.
{{end}}const (
{{range .Layouts}}	{{.Const}} = {{printf "%q" .Name}}
{{end}})

{{if .GenerateComments}}// InflaterLayouts maps each layout name to its resource-relative files.
{{end}}var InflaterLayouts = map[string][]string{
{{range .Layouts}}	{{.Const}}: { {{range .Files}}{{printf "%q" .}}, {{end}} },
{{end}}}

{{if .GenerateComments}}// InflaterLayout returns the files defining the named layout.
{{end}}func InflaterLayout(name string) ([]string, bool) {
	files, ok := InflaterLayouts[name]
	return files, ok
}
`))

// Generate renders the inflater source for u from the given layouts.
func (g *Generator) Generate(u *unit.Unit, layouts []Layout) (*GeneratedFile, error) {
	if u.PackageName() == "" {
		return nil, fmt.Errorf("unit %s has no package name", u.Name())
	}

	data := &templateData{
		PackageName:      u.PackageName(),
		Container:        u.ID.Name,
		GenerateComments: g.config.GenerateComments,
	}

	seen := make(map[string]string, len(layouts))
	for _, l := range layouts {
		ident := "Layout" + Identifier(l.Name)
		if prev, ok := seen[ident]; ok {
			return nil, fmt.Errorf("layouts %q and %q both map to %s", prev, l.Name, ident)
		}
		seen[ident] = l.Name

		data.Layouts = append(data.Layouts, layoutData{
			Const: ident,
			Name:  l.Name,
			Files: l.Files,
		})
	}

	var buf bytes.Buffer
	if err := inflaterTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort sidecar to aid debugging; never fatal on its own.
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

package round

import (
	"fmt"

	"inflater-generator/internal/gen"
	"inflater-generator/internal/unit"
)

// Processor attempts to finish one unit. It is invoked again for units
// left partial or failed, so implementations must be safe to re-run.
type Processor interface {
	Process(u *unit.Unit, resourceDir string) Outcome
}

// Func adapts a function to the Processor interface.
type Func func(u *unit.Unit, resourceDir string) Outcome

// Process implements Processor.
func (f Func) Process(u *unit.Unit, resourceDir string) Outcome {
	return f(u, resourceDir)
}

// EmitProcessor generates the inflater source into the unit's package.
type EmitProcessor struct {
	generator *gen.Generator
}

// NewEmitProcessor creates an EmitProcessor using generator.
func NewEmitProcessor(generator *gen.Generator) *EmitProcessor {
	return &EmitProcessor{generator: generator}
}

// Process implements Processor.
//
// The unit is partial while the resource directory declares no layouts,
// and complete once the generated file is written. Rewriting the file on
// a later round produces identical content.
func (p *EmitProcessor) Process(u *unit.Unit, resourceDir string) Outcome {
	if resourceDir == "" {
		return Failed(u.Symbol, "resource directory unknown, cannot generate inflater for "+u.Name())
	}

	layouts, err := gen.ScanLayouts(resourceDir)
	if err != nil {
		return Failed(u.Symbol, fmt.Sprintf("resource directory %s is not accessible: %v", resourceDir, err))
	}

	if len(layouts) == 0 {
		return Partial()
	}

	if u.Dir() == "" {
		return Failed(u.Symbol, "no source directory known for package "+u.ID.PkgPath)
	}

	file, err := p.generator.Generate(u, layouts)
	if err != nil {
		return Failed(u.Symbol, fmt.Sprintf("generating inflater for %s: %v", u.Name(), err))
	}

	if err := gen.WriteFiles([]gen.GeneratedFile{*file}, u.Dir()); err != nil {
		return Failed(u.Symbol, fmt.Sprintf("writing inflater for %s: %v", u.Name(), err))
	}

	return Complete()
}

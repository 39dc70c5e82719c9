// Package main provides the CLI entrypoint for inflater-generator.
//
// inflater-generator is a round-based Go codegen tool that:
//   - Finds packages marked with //inflater:create
//   - Locates the generated container type R in each of them
//   - Finds the Android resource directory, probing for AndroidManifest.xml if needed
//   - Generates layout inflater lookups next to R, retrying until the layouts exist
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

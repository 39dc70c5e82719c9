package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"inflater-generator/internal/analyze"
	"inflater-generator/internal/diagnostic"
	"inflater-generator/internal/gen"
	"inflater-generator/internal/host"
	"inflater-generator/internal/manifest"
	"inflater-generator/internal/round"
	"inflater-generator/internal/session"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [patterns...]",
		Short: "Run the generation rounds over the matching packages",
		Example: `  inflater-generator run
  inflater-generator run ./app/... --resource-dir app/src/main/res`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}
}

func runGenerate(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, _, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Patterns = args
	}

	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", opts.dir, err)
	}
	cfg.ResolvePaths(dir)

	genCfg := gen.DefaultGeneratorConfig()
	genCfg.DebugDir = cfg.DebugDir

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	diags := &diagnostic.Diagnostics{}
	sink := diagnostic.Tee{diagnostic.NewLogSink(logger), diags}

	s := session.New(session.Options{
		ResourceDir: cfg.ResourceDir,
		Filer:       session.NewDirFiler(dir, cfg.SourceOutput),
		Locator: manifest.NewChain(
			manifest.WithFileName(cfg.Manifest),
			manifest.WithLogger(logger.WithPrefix("manifest")),
		),
		Processor: round.NewEmitProcessor(gen.NewGenerator(genCfg)),
		Sink:      sink,
		Target:    cfg.Target,
	})

	driver := host.New(analyze.NewLoader(dir), s, host.Options{
		Patterns:  cfg.Patterns,
		MaxRounds: cfg.MaxRounds,
		Sink:      sink,
	})

	report, err := driver.Run(cmd.Context())

	fmt.Fprintf(cmd.OutOrStdout(), "%d rounds: %d completed, %d pending\n",
		report.Rounds, len(report.Completed), len(report.Pending))
	for _, name := range report.Completed {
		fmt.Fprintln(cmd.OutOrStdout(), "  generated", name)
	}

	if diags.HasErrors() {
		return errors.Join(err, fmt.Errorf("generation reported errors: %w", diags.Error()))
	}

	return err
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inflater-generator/internal/manifest"
)

func newLocateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <source-root>",
		Short: "Find the manifest for a generated-sources directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			chain := manifest.NewChain(
				manifest.WithFileName(cfg.Manifest),
				manifest.WithLogger(logger.WithPrefix("manifest")),
			)

			res := chain.Locate(args[0])
			if !res.Found() {
				if res.Strategy == "" {
					return fmt.Errorf("no strategy applies to %s", args[0])
				}
				return fmt.Errorf("%s strategy found no %s for %s", res.Strategy, cfg.Manifest, args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Path, res.Strategy)

			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect inflater-generator configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			out, err := cfg.YAML()
			if err != nil {
				return err
			}

			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
			}
			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	})

	return cfgCmd
}

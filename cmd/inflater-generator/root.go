package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"inflater-generator/internal/config"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configFile string
	dir        string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "inflater-generator",
		Short: "Generate layout inflater lookups for Android resource containers",
		Long: `inflater-generator finds packages marked with //inflater:create, locates the
generated container type R in each of them and writes inflater_gen.go next to it.

The Android resource directory is taken from --resource-dir, INFLATER_RESOURCE_DIR or
.inflater.yaml. When none is set, the tool probes the source tree for AndroidManifest.xml
and uses the res directory next to it.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./"+config.FileName+")")
	flags.StringVarP(&opts.dir, "dir", "C", ".", "working directory of the Go module")
	config.RegisterFlags(flags)

	root.AddCommand(
		newRunCommand(opts),
		newLocateCommand(opts),
		newConfigCommand(opts),
	)

	return root
}

// loadConfig resolves the effective configuration for cmd.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	return config.Load(config.LoadOptions{
		ConfigFilePath: o.configFile,
		Dir:            o.dir,
		Flags:          cmd.Flags(),
	})
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{Prefix: "inflater"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}

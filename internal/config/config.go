package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"inflater-generator/internal/manifest"
	"inflater-generator/internal/scan"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "INFLATER"
	// FileName is the config file looked up in the working directory.
	FileName = ".inflater.yaml"
)

// Keys of the configuration values.
const (
	KeyResourceDir  = "resource_dir"
	KeyPatterns     = "patterns"
	KeyMaxRounds    = "max_rounds"
	KeySourceOutput = "source_output"
	KeyTarget       = "target"
	KeyManifest     = "manifest"
	KeyVerbose      = "verbose"
	KeyDebugDir     = "debug_dir"
)

// Config holds the effective generator settings.
type Config struct {
	// ResourceDir is the Android resource directory. Empty means probe for it.
	ResourceDir string `mapstructure:"resource_dir" yaml:"resource_dir"`
	// Patterns are the package patterns loaded every round.
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
	// MaxRounds bounds the number of rounds the host driver runs.
	MaxRounds int `mapstructure:"max_rounds" yaml:"max_rounds"`
	// SourceOutput is the generated-sources directory used when probing.
	SourceOutput string `mapstructure:"source_output" yaml:"source_output"`
	// Target is the simple name of the generated container type.
	Target string `mapstructure:"target" yaml:"target"`
	// Manifest is the file name the manifest chain searches for.
	Manifest string `mapstructure:"manifest" yaml:"manifest"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`
	// DebugDir receives unformatted generator output when formatting fails.
	DebugDir string `mapstructure:"debug_dir" yaml:"debug_dir"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Patterns:  []string{"./..."},
		MaxRounds: 5,
		Target:    scan.DefaultTarget,
		Manifest:  manifest.DefaultFileName,
	}
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// ConfigFilePath is an explicit config file. It must exist.
	ConfigFilePath string
	// Dir is searched for FileName when ConfigFilePath is empty.
	// Defaults to the working directory.
	Dir string
	// Flags, when set, are bound over every other source.
	// Only flags registered by RegisterFlags are consulted.
	Flags *pflag.FlagSet
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"resource-dir":  KeyResourceDir,
	"max-rounds":    KeyMaxRounds,
	"source-output": KeySourceOutput,
	"target":        KeyTarget,
	"manifest":      KeyManifest,
	"verbose":       KeyVerbose,
	"debug-dir":     KeyDebugDir,
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	defaults := DefaultConfig()

	fs.String("resource-dir", "", "full path of the Android resource directory")
	fs.Int("max-rounds", defaults.MaxRounds, "maximum number of processing rounds")
	fs.String("source-output", "", "generated-sources directory used to probe for the manifest")
	fs.String("target", defaults.Target, "simple name of the generated container type")
	fs.String("manifest", defaults.Manifest, "manifest file name")
	fs.BoolP("verbose", "v", false, "enable debug logging")
	fs.String("debug-dir", "", "directory receiving unformatted output when formatting fails")
}

// Load builds the effective configuration and returns it together with the
// config file that was read, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyResourceDir, defaults.ResourceDir)
	v.SetDefault(KeyPatterns, defaults.Patterns)
	v.SetDefault(KeyMaxRounds, defaults.MaxRounds)
	v.SetDefault(KeySourceOutput, defaults.SourceOutput)
	v.SetDefault(KeyTarget, defaults.Target)
	v.SetDefault(KeyManifest, defaults.Manifest)
	v.SetDefault(KeyVerbose, defaults.Verbose)
	v.SetDefault(KeyDebugDir, defaults.DebugDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path, err := configFile(opts)
	if err != nil {
		return nil, "", err
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, "", fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, path, nil
}

func configFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return opts.ConfigFilePath, nil
	}

	local := filepath.Join(opts.Dir, FileName)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	return "", nil
}

// ResolvePaths makes the relative directory settings relative to dir.
func (c *Config) ResolvePaths(dir string) {
	c.ResourceDir = resolvePath(dir, c.ResourceDir)
	c.SourceOutput = resolvePath(dir, c.SourceOutput)
	c.DebugDir = resolvePath(dir, c.DebugDir)
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Patterns) == 0 {
		errs = append(errs, errors.New("patterns: at least one package pattern is required"))
	}
	if c.MaxRounds < 1 {
		errs = append(errs, fmt.Errorf("max_rounds: must be positive, got %d", c.MaxRounds))
	}
	if !token.IsIdentifier(c.Target) {
		errs = append(errs, fmt.Errorf("target: %q is not a Go identifier", c.Target))
	}
	if c.Manifest == "" || strings.ContainsAny(c.Manifest, `/\`) {
		errs = append(errs, fmt.Errorf("manifest: %q is not a file name", c.Manifest))
	}

	return errors.Join(errs...)
}

// YAML renders the configuration in config file form.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	return out, nil
}

// Package config loads the settings of the command line tool.
//
// Settings come, from highest to lowest priority, from command line flags,
// CMPBY_* environment variables, a .cmpby.yaml file and the generator
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/gen"
)

const (
	// FileName is the name of the config file looked up in the working
	// directory, without extension.
	FileName = ".cmpby"
	// EnvPrefix prefixes the environment variables, e.g. CMPBY_HASH_MARKER.
	EnvPrefix = "CMPBY"
)

// Keys of the settings, as written in the config file.
const (
	KeyCompareMarker = "compare_marker"
	KeyHashMarker    = "hash_marker"
	KeySentinel      = "sentinel"
	KeyFileSuffix    = "file_suffix"
	KeyRuntimeImport = "runtime_import"
	KeyComments      = "comments"
	KeyOutputDir     = "output_dir"
	KeyManifest      = "manifest"
	KeyLogLevel      = "log_level"
	KeyJobs          = "jobs"
)

// Config holds the settings of one run.
type Config struct {
	CompareMarker string `mapstructure:"compare_marker"`
	HashMarker    string `mapstructure:"hash_marker"`
	Sentinel      string `mapstructure:"sentinel"`
	FileSuffix    string `mapstructure:"file_suffix"`
	RuntimeImport string `mapstructure:"runtime_import"`
	Comments      bool   `mapstructure:"comments"`
	// OutputDir overrides the package directory of every generated file.
	OutputDir string `mapstructure:"output_dir"`
	// Manifest is a YAML definition file read in addition to packages.
	Manifest string `mapstructure:"manifest"`
	LogLevel string `mapstructure:"log_level"`
	// Jobs bounds the packages generated at once. Zero means no bound.
	Jobs int `mapstructure:"jobs"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	g := gen.DefaultGeneratorConfig()

	return &Config{
		CompareMarker: g.CompareMarker,
		HashMarker:    g.HashMarker,
		Sentinel:      g.Sentinel,
		FileSuffix:    g.FileSuffix,
		RuntimeImport: g.RuntimeImport,
		Comments:      g.GenerateComments,
		LogLevel:      log.InfoLevel.String(),
	}
}

// LoadOptions selects where settings are read from.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set, and must exist.
	ConfigFilePath string
	// Dir is searched for .cmpby.yaml when no path is given. Empty means
	// the working directory.
	Dir string
	// Flags are bound by their names with dashes in place of
	// underscores, e.g. --hash-marker. Unknown names are skipped.
	Flags *pflag.FlagSet
}

// Load reads the settings. It returns the config file used, or "" when
// none was found.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyCompareMarker, defaults.CompareMarker)
	v.SetDefault(KeyHashMarker, defaults.HashMarker)
	v.SetDefault(KeySentinel, defaults.Sentinel)
	v.SetDefault(KeyFileSuffix, defaults.FileSuffix)
	v.SetDefault(KeyRuntimeImport, defaults.RuntimeImport)
	v.SetDefault(KeyComments, defaults.Comments)
	v.SetDefault(KeyOutputDir, defaults.OutputDir)
	v.SetDefault(KeyManifest, defaults.Manifest)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyJobs, defaults.Jobs)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for _, key := range v.AllKeys() {
			if f := opts.Flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	resolvedPath, err := readConfigFile(v, opts)
	if err != nil {
		return nil, "", err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, resolvedPath, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}

		v.SetConfigFile(opts.ConfigFilePath)

		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", opts.ConfigFilePath, err)
		}

		return opts.ConfigFilePath, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}

		return "", fmt.Errorf("failed to read config file: %w", err)
	}

	return v.ConfigFileUsed(), nil
}

// Validate checks the settings that would produce uncompilable output.
func (c *Config) Validate() error {
	var errs []error

	if c.CompareMarker == "" || c.HashMarker == "" {
		errs = append(errs, errors.New("markers must not be empty"))
	}

	if c.CompareMarker == c.HashMarker {
		errs = append(errs, fmt.Errorf("compare and hash markers are both %q", c.CompareMarker))
	}

	if !strings.HasSuffix(c.FileSuffix, ".go") {
		errs = append(errs, fmt.Errorf("file suffix %q does not end in .go", c.FileSuffix))
	}

	if c.RuntimeImport == "" {
		errs = append(errs, errors.New("runtime import must not be empty"))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}

	return errors.Join(errs...)
}

// Level is the parsed log level. Validate has rejected unknown names.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return level
}

// Generator returns the generator settings.
func (c *Config) Generator() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		CompareMarker:    c.CompareMarker,
		HashMarker:       c.HashMarker,
		Sentinel:         c.Sentinel,
		FileSuffix:       c.FileSuffix,
		RuntimeImport:    c.RuntimeImport,
		OutputDir:        c.OutputDir,
		GenerateComments: c.Comments,
	}
}

// Analyzer returns the source loader settings.
func (c *Config) Analyzer(dir string) analyze.Config {
	return analyze.Config{
		CompareMarker:   c.CompareMarker,
		HashMarker:      c.HashMarker,
		GeneratedSuffix: c.FileSuffix,
		Dir:             dir,
	}
}

// ManifestPath resolves the manifest against dir when it is relative.
func (c *Config) ManifestPath(dir string) string {
	if c.Manifest == "" || filepath.IsAbs(c.Manifest) || dir == "" {
		return c.Manifest
	}

	return filepath.Join(dir, c.Manifest)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}

	return err == nil && !info.IsDir()
}

package dncheck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dnlab/dncheck/internal/formula"
	tt "github.com/dnlab/dncheck/internal/types"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = ".dncheck.yaml"

// Config represents the overall configuration: the formula depth
// limit, the file extensions treated as proofs, per-rule settings, and
// the verdict cache. Environment variables override file values.
type Config struct {
	Name       string                   `yaml:"name"`
	MaxDepth   int                      `yaml:"max-depth" env:"DNCHECK_MAX_DEPTH"`
	Extensions []string                 `yaml:"extensions" env:"DNCHECK_EXTENSIONS"`
	Rules      map[string]tt.ConfigRule `yaml:"rules"`
	Cache      CacheConfig              `yaml:"cache"`
}

// CacheConfig controls the on-disk verdict cache.
type CacheConfig struct {
	Enabled bool        `yaml:"enabled" env:"DNCHECK_CACHE"`
	Dir     string      `yaml:"dir" env:"DNCHECK_CACHE_DIR"`
	MaxAge  tt.Duration `yaml:"max-age" env:"DNCHECK_CACHE_MAX_AGE"`
}

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Name:       "dncheck",
		MaxDepth:   formula.DefaultMaxDepth,
		Extensions: []string{".dn"},
		Rules:      map[string]tt.ConfigRule{},
		Cache: CacheConfig{
			Enabled: false,
			Dir:     ".dncheck-cache",
			MaxAge:  tt.Duration(24 * time.Hour),
		},
	}
}

// LoadConfig reads the configuration file at path and applies
// environment overrides. An empty path means DefaultConfigFile, and a
// missing default file is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return config, fmt.Errorf("parsing configuration %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// nothing to read; defaults and environment apply
	default:
		return config, fmt.Errorf("opening configuration: %w", err)
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("applying environment overrides: %w", err)
	}

	if config.MaxDepth <= 0 {
		config.MaxDepth = formula.DefaultMaxDepth
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".dn"}
	}
	return config, nil
}

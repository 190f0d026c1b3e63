// Package dncheck checks natural-deduction proofs written in the
// line-per-record format index;context;statement;justification.
//
// It wires the record parser, the scope checker, and the inference
// rule table behind one engine with optional file-level caching, so
// callers (the CLI, the watcher, editor integrations) deal only in
// verdicts.
package dncheck

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dnlab/dncheck/internal/checker"
	"github.com/dnlab/dncheck/internal/rules"
	tt "github.com/dnlab/dncheck/internal/types"
)

// Checker is the part of the Engine the file-processing helpers drive.
// *Engine is the canonical implementation; tests substitute mocks.
type Checker interface {
	CheckFile(path string) (tt.Verdict, error)
	IsProofFile(path string) bool
}

// Engine checks proof files against one loaded configuration.
type Engine struct {
	config     Config
	disabled   map[string]bool
	extensions map[string]bool
	cache      *verdictCache
}

// New builds an Engine from the configuration file at configPath. An
// empty path means DefaultConfigFile when present, plain defaults
// otherwise; environment variables override either way.
func New(configPath string) (*Engine, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config)
}

// NewFromConfig builds an Engine from an already-loaded configuration.
func NewFromConfig(config Config) (*Engine, error) {
	engine := &Engine{
		config:     config,
		disabled:   make(map[string]bool),
		extensions: make(map[string]bool, len(config.Extensions)),
	}
	for _, ext := range config.Extensions {
		engine.extensions[ext] = true
	}
	for code, rule := range config.Rules {
		if _, ok := rules.Lookup(code); !ok {
			return nil, fmt.Errorf("unknown rule code %q in configuration", code)
		}
		if rule.Severity == tt.SeverityOff {
			engine.disabled[code] = true
		}
	}
	if config.Cache.Enabled {
		cache, err := openCache(config.Cache.Dir, time.Duration(config.Cache.MaxAge), engine.fingerprint())
		if err != nil {
			return nil, fmt.Errorf("opening verdict cache: %w", err)
		}
		engine.cache = cache
	}
	return engine, nil
}

// CheckSource checks one proof held in memory. filename only labels
// diagnostic positions.
func (e *Engine) CheckSource(filename string, src []byte) tt.Verdict {
	return checker.Check(filename, string(src), checker.Options{
		MaxDepth: e.config.MaxDepth,
		Disabled: e.disabled,
	})
}

// CheckFile checks the proof file at path, consulting the verdict
// cache when one is configured.
func (e *Engine) CheckFile(path string) (tt.Verdict, error) {
	if e.cache != nil {
		if verdict, ok := e.cache.get(path); ok {
			return verdict, nil
		}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return tt.Verdict{}, fmt.Errorf("reading %s: %w", path, err)
	}

	verdict := e.CheckSource(path, src)

	if e.cache != nil {
		// cache writes are best effort
		_ = e.cache.set(path, verdict)
	}
	return verdict, nil
}

// DisableRule switches off one rule code for this engine, as if the
// configuration had set its severity to off.
func (e *Engine) DisableRule(code string) {
	e.disabled[code] = true
	if e.cache != nil {
		e.cache.setFingerprint(e.fingerprint())
	}
}

// IsProofFile reports whether path carries one of the configured proof
// file extensions.
func (e *Engine) IsProofFile(path string) bool {
	return e.extensions[filepath.Ext(path)]
}

// fingerprint identifies the checking options this engine runs with.
// Cached verdicts from a differently configured run must not be
// served, so cache entries carry it.
func (e *Engine) fingerprint() string {
	return configFingerprint(e.config.MaxDepth, e.disabled)
}

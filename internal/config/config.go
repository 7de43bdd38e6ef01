// Package config loads ember.toml and applies EMBER_* environment overrides.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"ember/internal/trace"
)

// FileName is the configuration file looked up by Find.
const FileName = "ember.toml"

type Config struct {
	Trace  TraceConfig  `toml:"trace"`
	Output OutputConfig `toml:"output"`
	Build  BuildConfig  `toml:"build"`
}

type TraceConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"`
	Mode     string `toml:"mode"`
	Output   string `toml:"output"` // "-" для stderr
	RingSize int    `toml:"ring_size"`
}

type OutputConfig struct {
	Color        string `toml:"color"` // auto|on|off
	Timings      bool   `toml:"timings"`
	NormalizeNFC bool   `toml:"normalize_nfc"`
	Context      int    `toml:"context"` // строк контекста в диагностиках
}

type BuildConfig struct {
	Output string `toml:"output"` // пусто: <input>.s
	UI     bool   `toml:"ui"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Trace: TraceConfig{
			Level:    "off",
			Format:   "auto",
			Mode:     "stream",
			Output:   "-",
			RingSize: 4096,
		},
		Output: OutputConfig{Color: "auto"},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks up from startDir to locate ember.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads explicit when set, otherwise the nearest ember.toml above
// startDir, otherwise the defaults. The environment is applied last.
func Resolve(explicit, startDir string) (Config, error) {
	path := explicit
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return err
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return err
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return err
	}
	if _, err := ParseColor(c.Output.Color); err != nil {
		return err
	}
	if c.Trace.RingSize < 0 {
		return fmt.Errorf("trace ring_size must be non-negative, got %d", c.Trace.RingSize)
	}
	return nil
}

// TracerConfig converts the [trace] section. The config must be valid.
func (c *Config) TracerConfig() trace.Config {
	level, _ := trace.ParseLevel(c.Trace.Level)
	format, _ := trace.ParseFormat(c.Trace.Format)
	mode, _ := trace.ParseMode(c.Trace.Mode)
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: c.Trace.Output,
		RingSize:   c.Trace.RingSize,
	}
}

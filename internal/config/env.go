package config

import (
	"github.com/xyproto/env/v2"
)

// Переменные окружения, перекрывающие ember.toml.
const (
	EnvColor      = "EMBER_COLOR"
	EnvTrace      = "EMBER_TRACE"
	EnvTraceLevel = "EMBER_TRACE_LEVEL"
	EnvTimings    = "EMBER_TIMINGS"
	EnvNFC        = "EMBER_NFC"
)

type lookup interface {
	Has(name string) bool
	Str(name string) string
	Bool(name string) bool
}

type processEnv struct{}

func (processEnv) Has(name string) bool { return env.Has(name) }
func (processEnv) Str(name string) string { return env.Str(name) }
func (processEnv) Bool(name string) bool { return env.Bool(name) }

// ApplyEnv overlays EMBER_* variables present in the process environment.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, processEnv{})
}

func applyEnv(cfg *Config, vars lookup) error {
	if vars.Has(EnvColor) {
		cfg.Output.Color = vars.Str(EnvColor)
	}
	if vars.Has(EnvTrace) {
		cfg.Trace.Output = vars.Str(EnvTrace)
		// путь без уровня включает фазовую трассировку
		if cfg.Trace.Level == "off" && !vars.Has(EnvTraceLevel) {
			cfg.Trace.Level = "phase"
		}
	}
	if vars.Has(EnvTraceLevel) {
		cfg.Trace.Level = vars.Str(EnvTraceLevel)
	}
	if vars.Has(EnvTimings) {
		cfg.Output.Timings = vars.Bool(EnvTimings)
	}
	if vars.Has(EnvNFC) {
		cfg.Output.NormalizeNFC = vars.Bool(EnvNFC)
	}
	return cfg.Validate()
}

package config

import (
	"fmt"
	"strings"
)

// ColorMode decides whether user-facing output is colored.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

func (m ColorMode) String() string {
	switch m {
	case ColorOn:
		return "on"
	case ColorOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseColor accepts auto, on/always/true and off/never/false.
func ParseColor(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "on", "always", "true":
		return ColorOn, nil
	case "off", "never", "false":
		return ColorOff, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode: %q (expected: auto|on|off)", s)
}

// Enabled resolves auto against whether the output is a terminal.
func (m ColorMode) Enabled(isTerminal bool) bool {
	switch m {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return isTerminal
	}
}

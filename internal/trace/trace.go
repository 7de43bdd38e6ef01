package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const defaultRingSize = 4096

// Tracer receives events. Emit must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
}

// StorageMode says where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // сразу в вывод
	ModeRing                          // в память, вывод при Close
	ModeBoth                          // стадии сразу, остальное при Close
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(s)
	for i, name := range modeNames {
		if name != "" && name == s {
			return StorageMode(i), nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes a tracer. Output wins over OutputPath; an empty path or
// "-" means stderr.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer
	OutputPath string
	RingSize   int
}

// New builds the tracer for cfg. LevelOff yields Nop without touching the output.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}
	format := cfg.Format.resolve(cfg.OutputPath)

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	newRing := func() *RingTracer {
		ring := NewRingTracer(cfg.RingSize, cfg.Level)
		ring.dump, ring.dumpFormat = w, format
		return ring
	}

	switch cfg.Mode {
	case ModeStream:
		return NewStreamTracer(w, cfg.Level, format), nil
	case ModeRing:
		return newRing(), nil
	case ModeBoth:
		// поток показывает только стадии, полный уровень уходит в дамп кольца
		stream := NewStreamTracer(w, min(cfg.Level, LevelPhase), format)
		ring := newRing()
		ring.dump = nopCloser{w}
		return NewMultiTracer(cfg.Level, ring, stream), nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser hides Close so only the stream closes the shared file.
type nopCloser struct{ io.Writer }

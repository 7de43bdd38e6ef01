package trace

import (
	"fmt"
	"strings"
	"time"
)

// Kind — вид события.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one compilation
	ScopeStage                   // lex, parse, check, lower, codegen
	ScopeDetail                  // counts and sizes inside a stage
	ScopeNode                    // checker nodes
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopeStage: "stage", ScopeDetail: "detail", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Level controls which scopes are recorded.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String; "" means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// Admits reports whether events of scope are recorded at this level.
// LevelError records nothing on its own: it only keeps the tracer alive for
// the ring dump.
func (l Level) Admits(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeStage
	case LevelDetail:
		return scope <= ScopeDetail
	case LevelDebug:
		return true
	}
	return false
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корня
	Name     string
	Detail   string
	Elapsed  time.Duration // только у KindSpanEnd
	Extra    map[string]string
}

package symbols

import (
	"ember/internal/source"
)

// ScopeID indexes the table arena; 0 means no scope.
type ScopeID uint32

const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeRoot              // корень одной компиляции, поверх builtins
	ScopeBlock             // `{ ... }`
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeRoot:
		return "root"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope; links go only towards the parent.
type Scope[V any] struct {
	Kind   ScopeKind
	Parent ScopeID
	Span   source.Span
	Names  map[source.StringID]V
	Order  []source.StringID // порядок объявлений, для дампов
}

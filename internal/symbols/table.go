package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"ember/internal/source"
)

// Hints provide optional capacity suggestions for the scope arena.
type Hints struct{ Scopes uint }

// Fallback resolves names that no scope of the table binds, e.g. builtins.
// It must not be mutated through the table.
type Fallback[V any] func(name source.StringID) (V, bool)

// Table is a scope chain stored as an arena with parent indices.
// V is whatever a name resolves to: a type during checking, an IR variable during lowering.
type Table[V any] struct {
	scopes   []Scope[V] // index 0 reserved for NoScopeID
	root     ScopeID
	current  ScopeID
	fallback Fallback[V]
}

// NewTable builds a table with a fresh root scope. fallback may be nil.
func NewTable[V any](h Hints, fallback Fallback[V]) *Table[V] {
	capacity := h.Scopes
	if capacity == 0 {
		capacity = 16
	}
	t := &Table[V]{
		scopes:   make([]Scope[V], 1, capacity+1),
		fallback: fallback,
	}
	t.root = t.newScope(ScopeRoot, NoScopeID, source.Span{})
	t.current = t.root
	return t
}

func (t *Table[V]) newScope(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	value, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	t.scopes = append(t.scopes, Scope[V]{
		Kind:   kind,
		Parent: parent,
		Span:   span,
		Names:  make(map[source.StringID]V),
	})
	return ScopeID(value)
}

// Root returns the per-compilation root scope.
func (t *Table[V]) Root() ScopeID { return t.root }

// Current returns the innermost open scope.
func (t *Table[V]) Current() ScopeID { return t.current }

// Get returns the scope record for id, or nil.
func (t *Table[V]) Get(id ScopeID) *Scope[V] {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Len returns the number of scopes ever opened, root included.
func (t *Table[V]) Len() int { return len(t.scopes) - 1 }

// Depth returns how many scopes a lookup from the current scope can visit.
func (t *Table[V]) Depth() int {
	n := 0
	for id := t.current; id.IsValid(); id = t.scopes[id].Parent {
		n++
	}
	return n
}

// Push opens a child of the current scope and makes it current.
func (t *Table[V]) Push(kind ScopeKind, span source.Span) ScopeID {
	t.current = t.newScope(kind, t.current, span)
	return t.current
}

// Pop closes the current scope. Closing the root is a programming error.
func (t *Table[V]) Pop() {
	if t.current == t.root {
		panic("symbols: pop of root scope")
	}
	t.current = t.scopes[t.current].Parent
}

// Define binds name in the current scope only; an outer binding is shadowed.
// Reports whether the current scope already had the name.
func (t *Table[V]) Define(name source.StringID, v V) bool {
	sc := &t.scopes[t.current]
	_, existed := sc.Names[name]
	if !existed {
		sc.Order = append(sc.Order, name)
	}
	sc.Names[name] = v
	return existed
}

// Lookup walks outward from the current scope and then consults the fallback.
// The returned ScopeID is NoScopeID for fallback hits.
func (t *Table[V]) Lookup(name source.StringID) (V, ScopeID, bool) {
	for id := t.current; id.IsValid(); id = t.scopes[id].Parent {
		if v, ok := t.scopes[id].Names[name]; ok {
			return v, id, true
		}
	}
	if t.fallback != nil {
		if v, ok := t.fallback(name); ok {
			return v, NoScopeID, true
		}
	}
	var zero V
	return zero, NoScopeID, false
}

// Set updates the nearest scope that binds name; otherwise binds it at the root.
// The fallback is never written.
func (t *Table[V]) Set(name source.StringID, v V) ScopeID {
	target := t.root
	for id := t.current; id.IsValid(); id = t.scopes[id].Parent {
		if _, ok := t.scopes[id].Names[name]; ok {
			target = id
			break
		}
	}
	sc := &t.scopes[target]
	if _, ok := sc.Names[name]; !ok {
		sc.Order = append(sc.Order, name)
	}
	sc.Names[name] = v
	return target
}

// Validate checks that every scope but the root has an earlier, valid parent.
func (t *Table[V]) Validate() error {
	var errs []error
	for idx := 1; idx < len(t.scopes); idx++ {
		sc := t.scopes[idx]
		if sc.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", idx))
		}
		switch {
		case idx == int(t.root):
			if sc.Parent.IsValid() {
				errs = append(errs, fmt.Errorf("root scope %d has parent %d", idx, sc.Parent))
			}
		case !sc.Parent.IsValid() || int(sc.Parent) >= idx:
			errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", idx, sc.Parent))
		}
	}
	return errors.Join(errs...)
}

package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"ember/internal/ast"
	"ember/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) every node span is non-empty and within file content bounds
// 2) every node span points at sf
// 3) a parent span covers the spans of its children
func CheckSpanInvariants(b *ast.Builder, root ast.ExprID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	if b.Exprs.Get(root) == nil {
		return fmt.Errorf("root node %d not found", root)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var errs []error
	b.Walk(root, func(id ast.ExprID) bool {
		sp := b.Exprs.Get(id).Span
		if sp.Empty() {
			errs = append(errs, fmt.Errorf("node %d has empty span %v", id, sp))
		}
		if sp.File != sf.ID {
			errs = append(errs, fmt.Errorf("node %d span file mismatch: got=%d want=%d", id, sp.File, sf.ID))
		}
		if sp.End > lenContent {
			errs = append(errs, fmt.Errorf("node %d span end beyond content: %d > %d", id, sp.End, lenContent))
		}
		for _, child := range b.Children(id) {
			csp := b.Exprs.Get(child).Span
			if csp.Start < sp.Start || csp.End > sp.End {
				errs = append(errs, fmt.Errorf("child %d span %v is outside parent %d span %v", child, csp, id, sp))
			}
		}
		return true
	})
	return errors.Join(errs...)
}

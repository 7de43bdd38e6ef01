package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ember/internal/ast"
	"ember/internal/source"
)

const exprInlineMaxDepth = 64

// FormatExpr renders exprID as a one-line s-expression, e.g.
// BinaryOp(+, 1, BinaryOp(*, 2, 3)).
func FormatExpr(builder *ast.Builder, exprID ast.ExprID) string {
	var sb strings.Builder
	writeExpr(&sb, builder, exprID, 0)
	return sb.String()
}

func writeExpr(sb *strings.Builder, b *ast.Builder, id ast.ExprID, depth int) {
	if !id.IsValid() {
		sb.WriteString("<none>")
		return
	}
	if depth >= exprInlineMaxDepth {
		sb.WriteString("...")
		return
	}
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<invalid>")
		return
	}
	sub := func(c ast.ExprID) { writeExpr(sb, b, c, depth+1) }
	list := func(ids []ast.ExprID) {
		sb.WriteByte('[')
		for i, c := range ids {
			if i > 0 {
				sb.WriteString(", ")
			}
			sub(c)
		}
		sb.WriteByte(']')
	}

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := b.Exprs.Literal(id)
		sb.WriteString(literalText(lit))
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		sb.WriteString(b.Name(data.Name))
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		fmt.Fprintf(sb, "BinaryOp(%s, ", data.Op)
		sub(data.Left)
		sb.WriteString(", ")
		sub(data.Right)
		sb.WriteByte(')')
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		fmt.Fprintf(sb, "UnaryOp(%s, ", data.Op)
		sub(data.Operand)
		sb.WriteByte(')')
	case ast.ExprIf:
		data, _ := b.Exprs.If(id)
		sb.WriteString("IfExpr(")
		sub(data.Cond)
		sb.WriteString(", ")
		sub(data.Then)
		if data.Else.IsValid() {
			sb.WriteString(", ")
			sub(data.Else)
		}
		sb.WriteByte(')')
	case ast.ExprWhile:
		data, _ := b.Exprs.While(id)
		sb.WriteString("WhileExpr(")
		sub(data.Cond)
		sb.WriteString(", ")
		sub(data.Body)
		sb.WriteByte(')')
	case ast.ExprBlock:
		data, _ := b.Exprs.Block(id)
		sb.WriteString("Statements(")
		list(data.Stmts)
		if data.Result.IsValid() {
			sb.WriteString(", ")
			sub(data.Result)
		}
		sb.WriteByte(')')
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		fmt.Fprintf(sb, "FuncExpr(%s, ", b.Name(data.Callee))
		list(data.Args)
		sb.WriteByte(')')
	case ast.ExprVarDecl:
		data, _ := b.Exprs.VarDecl(id)
		fmt.Fprintf(sb, "VarDecl(%s, ", b.Name(data.Name))
		if data.Type != ast.AnnotNone {
			fmt.Fprintf(sb, "%s, ", data.Type)
		}
		sub(data.Init)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<%s>", expr.Kind)
	}
}

func literalText(lit *ast.ExprLiteralData) string {
	switch lit.Kind {
	case ast.LitInt:
		return strconv.FormatInt(lit.Int, 10)
	case ast.LitBool:
		return strconv.FormatBool(lit.Bool)
	default:
		return "()"
	}
}

// exprLabel — подпись узла без детей для дерева и JSON.
func exprLabel(b *ast.Builder, id ast.ExprID) (kind, text string) {
	expr := b.Exprs.Get(id)
	kind = expr.Kind.String()
	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := b.Exprs.Literal(id)
		text = literalText(lit)
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		text = b.Name(data.Name)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		text = data.Op.String()
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		text = data.Op.String()
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		text = b.Name(data.Callee)
	case ast.ExprVarDecl:
		data, _ := b.Exprs.VarDecl(id)
		text = b.Name(data.Name)
		if data.Type != ast.AnnotNone {
			text += ": " + data.Type.String()
		}
	}
	return kind, text
}

// TypeNamer names the resolved type of a node; nil means the tree is untyped.
type TypeNamer func(ast.ExprID) string

// FormatASTPretty prints the tree with box-drawing guides, one node per line.
func FormatASTPretty(w io.Writer, builder *ast.Builder, root ast.ExprID, fs *source.FileSet, typeOf TypeNamer) error {
	if builder.Exprs.Get(root) == nil {
		return fmt.Errorf("root expression %d not found", root)
	}
	writeTreeNode(w, builder, root, fs, typeOf, "", "")
	return nil
}

func writeTreeNode(w io.Writer, b *ast.Builder, id ast.ExprID, fs *source.FileSet, typeOf TypeNamer, head, prefix string) {
	kind, text := exprLabel(b, id)
	line := kind
	if text != "" {
		line += " " + text
	}
	if typeOf != nil {
		line += " : " + typeOf(id)
	}
	fmt.Fprintf(w, "%s%s (span: %s)\n", head, line, formatSpan(b.Exprs.Get(id).Span, fs))

	children := b.Children(id)
	for i, c := range children {
		if i == len(children)-1 {
			writeTreeNode(w, b, c, fs, typeOf, prefix+"└─ ", prefix+"   ")
		} else {
			writeTreeNode(w, b, c, fs, typeOf, prefix+"├─ ", prefix+"│  ")
		}
	}
}

type ASTNodeOutput struct {
	ID       uint32          `json:"id"`
	Kind     string          `json:"kind"`
	Text     string          `json:"text,omitempty"`
	Type     string          `json:"type,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// BuildASTOutput converts the tree rooted at root into its JSON shape.
func BuildASTOutput(builder *ast.Builder, root ast.ExprID, typeOf TypeNamer) ASTNodeOutput {
	kind, text := exprLabel(builder, root)
	node := ASTNodeOutput{
		ID:   uint32(root),
		Kind: kind,
		Text: text,
		Span: builder.Exprs.Get(root).Span,
	}
	if typeOf != nil {
		node.Type = typeOf(root)
	}
	for _, c := range builder.Children(root) {
		node.Children = append(node.Children, BuildASTOutput(builder, c, typeOf))
	}
	return node
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, root ast.ExprID, typeOf TypeNamer) error {
	if builder.Exprs.Get(root) == nil {
		return fmt.Errorf("root expression %d not found", root)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(builder, root, typeOf))
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to "startLine:startCol-endLine:endCol";
// otherwise it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

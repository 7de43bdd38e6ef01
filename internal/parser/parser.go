package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"

	"fortio.org/safecast"
)

// Parser — состояние парсера на один файл.
// Разбор fail-fast: первая ошибка запоминается в failure, и все уровни сворачиваются через ok=false.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	failure  *diag.Error
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// Parse builds the AST for toks. The returned root is either a bare expression
// or an implicit top-level block, see parseProgram.
func Parse(file *source.File, toks []token.Token) (*ast.Builder, ast.ExprID, error) {
	if len(toks) == 0 {
		sp := source.Span{}
		if file != nil {
			sp.File = file.ID
		}
		return nil, ast.NoExprID, diag.Errorf(nil, diag.SynEmptyInput, sp, "empty input: nothing to compile")
	}
	hint, err := safecast.Conv[uint](len(toks))
	if err != nil {
		hint = 0
	}
	p := &Parser{
		file:   file,
		toks:   toks,
		arenas: ast.NewBuilder(ast.Hints{Exprs: hint}),
	}
	if file != nil {
		p.lastSpan = source.Span{File: file.ID}
	}
	root, ok := p.parseProgram()
	if !ok {
		if p.failure == nil {
			p.err(diag.SynUnexpectedToken, "unexpected %s", describe(p.peek()))
		}
		return nil, ast.NoExprID, p.failure
	}
	return p.arenas, root, nil
}

// ParseSource runs the lexer and the parser over file.
func ParseSource(file *source.File) (*ast.Builder, ast.ExprID, error) {
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		return nil, ast.NoExprID, err
	}
	return Parse(file, toks)
}

// peek возвращает текущий токен; за концом потока — синтетический EOF.
func (p *Parser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF, Span: source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}}
}

// prev — последний съеденный токен; до начала ввода нулевой токен.
func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return token.Token{}
	}
	return p.toks[p.pos-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

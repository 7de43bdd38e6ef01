package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents a decimal integer literal.
	IntLit
	// BoolLit represents the literals true and false.
	BoolLit

	KwVar   // var
	KwWhile // while
	KwIf    // if
	KwElse  // else
	KwThen  // then
	KwDo    // do
	KwInt   // Int
	KwBool  // Bool
	KwUnit  // Unit

	// KwNot is the only unary-only operator.
	KwNot // not
	KwAnd // and
	KwOr  // or

	Assign  // =
	EqEq    // ==
	BangEq  // !=
	Lt      // <
	LtEq    // <=
	Gt      // >
	GtEq    // >=
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %

	LParen    // (
	RParen    // )
	Comma     // ,
	Semicolon // ;
	LBrace    // {
	RBrace    // }
	Colon     // :
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "end of input",
	Ident:     "identifier",
	IntLit:    "integer literal",
	BoolLit:   "boolean literal",
	KwVar:     "var",
	KwWhile:   "while",
	KwIf:      "if",
	KwElse:    "else",
	KwThen:    "then",
	KwDo:      "do",
	KwInt:     "Int",
	KwBool:    "Bool",
	KwUnit:    "Unit",
	KwNot:     "not",
	KwAnd:     "and",
	KwOr:      "or",
	Assign:    "=",
	EqEq:      "==",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	LParen:    "(",
	RParen:    ")",
	Comma:     ",",
	Semicolon: ";",
	LBrace:    "{",
	RBrace:    "}",
	Colon:     ":",
}

// String returns the spelling of fixed tokens and a description for the rest.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Category names a lexical category of the language grammar.
type Category string

const (
	CatIntLiteral  Category = "int_literal"
	CatBoolLiteral Category = "bool_literal"
	CatIdentifier  Category = "identifier"
	CatKeyword     Category = "keyword"
	CatUnaryOp     Category = "unary_op"
	CatBinaryOp    Category = "binary_op"
	CatPunctuation Category = "punctuation"
	CatEnd         Category = "end"
)

// Category reports which grammar category the kind belongs to.
// Minus is a binary_op; the parser decides when it acts as a prefix.
func (k Kind) Category() Category {
	switch {
	case k == IntLit:
		return CatIntLiteral
	case k == BoolLit:
		return CatBoolLiteral
	case k == Ident:
		return CatIdentifier
	case k >= KwVar && k <= KwUnit:
		return CatKeyword
	case k == KwNot:
		return CatUnaryOp
	case k >= KwAnd && k <= Percent:
		return CatBinaryOp
	case k >= LParen && k <= Colon:
		return CatPunctuation
	default:
		return CatEnd
	}
}

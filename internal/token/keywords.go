package token

var keywords = map[string]Kind{
	"var":   KwVar,
	"while": KwWhile,
	"if":    KwIf,
	"else":  KwElse,
	"then":  KwThen,
	"do":    KwDo,
	"Int":   KwInt,
	"Bool":  KwBool,
	"Unit":  KwUnit,
	"not":   KwNot,
	"and":   KwAnd,
	"or":    KwOr,
	"true":  BoolLit,
	"false": BoolLit,
}

// LookupKeyword возвращает тип и bool если это зарезервированное слово.
// Регистр важен: "int" это идентификатор, "Int" это ключевое слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

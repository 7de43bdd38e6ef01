package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Синтаксические
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynExpectSemicolon    Code = 2012
	SynExpectIdentifier   Code = 2102
	SynExpectExpression   Code = 2201
	SynExpectType         Code = 2202
	SynDanglingIdentifier Code = 2203
	SynVarNotAllowed      Code = 2204
	SynIntOverflow        Code = 2205
	SynTrailingInput      Code = 2206
	SynEmptyInput         Code = 2300

	// Семантические
	SemaUnresolvedSymbol   Code = 3001
	SemaTypeMismatch       Code = 3002
	SemaOperatorMismatch   Code = 3003
	SemaConditionNotBool   Code = 3004
	SemaBranchMismatch     Code = 3005
	SemaNotCallable        Code = 3006
	SemaArgumentCount      Code = 3007
	SemaArgumentType       Code = 3008
	SemaInvalidAssignment  Code = 3009
	SemaAnnotationMismatch Code = 3010

	// Внутренние ошибки генерации
	GenUnsupportedNode Code = 9001
	GenTooManyArgs     Code = 9002
	GenUnknownVar      Code = 9003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unrecognized character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectSemicolon:          "Missing statement separator",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynExpectType:               "Expected type annotation",
	SynDanglingIdentifier:       "Dangling identifier",
	SynVarNotAllowed:            "Variable declaration not allowed here",
	SynIntOverflow:              "Integer literal out of range",
	SynTrailingInput:            "Unexpected trailing input",
	SynEmptyInput:               "Empty input",
	SemaUnresolvedSymbol:        "Unresolved symbol",
	SemaTypeMismatch:            "Type mismatch",
	SemaOperatorMismatch:        "Operator type mismatch",
	SemaConditionNotBool:        "Condition is not Bool",
	SemaBranchMismatch:          "If branches have different types",
	SemaNotCallable:             "Callee is not a function",
	SemaArgumentCount:           "Wrong number of arguments",
	SemaArgumentType:            "Argument type mismatch",
	SemaInvalidAssignment:       "Invalid assignment target",
	SemaAnnotationMismatch:      "Declared type does not match initializer",
	GenUnsupportedNode:          "Unsupported node",
	GenTooManyArgs:              "Too many call arguments",
	GenUnknownVar:               "Variable has no stack slot",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Class maps a code onto its error-taxonomy sentinel.
func (c Code) Class() error {
	switch ic := int(c); {
	case c == SynEmptyInput:
		return ErrEmptyInput
	case ic >= 1000 && ic < 2000:
		return ErrLexical
	case ic >= 2000 && ic < 3000:
		return ErrParse
	case ic >= 3000 && ic < 4000:
		return ErrType
	default:
		return ErrInternal
	}
}

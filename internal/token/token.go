package token

type Type string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	// Identifiers + literals
	IDENT  = "IDENT"  // size, angle, x, y, ...
	NUMBER = "NUMBER" // 100, 2.5, 1e3
	STRING = "STRING" // "red"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	CARET    = "^"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	LT_EQ  = "<="
	GT     = ">"
	GT_EQ  = ">="

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"

	// Keywords
	VAR      = "VAR"
	LET      = "LET"
	IF       = "IF"
	ELSE     = "ELSE"
	WHILE    = "WHILE"
	FOR      = "FOR"
	TO       = "TO"
	STEP     = "STEP"
	FUNCTION = "FUNCTION"
	RETURN   = "RETURN"
	AND      = "AND"
	OR       = "OR"
	NOT      = "NOT"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
)

// Token is a single lexeme with its source position. Line and Column are
// 1-based and point at the first character of the lexeme.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]Type{
	// constants
	"true":  TRUE,
	"false": FALSE,

	// declarations
	"var":      VAR,
	"let":      LET,
	"function": FUNCTION,

	// flow control
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"to":     TO,
	"step":   STEP,
	"return": RETURN,

	// logical operators
	"and": AND,
	"or":  OR,
	"not": NOT,
}

func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

package lexer

import (
	"testing"

	"quill/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var size = 100
let half = size / 2
if half >= 10 and half != 0 {
	forward(half ^ 2)
}
"red"
`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.VAR, "var"},
		{token.IDENT, "size"},
		{token.ASSIGN, "="},
		{token.NUMBER, "100"},
		{token.NEWLINE, "\\n"},
		{token.LET, "let"},
		{token.IDENT, "half"},
		{token.ASSIGN, "="},
		{token.IDENT, "size"},
		{token.SLASH, "/"},
		{token.NUMBER, "2"},
		{token.NEWLINE, "\\n"},
		{token.IF, "if"},
		{token.IDENT, "half"},
		{token.GT_EQ, ">="},
		{token.NUMBER, "10"},
		{token.AND, "and"},
		{token.IDENT, "half"},
		{token.NOT_EQ, "!="},
		{token.NUMBER, "0"},
		{token.LBRACE, "{"},
		{token.NEWLINE, "\\n"},
		{token.IDENT, "forward"},
		{token.LPAREN, "("},
		{token.IDENT, "half"},
		{token.CARET, "^"},
		{token.NUMBER, "2"},
		{token.RPAREN, ")"},
		{token.NEWLINE, "\\n"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\\n"},
		{token.STRING, "red"},
		{token.NEWLINE, "\\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	input := "var x = 1\n  x = x + 2"

	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		typ    token.Type
		line   int
		column int
	}{
		{token.VAR, 1, 1},
		{token.IDENT, 1, 5},
		{token.ASSIGN, 1, 7},
		{token.NUMBER, 1, 9},
		{token.NEWLINE, 1, 10},
		{token.IDENT, 2, 3},
		{token.ASSIGN, 2, 5},
		{token.IDENT, 2, 7},
		{token.PLUS, 2, 9},
		{token.NUMBER, 2, 11},
		{token.EOF, 2, 12},
	}

	if len(toks) != len(want) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(want), len(toks))
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Line != w.line || toks[i].Column != w.column {
			t.Errorf("toks[%d] = %q at %d:%d, expected %q at %d:%d",
				i, toks[i].Type, toks[i].Line, toks[i].Column, w.typ, w.line, w.column)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"100", "100"},
		{"2.5", "2.5"},
		{".5", ".5"},
		{"1e3", "1e3"},
		{"1.5e-2", "1.5e-2"},
		{"2E+4", "2E+4"},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
		}
		if toks[0].Type != token.NUMBER || toks[0].Literal != tt.literal {
			t.Errorf("Tokenize(%q) = %q %q, expected NUMBER %q",
				tt.input, toks[0].Type, toks[0].Literal, tt.literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks, err := Tokenize(`"a\nb\t\\\"c"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\nb\t\\\"c"
	if toks[0].Literal != want {
		t.Errorf("string literal = %q, expected %q", toks[0].Literal, want)
	}
}

func TestLineContinuation(t *testing.T) {
	toks, err := Tokenize("var x = 1 + \\\n        2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range toks {
		if tok.Type == token.NEWLINE {
			t.Fatal("continuation line should not produce a NEWLINE token")
		}
	}
	if last := toks[len(toks)-2]; last.Type != token.NUMBER || last.Literal != "2" {
		t.Errorf("last literal token = %q %q, expected NUMBER 2", last.Type, last.Literal)
	}
}

func TestComments(t *testing.T) {
	toks, err := Tokenize("# heading\nvar x = 1 // trailing\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.NEWLINE {
		t.Fatalf("first token = %q, expected NEWLINE after full-line comment", toks[0].Type)
	}
	if toks[1].Type != token.VAR {
		t.Errorf("second token = %q, expected VAR", toks[1].Type)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  string
		line  int
	}{
		{"var x = $", InvalidCharacter, 1},
		{"\"never closed", UnterminatedString, 1},
		{"var s = \"one\nvar t = 2", UnterminatedString, 1},
		{"var x = 1e", MalformedNumber, 1},
		{"forward(10) \\ back(5)", InvalidCharacter, 1},
	}

	for _, tt := range tests {
		_, err := Tokenize(tt.input)
		if err == nil {
			t.Fatalf("Tokenize(%q) succeeded, expected %s", tt.input, tt.kind)
		}
		lexErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("Tokenize(%q) error type = %T, expected *Error", tt.input, err)
		}
		if lexErr.Kind != tt.kind {
			t.Errorf("Tokenize(%q) kind = %s, expected %s", tt.input, lexErr.Kind, tt.kind)
		}
		if lexErr.Line != tt.line {
			t.Errorf("Tokenize(%q) line = %d, expected %d", tt.input, lexErr.Line, tt.line)
		}
	}
}

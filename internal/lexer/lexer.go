package lexer

import (
	"fmt"
	"strings"

	"quill/internal/token"
)

// Error kinds reported by the lexer.
const (
	InvalidCharacter   = "InvalidCharacter"
	UnterminatedString = "UnterminatedString"
	MalformedNumber    = "MalformedNumber"
)

// Error is a lexical error pinned to a source position.
type Error struct {
	Kind    string
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%3d:%2d] %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// Lexer walks the source rune by rune, producing one token per call to
// NextToken. It stops at the first lexical error.
type Lexer struct {
	input        []rune
	position     int // current position (points to ch)
	readPosition int // next reading position (after ch)
	ch           rune

	line   int
	column int

	err *Error
}

func New(input string) *Lexer {
	l := &Lexer{input: []rune(input), line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans the whole source and returns the token stream, terminated
// by an EOF token. The first lexical error aborts the scan.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)

	var toks []token.Token
	for {
		tok := l.NextToken()
		if l.err != nil {
			return nil, l.err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	if l.err != nil {
		return token.Token{Type: token.ILLEGAL, Line: l.err.Line, Column: l.err.Column}
	}

	tok.Line = l.line
	tok.Column = l.column

	switch l.ch {
	case '\n':
		tok.Type = token.NEWLINE
		tok.Literal = "\\n"
		// collapse a run of blank lines into one NEWLINE
		for l.ch == '\n' {
			l.readChar()
			l.skipWhitespace()
		}
		return tok
	case '=':
		tok = l.compound(tok, '=', token.EQ, token.ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			tok = l.compound(tok, '=', token.NOT_EQ, token.ILLEGAL)
		} else {
			l.fail(InvalidCharacter, tok.Line, tok.Column, "unexpected character '!'")
			tok.Type = token.ILLEGAL
			tok.Literal = "!"
		}
	case '<':
		tok = l.compound(tok, '=', token.LT_EQ, token.LT)
	case '>':
		tok = l.compound(tok, '=', token.GT_EQ, token.GT)
	case '+':
		tok.Type, tok.Literal = token.PLUS, "+"
	case '-':
		tok.Type, tok.Literal = token.MINUS, "-"
	case '*':
		tok.Type, tok.Literal = token.ASTERISK, "*"
	case '/':
		tok.Type, tok.Literal = token.SLASH, "/"
	case '%':
		tok.Type, tok.Literal = token.PERCENT, "%"
	case '^':
		tok.Type, tok.Literal = token.CARET, "^"
	case ',':
		tok.Type, tok.Literal = token.COMMA, ","
	case ';':
		tok.Type, tok.Literal = token.SEMICOLON, ";"
	case '(':
		tok.Type, tok.Literal = token.LPAREN, "("
	case ')':
		tok.Type, tok.Literal = token.RPAREN, ")"
	case '{':
		tok.Type, tok.Literal = token.LBRACE, "{"
	case '}':
		tok.Type, tok.Literal = token.RBRACE, "}"
	case '"':
		tok.Type = token.STRING
		tok.Literal = l.readString(tok.Line, tok.Column)
		if l.err != nil {
			tok.Type = token.ILLEGAL
		}
		return tok
	case 0:
		tok.Type = token.EOF
		tok.Literal = ""
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		}
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber(tok.Line, tok.Column)
			if l.err != nil {
				tok.Type = token.ILLEGAL
			}
			return tok
		}
		l.fail(InvalidCharacter, tok.Line, tok.Column, fmt.Sprintf("unexpected character %q", l.ch))
		tok.Type = token.ILLEGAL
		tok.Literal = string(l.ch)
	}

	l.readChar()
	return tok
}

// compound emits the two-character token when the next rune matches,
// otherwise the one-character fallback.
func (l *Lexer) compound(tok token.Token, next rune, two, one token.Type) token.Token {
	ch := l.ch
	if l.peekChar() == next {
		l.readChar()
		tok.Type = two
		tok.Literal = string(ch) + string(next)
	} else {
		tok.Type = one
		tok.Literal = string(ch)
	}
	return tok
}

func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			l.skipLineComment()
		case l.ch == '/' && l.peekChar() == '/':
			l.skipLineComment()
		case l.ch == '\\':
			// a backslash joins the next line into this one
			if l.peekChar() != '\n' {
				l.fail(InvalidCharacter, l.line, l.column, "stray '\\' outside a line continuation")
				return
			}
			l.readChar() // backslash
			l.readChar() // newline
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readNumber(line, column int) string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			l.fail(MalformedNumber, line, column, "exponent has no digits")
			return string(l.input[start:l.position])
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := string(l.input[start:l.position])
	if strings.Count(lit, ".") > 0 && l.ch == '.' {
		l.fail(MalformedNumber, line, column, "number has multiple decimal points")
	}
	return lit
}

// readString consumes a double-quoted string literal, translating the
// escapes \n, \t, \\ and \". An unknown escape keeps the escaped character.
func (l *Lexer) readString(line, column int) string {
	var out strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case '"':
			l.readChar() // closing quote
			return out.String()
		case '\n', 0:
			l.fail(UnterminatedString, line, column, "string literal is never closed")
			return out.String()
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case '\\':
				out.WriteRune('\\')
			case '"':
				out.WriteRune('"')
			case '\n', 0:
				l.fail(UnterminatedString, line, column, "string literal is never closed")
				return out.String()
			default:
				out.WriteRune(l.ch)
			}
		default:
			out.WriteRune(l.ch)
		}
	}
}

func (l *Lexer) fail(kind string, line, column int, msg string) {
	if l.err == nil {
		l.err = &Error{Kind: kind, Line: line, Column: column, Message: msg}
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

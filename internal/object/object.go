package object

import (
	"fmt"
	"strconv"
	"strings"

	"quill/internal/ast"
)

type ObjectType string

const (
	NUMBER_OBJ       = "NUMBER"
	STRING_OBJ       = "STRING"
	BOOLEAN_OBJ      = "BOOLEAN"
	NIL_OBJ          = "NIL"
	FUNCTION_OBJ     = "FUNCTION"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	ERROR_OBJ        = "ERROR"
)

// Error kinds carried by RuntimeError.
const (
	UndefinedVariable     = "UndefinedVariable"
	UndefinedFunction     = "UndefinedFunction"
	TypeError             = "TypeError"
	DivisionByZero        = "DivisionByZero"
	ArgumentCountMismatch = "ArgumentCountMismatch"
	InvalidArgumentType   = "InvalidArgumentType"
	RecursionDepth        = "RecursionDepth"
	Canceled              = "Canceled"
	IOError               = "IOError"
)

// Object is any value a script expression can produce.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

// ReturnValue wraps the value of a return statement so block evaluation
// can unwind to the enclosing call.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Function is a user-defined procedure. Env is the environment the
// function body runs against, which is always the global scope.
type Function struct {
	Name       string
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}
	return fmt.Sprintf("function %s(%s)", f.Name, strings.Join(params, ", "))
}

// RuntimeError is both an Object, so it propagates through evaluation like
// any other value, and an error for callers outside the evaluator.
type RuntimeError struct {
	Kind    string
	Line    int
	Column  int
	Message string
}

func (e *RuntimeError) Type() ObjectType { return ERROR_OBJ }
func (e *RuntimeError) Inspect() string  { return e.Error() }
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[%3d:%2d] %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

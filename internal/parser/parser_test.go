package parser

import (
	"testing"

	"quill/internal/ast"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return program
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 + 2 - 3", "((1 + 2) - 3)"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"-2 ^ 2", "((-2) ^ 2)"},
		{"2 * 3 ^ 2", "(2 * (3 ^ 2))"},
		{"a + b % c", "(a + (b % c))"},
		{"a < b == c < d", "((a < b) == (c < d))"},
		{"not a == b", "(not (a == b))"},
		{"not a and b", "((not a) and b)"},
		{"a and b or c and d", "((a and b) or (c and d))"},
		{"a or not b", "(a or (not b))"},
		{"a + sin(b) * 2", "(a + (sin(b) * 2))"},
		{"-forward(5)", "(-forward(5))"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if len(program.Statements) != 1 {
			t.Fatalf("%q: statement count = %d, expected 1", tt.input, len(program.Statements))
		}
		stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("%q: statement is %T, expected *ast.ExpressionStatement", tt.input, program.Statements[0])
		}
		if got := stmt.Expression.String(); got != tt.expected {
			t.Errorf("%q parsed as %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestVarStatements(t *testing.T) {
	program := parseProgram(t, "var size = 100\nlet angle\n")
	if len(program.Statements) != 2 {
		t.Fatalf("statement count = %d, expected 2", len(program.Statements))
	}

	first, ok := program.Statements[0].(*ast.VarStatement)
	if !ok {
		t.Fatalf("first statement is %T, expected *ast.VarStatement", program.Statements[0])
	}
	if first.Name.Value != "size" || first.Value == nil {
		t.Errorf("first statement = %q, expected var size = 100", first.String())
	}

	second := program.Statements[1].(*ast.VarStatement)
	if second.Name.Value != "angle" || second.Value != nil {
		t.Errorf("second statement = %q, expected bare declaration of angle", second.String())
	}
}

func TestAssignStatement(t *testing.T) {
	program := parseProgram(t, "x = x + 1")
	stmt, ok := program.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("statement is %T, expected *ast.AssignStatement", program.Statements[0])
	}
	if stmt.String() != "x = (x + 1)" {
		t.Errorf("statement = %q, expected %q", stmt.String(), "x = (x + 1)")
	}
}

func TestIfElseChain(t *testing.T) {
	input := `if x > 0 {
	forward(x)
} else if x < 0 {
	backward(x)
} else {
	right(90)
}`
	program := parseProgram(t, input)

	stmt, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is %T, expected *ast.IfStatement", program.Statements[0])
	}
	if stmt.Else == nil || len(stmt.Else.Statements) != 1 {
		t.Fatal("else branch missing or not a single nested statement")
	}
	nested, ok := stmt.Else.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("else branch holds %T, expected nested *ast.IfStatement", stmt.Else.Statements[0])
	}
	if nested.Else == nil {
		t.Error("nested if lost its else branch")
	}
}

func TestForStatement(t *testing.T) {
	program := parseProgram(t, "for i = 10 to 1 step -3 {\n\tforward(i)\n}")
	stmt, ok := program.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is %T, expected *ast.ForStatement", program.Statements[0])
	}
	if stmt.Var.Value != "i" {
		t.Errorf("loop variable = %q, expected i", stmt.Var.Value)
	}
	if stmt.Step == nil || stmt.Step.String() != "(-3)" {
		t.Errorf("step = %v, expected (-3)", stmt.Step)
	}

	noStep := parseProgram(t, "for i = 1 to 4 { forward(i) }")
	if noStep.Statements[0].(*ast.ForStatement).Step != nil {
		t.Error("omitted step should parse as nil")
	}
}

func TestFunctionStatement(t *testing.T) {
	program := parseProgram(t, "function square(size) {\n\tfor i = 1 to 4 {\n\t\tforward(size)\n\t\tright(90)\n\t}\n}")
	stmt, ok := program.Statements[0].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("statement is %T, expected *ast.FunctionStatement", program.Statements[0])
	}
	if stmt.Name.Value != "square" {
		t.Errorf("function name = %q, expected square", stmt.Name.Value)
	}
	if len(stmt.Parameters) != 1 || stmt.Parameters[0].Value != "size" {
		t.Errorf("parameters = %v, expected [size]", stmt.Parameters)
	}
	if len(stmt.Body.Statements) != 1 {
		t.Errorf("body statement count = %d, expected 1", len(stmt.Body.Statements))
	}
}

func TestReturnStatement(t *testing.T) {
	program := parseProgram(t, "function f() {\n\treturn\n}\nfunction g() {\n\treturn 1 + 2\n}")

	f := program.Statements[0].(*ast.FunctionStatement)
	ret := f.Body.Statements[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Errorf("bare return carries value %v", ret.Value)
	}

	g := program.Statements[1].(*ast.FunctionStatement)
	ret = g.Body.Statements[0].(*ast.ReturnStatement)
	if ret.Value == nil || ret.Value.String() != "(1 + 2)" {
		t.Errorf("return value = %v, expected (1 + 2)", ret.Value)
	}
}

func TestCallExpression(t *testing.T) {
	program := parseProgram(t, "circle(50, x + 1, -y)")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expression is %T, expected *ast.CallExpression", stmt.Expression)
	}
	if call.Function.Value != "circle" || len(call.Arguments) != 3 {
		t.Errorf("call = %q, expected circle with 3 arguments", call.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  string
		line  int
	}{
		{"var = 5", MissingToken, 1},
		{"if x > 0 forward(x)", MissingToken, 1},
		{"while x {", MissingToken, 1},
		{"for i = 1 { }", MissingToken, 1},
		{"forward(1", MissingToken, 1},
		{"var x = ", UnexpectedToken, 1},
		{"x = 1 y = 2", UnexpectedToken, 1},
		{"(1 + 2)(3)", InvalidExpression, 1},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if err == nil {
			t.Fatalf("Parse(%q) succeeded, expected %s", tt.input, tt.kind)
		}
		parseErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("Parse(%q) error type = %T, expected *Error", tt.input, err)
		}
		if parseErr.Kind != tt.kind {
			t.Errorf("Parse(%q) kind = %s, expected %s", tt.input, parseErr.Kind, tt.kind)
		}
		if parseErr.Line != tt.line {
			t.Errorf("Parse(%q) line = %d, expected %d", tt.input, parseErr.Line, tt.line)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	input := "function spiral(n) {\n\tfor i = 1 to n {\n\t\tforward(i * 2)\n\t\tright(91)\n\t}\n}\nspiral(50)"

	first := parseProgram(t, input).String()
	second := parseProgram(t, first).String()
	if first != second {
		t.Errorf("String() is not stable:\nfirst:  %q\nsecond: %q", first, second)
	}
}

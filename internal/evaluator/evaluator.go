// Package evaluator walks the syntax tree and executes it against a
// drawing surface. Evaluation is fail-fast: the first runtime error
// aborts the script.
package evaluator

import (
	"context"
	"fmt"
	"math"

	"quill/internal/ast"
	"quill/internal/canvas"
	"quill/internal/object"
)

// maxCallDepth bounds user-function recursion.
const maxCallDepth = 1000

var (
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
	NIL   = &object.Nil{}
)

// Evaluator executes programs against a surface. It keeps its global
// scope and defined functions across calls, so a REPL can feed it one
// statement at a time.
type Evaluator struct {
	global    *object.Environment
	functions map[string]*object.Function

	surface canvas.Surface
	turtle  *canvas.Turtle

	depth int
	ctx   context.Context
}

func New(surface canvas.Surface) *Evaluator {
	return &Evaluator{
		global:    object.NewEnvironment(),
		functions: make(map[string]*object.Function),
		surface:   surface,
		turtle:    canvas.NewTurtle(surface),
	}
}

// Run executes a whole program in the global scope. It returns the value
// of the last statement.
func (e *Evaluator) Run(ctx context.Context, program *ast.Program) (object.Object, error) {
	e.ctx = ctx

	var result object.Object = NIL
	for _, stmt := range program.Statements {
		if err := e.canceled(stmt); err != nil {
			return nil, err
		}
		result = e.eval(stmt, e.global)
		switch res := result.(type) {
		case *object.RuntimeError:
			return nil, res
		case *object.ReturnValue:
			return res.Value, nil
		}
	}
	return result, nil
}

// EvalStatement executes a single statement in the global scope.
func (e *Evaluator) EvalStatement(ctx context.Context, stmt ast.Statement) (object.Object, error) {
	e.ctx = ctx

	result := e.eval(stmt, e.global)
	switch res := result.(type) {
	case *object.RuntimeError:
		return nil, res
	case *object.ReturnValue:
		return res.Value, nil
	}
	return result, nil
}

// Surface exposes the surface the evaluator draws on.
func (e *Evaluator) Surface() canvas.Surface { return e.surface }

func (e *Evaluator) eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {
	case *ast.VarStatement:
		return e.evalVarStatement(node, env)
	case *ast.AssignStatement:
		return e.evalAssignStatement(node, env)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(node, env)
	case *ast.ExpressionStatement:
		return e.eval(node.Expression, env)
	case *ast.BlockStatement:
		return e.evalBlock(node, object.NewEnclosedEnvironment(env))
	case *ast.IfStatement:
		return e.evalIfStatement(node, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(node, env)
	case *ast.ForStatement:
		return e.evalForStatement(node, env)
	case *ast.FunctionStatement:
		return e.evalFunctionStatement(node)

	case *ast.NumberLiteral:
		return &object.Number{Value: node.Value}
	case *ast.StringLiteral:
		return &object.String{Value: node.Value}
	case *ast.BooleanLiteral:
		return boolObject(node.Value)
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	}

	return e.errAt(node, object.TypeError, "cannot evaluate %T", node)
}

func (e *Evaluator) evalVarStatement(stmt *ast.VarStatement, env *object.Environment) object.Object {
	var val object.Object = &object.Number{Value: 0}
	if stmt.Value != nil {
		val = e.eval(stmt.Value, env)
		if isError(val) {
			return val
		}
	}
	env.Define(stmt.Name.Value, val)
	return NIL
}

func (e *Evaluator) evalAssignStatement(stmt *ast.AssignStatement, env *object.Environment) object.Object {
	val := e.eval(stmt.Value, env)
	if isError(val) {
		return val
	}
	if !env.Assign(stmt.Name.Value, val) {
		return e.errAt(stmt, object.UndefinedVariable,
			"variable %q is not defined", stmt.Name.Value)
	}
	return NIL
}

func (e *Evaluator) evalReturnStatement(stmt *ast.ReturnStatement, env *object.Environment) object.Object {
	var val object.Object = NIL
	if stmt.Value != nil {
		val = e.eval(stmt.Value, env)
		if isError(val) {
			return val
		}
	}
	return &object.ReturnValue{Value: val}
}

// evalBlock runs statements against the given environment, bailing out
// on a return value or error so it unwinds to the caller.
func (e *Evaluator) evalBlock(block *ast.BlockStatement, env *object.Environment) object.Object {
	var result object.Object = NIL
	for _, stmt := range block.Statements {
		result = e.eval(stmt, env)
		if result != nil {
			rt := result.Type()
			if rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
				return result
			}
		}
	}
	return result
}

func (e *Evaluator) evalIfStatement(stmt *ast.IfStatement, env *object.Environment) object.Object {
	cond := e.eval(stmt.Condition, env)
	if isError(cond) {
		return cond
	}
	truth, err := e.truthy(cond, stmt.Condition)
	if err != nil {
		return err
	}

	if truth {
		return e.evalBlock(stmt.Then, object.NewEnclosedEnvironment(env))
	}
	if stmt.Else != nil {
		return e.evalBlock(stmt.Else, object.NewEnclosedEnvironment(env))
	}
	return NIL
}

func (e *Evaluator) evalWhileStatement(stmt *ast.WhileStatement, env *object.Environment) object.Object {
	for {
		if err := e.canceled(stmt); err != nil {
			return err
		}

		cond := e.eval(stmt.Condition, env)
		if isError(cond) {
			return cond
		}
		truth, err := e.truthy(cond, stmt.Condition)
		if err != nil {
			return err
		}
		if !truth {
			return NIL
		}

		result := e.evalBlock(stmt.Body, object.NewEnclosedEnvironment(env))
		if result != nil {
			rt := result.Type()
			if rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
				return result
			}
		}
	}
}

// evalForStatement counts the loop variable from the start bound to the
// end bound inclusive. All three bounds are evaluated once, before the
// first iteration; the variable is scoped to the loop and rebound fresh
// each pass.
func (e *Evaluator) evalForStatement(stmt *ast.ForStatement, env *object.Environment) object.Object {
	from, err := e.evalNumber(stmt.From, env, "for loop start")
	if err != nil {
		return err
	}
	to, err := e.evalNumber(stmt.To, env, "for loop end")
	if err != nil {
		return err
	}
	step := 1.0
	if stmt.Step != nil {
		step, err = e.evalNumber(stmt.Step, env, "for loop step")
		if err != nil {
			return err
		}
	}

	for i := from; (step > 0 && i <= to) || (step < 0 && i >= to); i += step {
		if err := e.canceled(stmt); err != nil {
			return err
		}

		loopEnv := object.NewEnclosedEnvironment(env)
		loopEnv.Define(stmt.Var.Value, &object.Number{Value: i})

		result := e.evalBlock(stmt.Body, loopEnv)
		if result != nil {
			rt := result.Type()
			if rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
				return result
			}
		}
	}
	return NIL
}

func (e *Evaluator) evalFunctionStatement(stmt *ast.FunctionStatement) object.Object {
	e.functions[stmt.Name.Value] = &object.Function{
		Name:       stmt.Name.Value,
		Parameters: stmt.Parameters,
		Body:       stmt.Body,
		Env:        e.global,
	}
	return NIL
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return e.errAt(node, object.UndefinedVariable, "variable %q is not defined", node.Value)
}

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *object.Environment) object.Object {
	right := e.eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch node.Operator {
	case "-":
		num, ok := right.(*object.Number)
		if !ok {
			return e.errAt(node, object.TypeError,
				"operator - expects a number, got %s", right.Type())
		}
		return &object.Number{Value: -num.Value}
	case "not":
		truth, err := e.truthy(right, node.Right)
		if err != nil {
			return err
		}
		return boolObject(!truth)
	}
	return e.errAt(node, object.TypeError, "unknown operator %s", node.Operator)
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *object.Environment) object.Object {
	if node.Operator == "and" || node.Operator == "or" {
		return e.evalLogicalExpression(node, env)
	}

	left := e.eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch {
	case left.Type() == object.NUMBER_OBJ && right.Type() == object.NUMBER_OBJ:
		return e.evalNumberInfix(node, left.(*object.Number).Value, right.(*object.Number).Value)
	case node.Operator == "==" || node.Operator == "!=":
		return e.evalEquality(node, left, right)
	}

	return e.errAt(node, object.TypeError,
		"operator %s is not defined for %s and %s", node.Operator, left.Type(), right.Type())
}

// evalLogicalExpression short-circuits: the right side only runs when the
// left side has not already decided the result.
func (e *Evaluator) evalLogicalExpression(node *ast.InfixExpression, env *object.Environment) object.Object {
	left := e.eval(node.Left, env)
	if isError(left) {
		return left
	}
	leftTruth, err := e.truthy(left, node.Left)
	if err != nil {
		return err
	}

	if node.Operator == "and" && !leftTruth {
		return FALSE
	}
	if node.Operator == "or" && leftTruth {
		return TRUE
	}

	right := e.eval(node.Right, env)
	if isError(right) {
		return right
	}
	rightTruth, err := e.truthy(right, node.Right)
	if err != nil {
		return err
	}
	return boolObject(rightTruth)
}

func (e *Evaluator) evalNumberInfix(node *ast.InfixExpression, left, right float64) object.Object {
	switch node.Operator {
	case "+":
		return &object.Number{Value: left + right}
	case "-":
		return &object.Number{Value: left - right}
	case "*":
		return &object.Number{Value: left * right}
	case "/":
		if right == 0 {
			return e.errAt(node, object.DivisionByZero, "division by zero")
		}
		return &object.Number{Value: left / right}
	case "%":
		if right == 0 {
			return e.errAt(node, object.DivisionByZero, "modulo by zero")
		}
		return &object.Number{Value: math.Mod(left, right)}
	case "^":
		return &object.Number{Value: math.Pow(left, right)}
	case "<":
		return boolObject(left < right)
	case "<=":
		return boolObject(left <= right)
	case ">":
		return boolObject(left > right)
	case ">=":
		return boolObject(left >= right)
	case "==":
		return boolObject(left == right)
	case "!=":
		return boolObject(left != right)
	}
	return e.errAt(node, object.TypeError, "unknown operator %s", node.Operator)
}

// evalEquality compares values of the same non-number type. Comparing
// values of different types is an error rather than silently false.
func (e *Evaluator) evalEquality(node *ast.InfixExpression, left, right object.Object) object.Object {
	if left.Type() != right.Type() {
		return e.errAt(node, object.TypeError,
			"cannot compare %s with %s", left.Type(), right.Type())
	}

	var equal bool
	switch l := left.(type) {
	case *object.String:
		equal = l.Value == right.(*object.String).Value
	case *object.Boolean:
		equal = l.Value == right.(*object.Boolean).Value
	case *object.Nil:
		equal = true
	default:
		return e.errAt(node, object.TypeError,
			"operator %s is not defined for %s", node.Operator, left.Type())
	}

	if node.Operator == "!=" {
		equal = !equal
	}
	return boolObject(equal)
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *object.Environment) object.Object {
	name := node.Function.Value
	if alias, ok := commandAliases[name]; ok {
		name = alias
	}

	args := make([]object.Object, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		val := e.eval(arg, env)
		if isError(val) {
			return val
		}
		args = append(args, val)
	}

	if cmd, ok := drawingCommands[name]; ok {
		return cmd(e, node, args)
	}
	if b, ok := builtins[name]; ok {
		return e.callBuiltin(b, node, args)
	}
	if fn, ok := e.functions[name]; ok {
		return e.callFunction(fn, node, args)
	}

	return e.errAt(node, object.UndefinedFunction, "function %q is not defined", node.Function.Value)
}

// callFunction runs a user function. Its scope chain hangs off the
// global scope, not the caller's, so locals never leak between calls.
func (e *Evaluator) callFunction(fn *object.Function, node *ast.CallExpression, args []object.Object) object.Object {
	if len(args) != len(fn.Parameters) {
		return e.errAt(node, object.ArgumentCountMismatch,
			"function %q expects %d argument(s), got %d", fn.Name, len(fn.Parameters), len(args))
	}

	if e.depth >= maxCallDepth {
		return e.errAt(node, object.RecursionDepth,
			"call depth exceeds %d in function %q", maxCallDepth, fn.Name)
	}
	e.depth++
	defer func() { e.depth-- }()

	if err := e.canceled(node); err != nil {
		return err
	}

	fnEnv := object.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		fnEnv.Define(param.Value, args[i])
	}

	result := e.evalBlock(fn.Body, fnEnv)
	if ret, ok := result.(*object.ReturnValue); ok {
		return ret.Value
	}
	if isError(result) {
		return result
	}
	// without an explicit return a function yields nil
	return NIL
}

func (e *Evaluator) evalNumber(expr ast.Expression, env *object.Environment, what string) (float64, object.Object) {
	val := e.eval(expr, env)
	if isError(val) {
		return 0, val
	}
	num, ok := val.(*object.Number)
	if !ok {
		return 0, e.errAt(expr, object.TypeError, "%s must be a number, got %s", what, val.Type())
	}
	return num.Value, nil
}

// truthy interprets a value as a condition. Booleans are themselves,
// numbers are true when nonzero, everything else is an error.
func (e *Evaluator) truthy(obj object.Object, node ast.Node) (bool, object.Object) {
	switch obj := obj.(type) {
	case *object.Boolean:
		return obj.Value, nil
	case *object.Number:
		return obj.Value != 0, nil
	}
	return false, e.errAt(node, object.TypeError, "cannot use %s as a condition", obj.Type())
}

func (e *Evaluator) canceled(node ast.Node) *object.RuntimeError {
	if e.ctx != nil && e.ctx.Err() != nil {
		return e.errAt(node, object.Canceled, "evaluation canceled: %v", e.ctx.Err())
	}
	return nil
}

func (e *Evaluator) errAt(node ast.Node, kind, format string, args ...any) *object.RuntimeError {
	line, column := node.Pos()
	return &object.RuntimeError{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

func boolObject(b bool) *object.Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

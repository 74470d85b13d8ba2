package evaluator

import (
	"strconv"
	"strings"

	"quill/internal/ast"
	"quill/internal/canvas"
	"quill/internal/object"
)

// drawingCommand executes one drawing call against the turtle and
// surface. Commands validate their own argument counts and types.
type drawingCommand func(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object

// commandAliases maps shorthand names onto their canonical commands.
var commandAliases = map[string]string{
	"fd":     "forward",
	"bk":     "backward",
	"back":   "backward",
	"lt":     "left",
	"rt":     "right",
	"pu":     "penup",
	"pd":     "pendown",
	"rect":   "rectangle",
	"pos":    "goto",
	"setpos": "goto",
}

var drawingCommands = map[string]drawingCommand{
	"forward":    cmdForward,
	"backward":   cmdBackward,
	"left":       cmdLeft,
	"right":      cmdRight,
	"goto":       cmdGoto,
	"home":       cmdHome,
	"setheading": cmdSetHeading,
	"penup":      cmdPenUp,
	"pendown":    cmdPenDown,
	"color":      cmdColor,
	"width":      cmdWidth,
	"fill":       cmdFill,
	"nofill":     cmdNoFill,
	"circle":     cmdCircle,
	"rectangle":  cmdRectangle,
	"line":       cmdLine,
	"polygon":    cmdPolygon,
	"arc":        cmdArc,
	"clear":      cmdClear,
	"reset":      cmdReset,
	"show":       cmdShow,
	"hide":       cmdHide,
	"posx":       cmdPosX,
	"posy":       cmdPosY,
	"heading":    cmdHeading,
}

// numericArgs checks the count against the allowed arities and converts
// every argument to a number.
func (e *Evaluator) numericArgs(node *ast.CallExpression, args []object.Object, arities ...int) ([]float64, object.Object) {
	ok := false
	for _, n := range arities {
		if len(args) == n {
			ok = true
			break
		}
	}
	if !ok {
		return nil, e.argCountError(node, args, arities...)
	}

	nums := make([]float64, len(args))
	for i, arg := range args {
		num, isNum := arg.(*object.Number)
		if !isNum {
			return nil, e.errAt(node.Arguments[i], object.InvalidArgumentType,
				"%s expects a number, got %s", node.Function.Value, arg.Type())
		}
		nums[i] = num.Value
	}
	return nums, nil
}

func (e *Evaluator) argCountError(node *ast.CallExpression, args []object.Object, arities ...int) object.Object {
	counts := make([]string, len(arities))
	for i, n := range arities {
		counts[i] = strconv.Itoa(n)
	}
	return e.errAt(node, object.ArgumentCountMismatch,
		"%s expects %s argument(s), got %d",
		node.Function.Value, strings.Join(counts, " or "), len(args))
}

func cmdForward(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 1)
	if err != nil {
		return err
	}
	e.turtle.Forward(nums[0])
	return NIL
}

func cmdBackward(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 1)
	if err != nil {
		return err
	}
	e.turtle.Backward(nums[0])
	return NIL
}

func cmdLeft(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 1)
	if err != nil {
		return err
	}
	e.turtle.Left(nums[0])
	return NIL
}

func cmdRight(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 1)
	if err != nil {
		return err
	}
	e.turtle.Right(nums[0])
	return NIL
}

func cmdGoto(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 2)
	if err != nil {
		return err
	}
	e.turtle.Goto(nums[0], nums[1])
	return NIL
}

func cmdHome(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	e.turtle.Goto(0, 0)
	e.turtle.SetHeading(90)
	return NIL
}

func cmdSetHeading(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 1)
	if err != nil {
		return err
	}
	e.turtle.SetHeading(nums[0])
	return NIL
}

func cmdPenUp(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	e.turtle.PenUp()
	return NIL
}

func cmdPenDown(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	e.turtle.PenDown()
	return NIL
}

func cmdColor(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if len(args) != 1 {
		return e.argCountError(node, args, 1)
	}
	name, ok := args[0].(*object.String)
	if !ok {
		return e.errAt(node.Arguments[0], object.InvalidArgumentType,
			"color expects a string, got %s", args[0].Type())
	}
	e.surface.SetColor(name.Value)
	return NIL
}

func cmdWidth(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 1)
	if err != nil {
		return err
	}
	if nums[0] <= 0 {
		return e.errAt(node.Arguments[0], object.InvalidArgumentType,
			"width expects a positive number, got %v", nums[0])
	}
	e.surface.SetWidth(nums[0])
	return NIL
}

// cmdFill turns shape filling on. An optional argument sets it
// explicitly, so fill(false) works like nofill().
func cmdFill(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if len(args) > 1 {
		return e.argCountError(node, args, 0, 1)
	}
	on := true
	if len(args) == 1 {
		var errObj object.Object
		on, errObj = e.truthy(args[0], node.Arguments[0])
		if errObj != nil {
			return errObj
		}
	}
	e.surface.SetFill(on)
	return NIL
}

func cmdNoFill(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	e.surface.SetFill(false)
	return NIL
}

// cmdCircle draws at the pen position with one argument, or at an
// explicit center with three. The explicit form moves a raised pen to
// the center.
func cmdCircle(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 1, 3)
	if err != nil {
		return err
	}

	cx, cy := e.turtle.Position()
	if len(nums) == 3 {
		cx, cy = nums[1], nums[2]
		if !e.turtle.IsPenDown() {
			e.turtle.MoveTo(cx, cy)
		}
	}
	e.surface.DrawCircle(nums[0], cx, cy)
	return NIL
}

func cmdRectangle(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 2, 4)
	if err != nil {
		return err
	}

	x, y := e.turtle.Position()
	if len(nums) == 4 {
		x, y = nums[2], nums[3]
	}
	e.surface.DrawRectangle(nums[0], nums[1], x, y)
	return NIL
}

func cmdLine(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 4)
	if err != nil {
		return err
	}
	e.surface.DrawLine(nums[0], nums[1], nums[2], nums[3])
	return NIL
}

// cmdPolygon takes flattened x,y pairs for at least three vertices.
func cmdPolygon(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if len(args) < 6 || len(args)%2 != 0 {
		return e.errAt(node, object.ArgumentCountMismatch,
			"polygon expects an even number of at least 6 arguments, got %d", len(args))
	}
	nums, err := e.numericArgs(node, args, len(args))
	if err != nil {
		return err
	}

	points := make([]canvas.Point, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		points = append(points, canvas.Point{X: nums[i], Y: nums[i+1]})
	}
	e.surface.DrawPolygon(points)
	return NIL
}

// cmdArc draws an elliptical arc. Two arguments sweep a full ellipse at
// the pen position, three add the sweep angle, five add the center.
func cmdArc(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, 2, 3, 5)
	if err != nil {
		return err
	}

	angle := 360.0
	if len(nums) >= 3 {
		angle = nums[2]
	}
	cx, cy := e.turtle.Position()
	if len(nums) == 5 {
		cx, cy = nums[3], nums[4]
	}
	e.surface.DrawArc(nums[0], nums[1], angle, cx, cy)
	return NIL
}

func cmdClear(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	e.surface.Clear()
	return NIL
}

func cmdReset(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	e.turtle.Reset()
	return NIL
}

// cmdHide exists for script compatibility; headless surfaces have
// nothing to hide.
func cmdHide(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	return NIL
}

// cmdShow finalizes the drawing on its surface.
func cmdShow(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	if err := e.surface.Present(); err != nil {
		return e.errAt(node, object.IOError, "presenting drawing: %v", err)
	}
	return NIL
}

func cmdPosX(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	x, _ := e.turtle.Position()
	return &object.Number{Value: x}
}

func cmdPosY(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	_, y := e.turtle.Position()
	return &object.Number{Value: y}
}

func cmdHeading(e *Evaluator, node *ast.CallExpression, args []object.Object) object.Object {
	if _, err := e.numericArgs(node, args, 0); err != nil {
		return err
	}
	return &object.Number{Value: e.turtle.Heading()}
}

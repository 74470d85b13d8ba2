package evaluator

import (
	"math"
	"math/rand/v2"

	"quill/internal/ast"
	"quill/internal/object"
)

// builtin is a pure numeric function. Trigonometry works in degrees to
// match the turtle's headings. fn reports a non-empty reason when the
// arguments are outside its domain.
type builtin struct {
	arity int
	fn    func(args []float64) (float64, string)
}

const degPerRad = 180 / math.Pi

var builtins = map[string]builtin{
	"sin": {1, func(a []float64) (float64, string) { return math.Sin(a[0] / degPerRad), "" }},
	"cos": {1, func(a []float64) (float64, string) { return math.Cos(a[0] / degPerRad), "" }},
	"tan": {1, func(a []float64) (float64, string) { return math.Tan(a[0] / degPerRad), "" }},
	"asin": {1, func(a []float64) (float64, string) {
		if a[0] < -1 || a[0] > 1 {
			return 0, "asin argument must be between -1 and 1"
		}
		return math.Asin(a[0]) * degPerRad, ""
	}},
	"acos": {1, func(a []float64) (float64, string) {
		if a[0] < -1 || a[0] > 1 {
			return 0, "acos argument must be between -1 and 1"
		}
		return math.Acos(a[0]) * degPerRad, ""
	}},
	"atan": {1, func(a []float64) (float64, string) { return math.Atan(a[0]) * degPerRad, "" }},
	"sqrt": {1, func(a []float64) (float64, string) {
		if a[0] < 0 {
			return 0, "sqrt of a negative number"
		}
		return math.Sqrt(a[0]), ""
	}},
	"abs":    {1, func(a []float64) (float64, string) { return math.Abs(a[0]), "" }},
	"floor":  {1, func(a []float64) (float64, string) { return math.Floor(a[0]), "" }},
	"ceil":   {1, func(a []float64) (float64, string) { return math.Ceil(a[0]), "" }},
	"round":  {1, func(a []float64) (float64, string) { return math.Round(a[0]), "" }},
	"min":    {2, func(a []float64) (float64, string) { return math.Min(a[0], a[1]), "" }},
	"max":    {2, func(a []float64) (float64, string) { return math.Max(a[0], a[1]), "" }},
	"random": {0, func([]float64) (float64, string) { return rand.Float64(), "" }},
	"pi":     {0, func([]float64) (float64, string) { return math.Pi, "" }},
	"e":      {0, func([]float64) (float64, string) { return math.E, "" }},
}

func (e *Evaluator) callBuiltin(b builtin, node *ast.CallExpression, args []object.Object) object.Object {
	nums, err := e.numericArgs(node, args, b.arity)
	if err != nil {
		return err
	}

	result, reason := b.fn(nums)
	if reason != "" {
		return e.errAt(node, object.InvalidArgumentType, "%s", reason)
	}
	return &object.Number{Value: result}
}

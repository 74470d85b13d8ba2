package object

import "testing"

func TestNumberInspect(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{5, "5"},
		{2.5, "2.5"},
		{-0.125, "-0.125"},
		{1e21, "1e+21"},
	}

	for _, tt := range tests {
		n := &Number{Value: tt.value}
		if n.Inspect() != tt.expected {
			t.Errorf("Number(%v).Inspect() = %q, expected %q", tt.value, n.Inspect(), tt.expected)
		}
	}
}

func TestRuntimeErrorFormat(t *testing.T) {
	err := &RuntimeError{Kind: DivisionByZero, Line: 3, Column: 9, Message: "division by zero"}
	want := "[  3: 9] DivisionByZero: division by zero"
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}
	if err.Type() != ERROR_OBJ {
		t.Errorf("Type() = %q, expected %q", err.Type(), ERROR_OBJ)
	}
}

func TestEnvironmentScopes(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", &Number{Value: 1})

	inner := NewEnclosedEnvironment(global)
	inner.Define("y", &Number{Value: 2})

	if obj, ok := inner.Get("x"); !ok || obj.(*Number).Value != 1 {
		t.Error("inner scope should see outer binding for x")
	}
	if _, ok := global.Get("y"); ok {
		t.Error("outer scope should not see inner binding for y")
	}

	// shadowing leaves the outer binding alone
	inner.Define("x", &Number{Value: 10})
	if obj, _ := global.Get("x"); obj.(*Number).Value != 1 {
		t.Error("shadowing in inner scope changed the outer binding")
	}
}

func TestEnvironmentAssign(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", &Number{Value: 1})
	inner := NewEnclosedEnvironment(global)

	if !inner.Assign("x", &Number{Value: 5}) {
		t.Fatal("Assign to outer binding failed")
	}
	if obj, _ := global.Get("x"); obj.(*Number).Value != 5 {
		t.Error("Assign from inner scope did not update the outer binding")
	}

	if inner.Assign("missing", &Number{Value: 1}) {
		t.Error("Assign to an undefined name should fail")
	}
}

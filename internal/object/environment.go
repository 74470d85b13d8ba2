package object

// Environment is one scope level in the lexical scope chain. Lookups walk
// outward through Outer; the chain root is the global scope.
type Environment struct {
	Bindings map[string]Object
	Outer    *Environment
}

func NewEnvironment() *Environment {
	return &Environment{Bindings: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.Outer = outer
	return env
}

// Get resolves a name, searching enclosing scopes.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.Bindings[name]
	if !ok && e.Outer != nil {
		return e.Outer.Get(name)
	}
	return obj, ok
}

// Define binds a name in this scope, shadowing any outer binding.
func (e *Environment) Define(name string, val Object) {
	e.Bindings[name] = val
}

// Assign rebinds the nearest existing binding for name. It reports false
// when no scope in the chain defines the name.
func (e *Environment) Assign(name string, val Object) bool {
	if _, ok := e.Bindings[name]; ok {
		e.Bindings[name] = val
		return true
	}
	if e.Outer != nil {
		return e.Outer.Assign(name, val)
	}
	return false
}

package evaluator

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// NewBlockEnvironment creates a loop-iteration scope: names assigned in
// it that are not declared locally fall through to the enclosing scope,
// so only explicitly declared bindings (the loop variable) are
// iteration-local.
func NewBlockEnvironment(outer *Environment) *Environment {
	env := NewEnclosedEnvironment(outer)
	env.block = true
	return env
}

// Environment is one lexical scope: a name-to-value mapping with a link
// to the enclosing scope.
type Environment struct {
	store map[string]Object
	uses  map[string]bool
	outer *Environment
	block bool
}

// Get resolves a name, walking the scope chain outward.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Declare creates or overwrites a binding in this scope, never walking
// the chain.
func (e *Environment) Declare(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Assign stores a value under a name. Names imported with `use` write
// through to the enclosing binding; otherwise an existing local binding
// is updated, and a new name is declared in the nearest function scope.
func (e *Environment) Assign(name string, val Object) Object {
	if e.uses[name] && e.outer != nil {
		if !e.outer.update(name, val) {
			e.root().store[name] = val
		}
		return val
	}
	if _, ok := e.store[name]; ok {
		e.store[name] = val
		return val
	}
	if e.block && e.outer != nil {
		return e.outer.Assign(name, val)
	}
	e.store[name] = val
	return val
}

// Use marks a name as imported from the enclosing scope for writing.
func (e *Environment) Use(name string) {
	if e.uses == nil {
		e.uses = make(map[string]bool)
	}
	e.uses[name] = true
}

// update overwrites the nearest existing binding of name, reporting
// whether one was found.
func (e *Environment) update(name string, val Object) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = val
		return true
	}
	if e.outer != nil {
		return e.outer.update(name, val)
	}
	return false
}

func (e *Environment) root() *Environment {
	r := e
	for r.outer != nil {
		r = r.outer
	}
	return r
}

package evaluator

import (
	"fmt"

	"github.com/oinkcat/scripting-lang/internal/ast"
)

func (e *Evaluator) evalAssignStatement(stmt *ast.AssignStatement, env *Environment) Object {
	value := e.Eval(stmt.Value, env)
	if isError(value) {
		return value
	}

	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		if stmt.Operator != "=" {
			current, ok := env.Get(target.Value)
			if !ok {
				return newError(NameError, "identifier not found: %s", target.Value)
			}
			value = e.applyBinaryOp(stmt.Operator[:1], current, value)
			if isError(value) {
				return value
			}
		}
		env.Assign(target.Value, value)
		return NULL

	case *ast.IndexExpression:
		return e.evalItemSet(target, stmt.Operator, value, env)

	default:
		return newError(RuntimeError, "invalid assignment target")
	}
}

// evalItemSet assigns to an array element or hash entry, optionally
// applying a compound math operator first.
func (e *Evaluator) evalItemSet(target *ast.IndexExpression, op string, value Object, env *Environment) Object {
	left := e.Eval(target.Left, env)
	if isError(left) {
		return left
	}
	index := e.Eval(target.Index, env)
	if isError(index) {
		return index
	}

	switch container := left.(type) {
	case *Array:
		idx, err := arrayIndex(container, index)
		if err != nil {
			return err
		}
		if op != "=" {
			value = e.applyBinaryOp(op[:1], container.Elements[idx], value)
			if isError(value) {
				return value
			}
		}
		container.Elements[idx] = value
		return NULL

	case *Hash:
		key, ok := index.(*String)
		if !ok {
			return newError(TypeError, "hash key must be a string, got %s", index.Type())
		}
		if op != "=" {
			current, found := container.Get(key.Value)
			if !found {
				return newError(NameError, "key not found: %s", key.Value)
			}
			value = e.applyBinaryOp(op[:1], current, value)
			if isError(value) {
				return value
			}
		}
		container.Set(key.Value, value)
		return NULL

	default:
		return newError(TypeError, "cannot assign to element of %s", left.Type())
	}
}

func (e *Evaluator) evalIfStatement(stmt *ast.IfStatement, env *Environment) Object {
	for _, branch := range stmt.Branches {
		cond := e.Eval(branch.Condition, env)
		if isError(cond) {
			return cond
		}
		if isTruthy(cond) {
			return e.Eval(branch.Body, env)
		}
	}
	if stmt.Else != nil {
		return e.Eval(stmt.Else, env)
	}
	return NULL
}

func (e *Evaluator) evalWhileStatement(stmt *ast.WhileStatement, env *Environment) Object {
	for {
		cond := e.Eval(stmt.Condition, env)
		if isError(cond) {
			return cond
		}
		if !isTruthy(cond) {
			return NULL
		}

		result := e.Eval(stmt.Body, NewBlockEnvironment(env))
		if done, out := loopResult(result); done {
			return out
		}
	}
}

func (e *Evaluator) evalForEachStatement(stmt *ast.ForEachStatement, env *Environment) Object {
	collection := e.Eval(stmt.Collection, env)
	if isError(collection) {
		return collection
	}

	seq, err := iterationSequence(collection)
	if err != nil {
		return err
	}

	for _, item := range seq {
		iterEnv := NewBlockEnvironment(env)
		iterEnv.Declare(stmt.Var, item)

		result := e.Eval(stmt.Body, iterEnv)
		if done, out := loopResult(result); done {
			return out
		}
	}
	return NULL
}

// iterationSequence snapshots the ordered elements of a collection at
// loop entry: array elements in index order, hash keys in insertion
// order. Mutation during iteration is not observed by the loop.
func iterationSequence(collection Object) ([]Object, *Error) {
	switch c := collection.(type) {
	case *Array:
		seq := make([]Object, len(c.Elements))
		copy(seq, c.Elements)
		return seq, nil
	case *Hash:
		keys := c.Keys()
		seq := make([]Object, len(keys))
		for i, k := range keys {
			seq[i] = &String{Value: k}
		}
		return seq, nil
	default:
		return nil, newError(TypeError, "%s is not iterable", collection.Type())
	}
}

// loopResult interprets a loop body result: (true, out) terminates the
// loop evaluation with out, (false, _) continues with the next pass.
func loopResult(result Object) (bool, Object) {
	switch r := result.(type) {
	case *Error, *ReturnValue:
		return true, result
	case *BreakSignal:
		if r.Depth > 1 {
			return true, &BreakSignal{Depth: r.Depth - 1}
		}
		return true, NULL
	case *ContinueSignal:
		if r.Depth > 1 {
			return true, &ContinueSignal{Depth: r.Depth - 1}
		}
		return false, nil
	}
	return false, nil
}

func (e *Evaluator) evalReturnStatement(stmt *ast.ReturnStatement, env *Environment) Object {
	if stmt.Value == nil {
		return &ReturnValue{Value: NULL}
	}
	value := e.Eval(stmt.Value, env)
	if isError(value) {
		return value
	}
	return &ReturnValue{Value: value}
}

func (e *Evaluator) evalEmitStatement(stmt *ast.EmitStatement, env *Environment) Object {
	value := e.Eval(stmt.Value, env)
	if isError(value) {
		return value
	}

	if e.EmitHandler != nil {
		e.EmitHandler(stmt.Key, value)
	} else {
		fmt.Fprintln(e.Out, value.Inspect())
	}
	return NULL
}

// evalUseStatement declares host-shared variables at the top level, or
// imports enclosing bindings for writing inside a function body.
func (e *Evaluator) evalUseStatement(stmt *ast.UseStatement, env *Environment) Object {
	if env == e.GlobalEnv {
		for _, name := range stmt.Names {
			if _, ok := env.Get(name); !ok {
				env.Declare(name, NULL)
			}
		}
		return NULL
	}

	for _, name := range stmt.Names {
		env.Use(name)
	}
	return NULL
}

func (e *Evaluator) evalImportStatement(stmt *ast.ImportStatement, env *Environment) Object {
	if !stmt.Native {
		return newError(RuntimeError, "script modules are not supported, use 'import native'")
	}
	if e.Modules == nil {
		return newError(RuntimeError, "no native modules available")
	}

	for _, name := range stmt.Names {
		mod, ok := e.Modules.Resolve(name)
		if !ok {
			return newError(NameError, "unknown native module: %s", name)
		}
		env.Declare(name, mod)
	}
	return NULL
}

package evaluator

import (
	"github.com/oinkcat/scripting-lang/internal/ast"
)

// evalCallExpression evaluates a call. When the callee is a dotted
// access on a hash and the field holds a method (a `ref` field of a
// `new {...}` object), the hash itself is bound as the leading `self`
// argument. Any other access path yields the plain function, so a
// method value copied out of its hash must be given self explicitly.
func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	var callee Object
	var receiver Object

	if access, ok := node.Callee.(*ast.IndexExpression); ok && access.Dot {
		left := e.Eval(access.Left, env)
		if isError(left) {
			return left
		}
		index := e.Eval(access.Index, env)
		if isError(index) {
			return index
		}

		if hash, ok := left.(*Hash); ok {
			key := index.(*String).Value // dotted access always has a string key
			if value, found := hash.Get(key); found {
				if method, ok := value.(*Method); ok {
					callee = method.Fn
					receiver = hash
				} else {
					callee = value
				}
			} else {
				return newError(NameError, "key not found: %s", key)
			}
		} else {
			callee = e.readElement(left, index)
			if isError(callee) {
				return callee
			}
		}
	} else {
		callee = e.Eval(node.Callee, env)
		if isError(callee) {
			return callee
		}
	}

	args := make([]Object, 0, len(node.Arguments)+1)
	if receiver != nil {
		args = append(args, receiver)
	}
	for _, argExpr := range node.Arguments {
		arg := e.Eval(argExpr, env)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	return e.ApplyFunction(callee, args)
}

// ApplyFunction applies a function value to already-evaluated
// arguments. The call environment is parented at the function's
// captured environment, not at the call site.
func (e *Evaluator) ApplyFunction(fn Object, args []Object) Object {
	switch fn := fn.(type) {
	case *Function:
		if len(args) != len(fn.Parameters) {
			return newError(ArityError, "%s takes %d argument(s), got %d",
				fn.Name, len(fn.Parameters), len(args))
		}

		callEnv := NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Parameters {
			callEnv.Declare(param, args[i])
		}

		result := e.Eval(fn.Body, callEnv)
		switch r := result.(type) {
		case *Error:
			return r
		case *ReturnValue:
			return r.Value
		case *BreakSignal, *ContinueSignal:
			return newError(RuntimeError, "break or continue outside of a loop")
		}
		// No explicit return: the call yields null
		return NULL

	case *Builtin:
		return fn.Fn(args...)

	default:
		return newError(RuntimeError, "%s is not callable", fn.Type())
	}
}

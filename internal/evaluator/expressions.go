package evaluator

import (
	"math"
	"strings"

	"github.com/oinkcat/scripting-lang/internal/ast"
)

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if value, ok := env.Get(node.Value); ok {
		return value
	}
	return newError(NameError, "identifier not found: %s", node.Value)
}

func (e *Evaluator) evalInterpolatedString(node *ast.InterpolatedString, env *Environment) Object {
	var sb strings.Builder

	for _, part := range node.Parts {
		value := e.Eval(part, env)
		if isError(value) {
			return value
		}
		sb.WriteString(value.Inspect())
	}
	return &String{Value: sb.String()}
}

func (e *Evaluator) evalArrayLiteral(node *ast.ArrayLiteral, env *Environment) Object {
	elements := make([]Object, 0, len(node.Elements))

	for _, el := range node.Elements {
		value := e.Eval(el, env)
		if isError(value) {
			return value
		}
		elements = append(elements, value)
	}
	return &Array{Elements: elements}
}

func (e *Evaluator) evalHashLiteral(node *ast.HashLiteral, env *Environment) Object {
	hash := NewHash()

	for _, pair := range node.Pairs {
		value := e.Eval(pair.Value, env)
		if isError(value) {
			return value
		}
		hash.Set(pair.Key, value)
	}
	return hash
}

// evalNewObject builds a hash whose `ref` fields are tagged as methods:
// calling such a field through dotted access binds the hash as self.
func (e *Evaluator) evalNewObject(node *ast.NewObject, env *Environment) Object {
	hash := NewHash()

	for _, pair := range node.Hash.Pairs {
		value := e.Eval(pair.Value, env)
		if isError(value) {
			return value
		}
		if _, isRef := pair.Value.(*ast.RefExpression); isRef {
			value = &Method{Fn: value}
		}
		hash.Set(pair.Key, value)
	}
	return hash
}

// evalRefExpression resolves `ref name` or `ref module.name` to the
// named function value.
func (e *Evaluator) evalRefExpression(node *ast.RefExpression, env *Environment) Object {
	if node.Module != "" {
		mod, ok := env.Get(node.Module)
		if !ok {
			return newError(NameError, "identifier not found: %s", node.Module)
		}
		module, ok := mod.(*Module)
		if !ok {
			return newError(TypeError, "%s is not a module", node.Module)
		}
		attr, ok := module.Attrs[node.Name]
		if !ok {
			return newError(NameError, "%s not found in module %s", node.Name, module.Name)
		}
		return attr
	}

	value, ok := env.Get(node.Name)
	if !ok {
		return newError(NameError, "identifier not found: %s", node.Name)
	}
	switch value.(type) {
	case *Function, *Builtin:
		return value
	}
	return newError(TypeError, "%s is not a function", node.Name)
}

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *Environment) Object {
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch node.Operator {
	case "-":
		num, ok := right.(*Number)
		if !ok {
			return newError(TypeError, "cannot negate %s", right.Type())
		}
		return &Number{Value: -num.Value}
	case "not":
		return nativeBool(!isTruthy(right))
	}
	return newError(RuntimeError, "unknown prefix operator %s", node.Operator)
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	return e.applyBinaryOp(node.Operator, left, right)
}

func (e *Evaluator) applyBinaryOp(op string, left, right Object) Object {
	switch {
	case op == "&":
		return &String{Value: left.Inspect() + right.Inspect()}
	case op == "or" || op == "and" || op == "xor":
		return evalLogicOp(op, left, right)
	case op == "==" || op == "!=":
		return evalEqualityOp(op, left, right)
	}

	lnum, lok := left.(*Number)
	rnum, rok := right.(*Number)
	if lok && rok {
		return evalNumberOp(op, lnum.Value, rnum.Value)
	}

	lstr, lok := left.(*String)
	rstr, rok := right.(*String)
	if lok && rok {
		return evalStringOp(op, lstr.Value, rstr.Value)
	}

	return newError(TypeError, "operator %s not defined for %s and %s",
		op, left.Type(), right.Type())
}

func evalLogicOp(op string, left, right Object) Object {
	l, r := isTruthy(left), isTruthy(right)
	switch op {
	case "or":
		return nativeBool(l || r)
	case "and":
		return nativeBool(l && r)
	case "xor":
		return nativeBool(l != r)
	}
	return newError(RuntimeError, "unknown logic operator %s", op)
}

// evalEqualityOp compares numbers, strings, booleans and null by value;
// arrays and hashes compare by identity (aliases of the same container
// are equal).
func evalEqualityOp(op string, left, right Object) Object {
	var equal bool

	switch l := left.(type) {
	case *Number:
		r, ok := right.(*Number)
		equal = ok && l.Value == r.Value
	case *String:
		r, ok := right.(*String)
		equal = ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		equal = ok && l.Value == r.Value
	case *Null:
		_, equal = right.(*Null)
	default:
		equal = left == right
	}

	if op == "!=" {
		equal = !equal
	}
	return nativeBool(equal)
}

func evalNumberOp(op string, left, right float64) Object {
	switch op {
	case "+":
		return &Number{Value: left + right}
	case "-":
		return &Number{Value: left - right}
	case "*":
		return &Number{Value: left * right}
	case "/":
		if right == 0 {
			return newError(RuntimeError, "division by zero")
		}
		return &Number{Value: left / right}
	case "%":
		if right == 0 {
			return newError(RuntimeError, "division by zero")
		}
		return &Number{Value: math.Mod(left, right)}
	case "<":
		return nativeBool(left < right)
	case "<=":
		return nativeBool(left <= right)
	case ">":
		return nativeBool(left > right)
	case ">=":
		return nativeBool(left >= right)
	}
	return newError(TypeError, "operator %s not defined for numbers", op)
}

func evalStringOp(op string, left, right string) Object {
	switch op {
	case "<":
		return nativeBool(left < right)
	case "<=":
		return nativeBool(left <= right)
	case ">":
		return nativeBool(left > right)
	case ">=":
		return nativeBool(left >= right)
	}
	return newError(TypeError, "operator %s not defined for strings", op)
}

func (e *Evaluator) evalCondExpression(node *ast.CondExpression, env *Environment) Object {
	cond := e.Eval(node.Condition, env)
	if isError(cond) {
		return cond
	}
	if isTruthy(cond) {
		return e.Eval(node.Then, env)
	}
	return e.Eval(node.Else, env)
}

// evalIndexExpression reads an element: array indexing, hash entry or
// module attribute access. A bare read of a method field yields the
// plain function without a receiver; binding happens only on dotted
// calls (see evalCallExpression).
func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	index := e.Eval(node.Index, env)
	if isError(index) {
		return index
	}
	return e.readElement(left, index)
}

func (e *Evaluator) readElement(left, index Object) Object {
	switch container := left.(type) {
	case *Array:
		idx, err := arrayIndex(container, index)
		if err != nil {
			return err
		}
		return container.Elements[idx]

	case *Hash:
		key, ok := index.(*String)
		if !ok {
			return newError(TypeError, "hash key must be a string, got %s", index.Type())
		}
		value, found := container.Get(key.Value)
		if !found {
			return NULL
		}
		if method, ok := value.(*Method); ok {
			return method.Fn
		}
		return value

	case *Module:
		key, ok := index.(*String)
		if !ok {
			return newError(TypeError, "module member name must be a string")
		}
		attr, found := container.Attrs[key.Value]
		if !found {
			return newError(NameError, "%s not found in module %s", key.Value, container.Name)
		}
		return attr

	default:
		return newError(TypeError, "cannot index %s", left.Type())
	}
}

func arrayIndex(arr *Array, index Object) (int, *Error) {
	num, ok := index.(*Number)
	if !ok {
		return 0, newError(TypeError, "array index must be a number, got %s", index.Type())
	}
	idx := int(num.Value)
	if float64(idx) != num.Value {
		return 0, newError(TypeError, "array index must be an integer")
	}
	if idx < 0 || idx >= len(arr.Elements) {
		return 0, newError(RuntimeError, "array index %d out of range", idx)
	}
	return idx, nil
}

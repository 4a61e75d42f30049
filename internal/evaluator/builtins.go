package evaluator

import (
	"strconv"
	"strings"
)

// Builtins is the implicit native function surface available to every
// script without an import.
var Builtins = map[string]*Builtin{
	"Add": {
		Name: "Add",
		Fn: func(args ...Object) Object {
			if err := checkArity("Add", 2, args); err != nil {
				return err
			}
			arr, ok := args[0].(*Array)
			if !ok {
				return newError(TypeError, "Add expects an array, got %s", args[0].Type())
			}
			arr.Elements = append(arr.Elements, args[1])
			return arr
		},
	},
	"Find": {
		Name: "Find",
		Fn: func(args ...Object) Object {
			if err := checkArity("Find", 2, args); err != nil {
				return err
			}
			switch c := args[0].(type) {
			case *Array:
				for _, el := range c.Elements {
					if isTruthy(evalEqualityOp("==", el, args[1])) {
						return TRUE
					}
				}
				return FALSE
			case *Hash:
				key, ok := args[1].(*String)
				if !ok {
					return FALSE
				}
				_, found := c.Get(key.Value)
				return nativeBool(found)
			default:
				return newError(TypeError, "Find expects an array or hash, got %s", args[0].Type())
			}
		},
	},
	"RangeArray": {
		Name: "RangeArray",
		Fn: func(args ...Object) Object {
			if err := checkArity("RangeArray", 2, args); err != nil {
				return err
			}
			from, ok1 := args[0].(*Number)
			to, ok2 := args[1].(*Number)
			if !ok1 || !ok2 {
				return newError(TypeError, "RangeArray expects two numbers")
			}

			a, b := int(from.Value), int(to.Value)
			if a > b {
				return &Array{Elements: []Object{}}
			}
			elements := make([]Object, 0, b-a+1)
			for i := a; i <= b; i++ {
				elements = append(elements, &Number{Value: float64(i)})
			}
			return &Array{Elements: elements}
		},
	},
	"Len": {
		Name: "Len",
		Fn: func(args ...Object) Object {
			if err := checkArity("Len", 1, args); err != nil {
				return err
			}
			switch c := args[0].(type) {
			case *Array:
				return &Number{Value: float64(len(c.Elements))}
			case *Hash:
				return &Number{Value: float64(c.Len())}
			case *String:
				return &Number{Value: float64(len(c.Value))}
			default:
				return newError(TypeError, "Len expects an array, hash or string, got %s", args[0].Type())
			}
		},
	},
	"Keys": {
		Name: "Keys",
		Fn: func(args ...Object) Object {
			if err := checkArity("Keys", 1, args); err != nil {
				return err
			}
			hash, ok := args[0].(*Hash)
			if !ok {
				return newError(TypeError, "Keys expects a hash, got %s", args[0].Type())
			}
			keys := hash.Keys()
			elements := make([]Object, len(keys))
			for i, k := range keys {
				elements[i] = &String{Value: k}
			}
			return &Array{Elements: elements}
		},
	},
	"Str": {
		Name: "Str",
		Fn: func(args ...Object) Object {
			if err := checkArity("Str", 1, args); err != nil {
				return err
			}
			return &String{Value: args[0].Inspect()}
		},
	},
	"Num": {
		Name: "Num",
		Fn: func(args ...Object) Object {
			if err := checkArity("Num", 1, args); err != nil {
				return err
			}
			switch v := args[0].(type) {
			case *Number:
				return v
			case *String:
				f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
				if err != nil {
					return newError(TypeError, "cannot convert %q to number", v.Value)
				}
				return &Number{Value: f}
			default:
				return newError(TypeError, "Num expects a number or string, got %s", args[0].Type())
			}
		},
	},
}

// RegisterBuiltins installs the builtin functions into an environment.
func RegisterBuiltins(env *Environment) {
	for name, builtin := range Builtins {
		env.Declare(name, builtin)
	}
}

func checkArity(name string, want int, args []Object) *Error {
	if len(args) != want {
		return newError(ArityError, "%s takes %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

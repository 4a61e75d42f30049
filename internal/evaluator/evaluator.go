package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/oinkcat/scripting-lang/internal/ast"
)

// ModuleResolver supplies native module values for `import native`.
// Resolution is host-controlled.
type ModuleResolver interface {
	Resolve(name string) (Object, bool)
}

// EmitFunc receives emitted values. Key is "" for a plain `emit`, or
// the identifier from `emit value as key`.
type EmitFunc func(key string, value Object)

type Evaluator struct {
	// Out receives one line per emitted value when no EmitHandler is
	// installed.
	Out io.Writer
	// EmitHandler, when set, receives every emitted value instead.
	EmitHandler EmitFunc
	// Modules resolves native module imports.
	Modules ModuleResolver
	// GlobalEnv is the outermost scope of the current program run.
	GlobalEnv *Environment

	// evalDepth guards against unbounded recursion in user programs.
	evalDepth int
}

// maxEvalDepth is the maximum nesting depth of Eval calls.
const maxEvalDepth = 10000

func New() *Evaluator {
	return &Evaluator{Out: os.Stdout}
}

var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBool(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

func newError(kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// RunProgram executes a parsed program: function definitions, imports
// and top-level `use` declarations are installed first, then the
// remaining statements run in order. The global environment is
// retained on the evaluator for host inspection of shared variables.
func (e *Evaluator) RunProgram(program *ast.Program, env *Environment) Object {
	e.GlobalEnv = env

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.FunctionStatement, *ast.ImportStatement, *ast.UseStatement:
			if result := e.Eval(s, env); isError(result) {
				return result
			}
		}
	}

	var result Object = NULL
	for _, stmt := range program.Statements {
		switch stmt.(type) {
		case *ast.FunctionStatement, *ast.ImportStatement, *ast.UseStatement:
			continue
		}
		result = e.Eval(stmt, env)
		switch r := result.(type) {
		case *Error:
			return r
		case *ReturnValue:
			return r.Value
		case *BreakSignal, *ContinueSignal:
			return newError(RuntimeError, "break or continue outside of a loop")
		}
	}
	return result
}

func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	e.evalDepth++
	if e.evalDepth > maxEvalDepth {
		e.evalDepth--
		return newError(RuntimeError, "maximum recursion depth exceeded")
	}
	defer func() { e.evalDepth-- }()

	obj := e.evalCore(node, env)
	if err, ok := obj.(*Error); ok && err.Line == 0 {
		if provider, ok := node.(ast.TokenProvider); ok {
			tok := provider.GetToken()
			err.Line = tok.Line
			err.Column = tok.Column
		}
	}
	return obj
}

func (e *Evaluator) evalCore(node ast.Node, env *Environment) Object {
	switch node := node.(type) {
	// Statements
	case *ast.Program:
		return e.RunProgram(node, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.AssignStatement:
		return e.evalAssignStatement(node, env)
	case *ast.IfStatement:
		return e.evalIfStatement(node, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(node, env)
	case *ast.ForEachStatement:
		return e.evalForEachStatement(node, env)
	case *ast.BreakStatement:
		return &BreakSignal{Depth: node.Depth}
	case *ast.ContinueStatement:
		return &ContinueSignal{Depth: node.Depth}
	case *ast.FunctionStatement:
		fn := &Function{
			Name:       node.Name,
			Parameters: node.Parameters,
			Body:       node.Body,
			Env:        env,
		}
		env.Declare(node.Name, fn)
		return NULL
	case *ast.ReturnStatement:
		return e.evalReturnStatement(node, env)
	case *ast.EmitStatement:
		return e.evalEmitStatement(node, env)
	case *ast.UseStatement:
		return e.evalUseStatement(node, env)
	case *ast.ImportStatement:
		return e.evalImportStatement(node, env)

	// Expressions
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.NumberLiteral:
		return &Number{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(node, env)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(node, env)
	case *ast.HashLiteral:
		return e.evalHashLiteral(node, env)
	case *ast.NewObject:
		return e.evalNewObject(node, env)
	case *ast.RefExpression:
		return e.evalRefExpression(node, env)
	case *ast.FunctionLiteral:
		return &Function{
			Name:       "$lambda",
			Parameters: node.Parameters,
			Body:       node.Body,
			Env:        env,
		}
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)
	case *ast.CondExpression:
		return e.evalCondExpression(node, env)
	case *ast.IndexExpression:
		return e.evalIndexExpression(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	}

	return newError(RuntimeError, "unknown AST node %T", node)
}

func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *Environment) Object {
	var result Object = NULL

	for _, stmt := range block.Statements {
		result = e.Eval(stmt, env)
		switch result.(type) {
		case *Error, *ReturnValue, *BreakSignal, *ContinueSignal:
			return result
		}
	}
	return result
}

// isTruthy is the total truthiness function: null, false, zero, the
// empty string and empty collections are falsy, all other values are
// truthy.
func isTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Null:
		return false
	case *Boolean:
		return obj.Value
	case *Number:
		return obj.Value != 0
	case *String:
		return obj.Value != ""
	case *Array:
		return len(obj.Elements) > 0
	case *Hash:
		return obj.Len() > 0
	default:
		return true
	}
}

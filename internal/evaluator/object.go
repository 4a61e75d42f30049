package evaluator

import (
	"fmt"
	"strings"

	"github.com/oinkcat/scripting-lang/internal/ast"
)

type ObjectType string

const (
	NULL_OBJ     = "NULL"
	BOOLEAN_OBJ  = "BOOLEAN"
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	ARRAY_OBJ    = "ARRAY"
	HASH_OBJ     = "HASH"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	METHOD_OBJ   = "METHOD"
	MODULE_OBJ   = "MODULE"
	ERROR_OBJ    = "ERROR"

	RETURN_VALUE_OBJ    = "RETURN_VALUE"
	BREAK_SIGNAL_OBJ    = "BREAK_SIGNAL"
	CONTINUE_SIGNAL_OBJ = "CONTINUE_SIGNAL"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Number is the single numeric type of the language.
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return formatNumber(n.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Array is a mutable ordered sequence with reference semantics: every
// holder of the same *Array observes in-place mutation.
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = inspectQuoted(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Hash is a mutable string-keyed mapping that preserves key insertion
// order for iteration. Like Array it has reference semantics.
type Hash struct {
	keys    []string
	entries map[string]Object
}

func NewHash() *Hash {
	return &Hash{entries: make(map[string]Object)}
}

func (h *Hash) Get(key string) (Object, bool) {
	v, ok := h.entries[key]
	return v, ok
}

func (h *Hash) Set(key string, value Object) {
	if _, exists := h.entries[key]; !exists {
		h.keys = append(h.keys, key)
	}
	h.entries[key] = value
}

// Keys returns hash keys in insertion order.
func (h *Hash) Keys() []string {
	return h.keys
}

func (h *Hash) Len() int { return len(h.keys) }

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string {
	parts := make([]string, 0, len(h.keys))
	for _, k := range h.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, inspectQuoted(h.entries[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Function is a user-defined function paired with its defining
// environment.
type Function struct {
	Name       string
	Parameters []string
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return fmt.Sprintf("func %s(%s)", f.Name, strings.Join(f.Parameters, ", "))
}

type BuiltinFunction func(args ...Object) Object

// Builtin is a host-provided native function.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "native func " + b.Name }

// Method tags a function stored in a `new {...}` object field via
// `ref`. It never leaves its hash: a dotted call unwraps it and binds
// the owning hash as self, a bare field read yields the plain function.
type Method struct {
	Fn Object
}

func (m *Method) Type() ObjectType { return METHOD_OBJ }
func (m *Method) Inspect() string  { return m.Fn.Inspect() }

// Module is a native module value bound by `import native`.
type Module struct {
	Name  string
	Attrs map[string]Object
}

func (m *Module) Type() ObjectType { return MODULE_OBJ }
func (m *Module) Inspect() string  { return "module " + m.Name }

type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// BreakSignal unwinds Depth enclosing loops.
type BreakSignal struct {
	Depth int
}

func (bs *BreakSignal) Type() ObjectType { return BREAK_SIGNAL_OBJ }
func (bs *BreakSignal) Inspect() string  { return "break" }

// ContinueSignal restarts the Depth-th enclosing loop.
type ContinueSignal struct {
	Depth int
}

func (cs *ContinueSignal) Type() ObjectType { return CONTINUE_SIGNAL_OBJ }
func (cs *ContinueSignal) Inspect() string  { return "continue" }

// Error kinds, reported to the host with the message.
const (
	SyntaxError  = "SyntaxError"
	NameError    = "NameError"
	ArityError   = "ArityError"
	TypeError    = "TypeError"
	RuntimeError = "RuntimeError"
)

// Error is a fatal runtime error. It unwinds evaluation up to the
// top-level script run; there is no in-language catch.
type Error struct {
	Kind    string
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

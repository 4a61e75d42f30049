package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/oinkcat/scripting-lang/internal/lexer"
	"github.com/oinkcat/scripting-lang/internal/parser"
)

// runSource runs a script and returns its result with everything it
// emitted along the way.
func runSource(t *testing.T, src string) (Object, string) {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}

	var buf bytes.Buffer
	eval := New()
	eval.Out = &buf

	env := NewEnvironment()
	RegisterBuiltins(env)
	result := eval.RunProgram(program, env)
	return result, buf.String()
}

func emits(t *testing.T, src string) string {
	t.Helper()
	result, out := runSource(t, src)
	if isError(result) {
		t.Fatalf("runtime error: %s", result.Inspect())
	}
	return out
}

func errorOf(t *testing.T, src string) *Error {
	t.Helper()
	result, _ := runSource(t, src)
	err, ok := result.(*Error)
	if !ok {
		t.Fatalf("expected an error, got %s", result.Inspect())
	}
	return err
}

func TestEmitFormatting(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`emit 5`, "5\n"},
		{`emit 2.5`, "2.5\n"},
		{`emit 10 / 4`, "2.5\n"},
		{`emit "text"`, "text\n"},
		{`emit 1 == 1`, "true\n"},
		{`emit not 1`, "false\n"},
		{`emit [1, "two", 3]`, "[1, \"two\", 3]\n"},
		{`emit { a: 1, b: "x" }`, "{a: 1, b: \"x\"}\n"},
	}

	for _, tt := range tests {
		if got := emits(t, tt.src); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestArithmeticAndLogic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`emit 2 + 3 * 4`, "14\n"},
		{`emit (2 + 3) * 4`, "20\n"},
		{`emit 7 % 3`, "1\n"},
		{`emit -5 + 10`, "5\n"},
		{`emit 1 < 2 and 2 < 3`, "true\n"},
		{`emit 0 or ""`, "false\n"},
		{`emit 1 xor 1`, "false\n"},
		{`emit "abc" < "abd"`, "true\n"},
		{`emit "n: " & 1 + 2`, "n: 3\n"},
	}

	for _, tt := range tests {
		if got := emits(t, tt.src); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestElsifLadderRunsOneBranch(t *testing.T) {
	src := `func test_elseif(num)
    if num > 100
        emit "Condition 1"
    elsif num > 5
        emit "Condition 2"
    elsif num > 1
        emit "Condition 3"
    else
        emit "No condition"
    end
end

test_elseif(10)
`
	if got := emits(t, src); got != "Condition 2\n" {
		t.Errorf("got %q, want %q", got, "Condition 2\n")
	}
}

func TestWhileLoop(t *testing.T) {
	src := `i = 0
sum = 0
for i < 5
    i += 1
    sum += i
end
emit sum
`
	if got := emits(t, src); got != "15\n" {
		t.Errorf("got %q, want %q", got, "15\n")
	}
}

func TestForEachOverRange(t *testing.T) {
	src := `for RangeArray(1, 5) as i
    emit i
end
`
	if got := emits(t, src); got != "1\n2\n3\n4\n5\n" {
		t.Errorf("got %q", got)
	}
}

func TestHashIterationOrder(t *testing.T) {
	src := `h = { a: 10, b: 12, lol: 100 }
for h as k
    emit "${k} = ${h[k]}"
end
`
	want := "a = 10\nb = 12\nlol = 100\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoopMutationNotObserved(t *testing.T) {
	src := `items = [1, 2]
for items as it
    Add(items, it + 10)
end
emit Len(items)
`
	if got := emits(t, src); got != "4\n" {
		t.Errorf("got %q, want %q", got, "4\n")
	}
}

func TestBreakContinueDepth(t *testing.T) {
	src := `for RangeArray(1, 3) as a
    for RangeArray(1, 3) as b
        if b == 2
            continue
        end
        if a == 2
            break 2
        end
        emit "${a}.${b}"
    end
end
`
	want := "1.1\n1.3\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoopVariableIsIterationLocal(t *testing.T) {
	src := `total = 0
for RangeArray(1, 3) as n
    n = n * 10
    total += n
end
emit total
`
	if got := emits(t, src); got != "60\n" {
		t.Errorf("got %q, want %q", got, "60\n")
	}
}

func TestStringInterpolation(t *testing.T) {
	src := `page = 2
emit "Page ${page}"
emit "sum: ${1 + 2}, done"
`
	want := "Page 2\nsum: 3, done\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCondExpressionIsLazy(t *testing.T) {
	// The untaken branch must not be evaluated: it divides by zero.
	src := `emit if(1 < 2, "yes", 1 / 0)`
	if got := emits(t, src); got != "yes\n" {
		t.Errorf("got %q, want %q", got, "yes\n")
	}
}

func TestClosuresCaptureDefiningScope(t *testing.T) {
	src := `func makeAdder(n)
    return func(x) => return x + n
end

add2 = makeAdder(2)
add10 = makeAdder(10)
emit add2(3)
emit add10(3)
`
	want := "5\n13\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUseSharedVariable(t *testing.T) {
	src := `use total

func bump() use total
    total += 1
end

total = 0
bump()
bump()
emit total
`
	if got := emits(t, src); got != "2\n" {
		t.Errorf("got %q, want %q", got, "2\n")
	}
}

func TestSharedHashAcrossFunctions(t *testing.T) {
	src := `use data

func setValue() use data
    data.value = 100
end

func readValue() use data
    return data.value
end

data = { value: 1 }
setValue()
emit readValue()
`
	if got := emits(t, src); got != "100\n" {
		t.Errorf("got %q, want %q", got, "100\n")
	}
}

func TestAssignWithoutUseStaysLocal(t *testing.T) {
	src := `func tryShadow()
    count = 99
end

count = 1
tryShadow()
emit count
`
	if got := emits(t, src); got != "1\n" {
		t.Errorf("got %q, want %q", got, "1\n")
	}
}

func TestObjectMethodChaining(t *testing.T) {
	src := `func builderAppend(self, item)
    Add(self.items, item)
    return self
end

func builderPrint(self)
    for self.items as it
        emit it
    end
end

func NewListBuilder()
    return new {
        items: [],
        append: ref builderAppend,
        print: ref builderPrint
    }
end

b = NewListBuilder()
b.append("Hello").append("World!").append("Testing!")
b.print()
`
	want := "Hello\nWorld!\nTesting!\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMethodChainKeepsIdentity(t *testing.T) {
	src := `func app(self, item)
    Add(self.items, item)
    return self
end

b = new { items: [], append: ref app }
c = b.append("x")
emit b == c
`
	if got := emits(t, src); got != "true\n" {
		t.Errorf("got %q, want %q", got, "true\n")
	}
}

func TestCopiedOutMethodIsUnbound(t *testing.T) {
	src := `func getValue(self) => return self.value

o = new { value: 42, get: ref getValue }
f = o.get
emit f(o)
emit o.get(o) == 42
`
	// The first call passes the receiver explicitly. The second goes
	// through dotted access, so self is bound and o arrives twice.
	result, _ := runSource(t, src)
	err, ok := result.(*Error)
	if !ok || err.Kind != ArityError {
		t.Fatalf("expected arity error on the double receiver, got %v", result)
	}

	ok1 := emits(t, `func getValue(self) => return self.value

o = new { value: 42, get: ref getValue }
f = o.get
emit f(o)
`)
	if ok1 != "42\n" {
		t.Errorf("unbound call got %q, want %q", ok1, "42\n")
	}
}

func TestContainerAliasing(t *testing.T) {
	src := `a = [1, 2]
b = a
Add(b, 3)
emit Len(a)

h = { n: 1 }
g = h
g.n = 5
emit h.n
`
	want := "3\n5\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindDoesNotMutate(t *testing.T) {
	src := `arr = [1, 2, 3]
emit Find(arr, 2)
emit Find(arr, 9)
emit Len(arr)

h = { here: 1 }
emit Find(h, "here")
emit Find(h, "gone")
emit Len(h)
`
	want := "true\nfalse\n3\ntrue\nfalse\n1\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestElementAssignment(t *testing.T) {
	src := `a = [1, 2, 3]
a[1] = 20
a[2] += 5
emit a

h = { count: 1 }
h.count += 9
h["label"] = "ten"
emit h.count
emit h.label
`
	want := "[1, 20, 8]\n10\nten\n"
	if got := emits(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuiltinConversions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`emit Str(12.5)`, "12.5\n"},
		{`emit Num("42") + 1`, "43\n"},
		{`emit Len("hello")`, "5\n"},
		{`emit Keys({ x: 1, y: 2 })`, "[\"x\", \"y\"]\n"},
	}

	for _, tt := range tests {
		if got := emits(t, tt.src); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		src     string
		kind    string
		msgPart string
	}{
		{`emit missing`, NameError, "identifier not found: missing"},
		{"func f(a)\n    return a\nend\nf(1, 2)", ArityError, "f takes 1 argument(s), got 2"},
		{`emit 1 / 0`, RuntimeError, "division by zero"},
		{`emit "a" - "b"`, TypeError, "operator - not defined"},
		{`emit [1, 2][5]`, RuntimeError, "array index 5 out of range"},
		{"x = 1\nx[0] = 2", TypeError, "cannot assign to element"},
		{`import nope`, RuntimeError, "script modules are not supported"},
		{"for 5 as x\nend", TypeError, "is not iterable"},
		{`missing += 1`, NameError, "identifier not found"},
	}

	for _, tt := range tests {
		err := errorOf(t, tt.src)
		if err.Kind != tt.kind {
			t.Errorf("%q: kind %s, want %s", tt.src, err.Kind, tt.kind)
		}
		if !strings.Contains(err.Message, tt.msgPart) {
			t.Errorf("%q: message %q does not mention %q", tt.src, err.Message, tt.msgPart)
		}
	}
}

func TestErrorsCarryLineNumbers(t *testing.T) {
	src := `x = 1
y = 2
emit boom
`
	err := errorOf(t, src)
	if err.Line != 3 {
		t.Errorf("error line %d, want 3", err.Line)
	}
	if !strings.Contains(err.Inspect(), "line 3") {
		t.Errorf("Inspect() %q does not mention the line", err.Inspect())
	}
}

func TestRecursionDepthGuard(t *testing.T) {
	src := `func loop() => return loop()

loop()
`
	err := errorOf(t, src)
	if err.Kind != RuntimeError || !strings.Contains(err.Message, "recursion depth") {
		t.Errorf("got %s: %s", err.Kind, err.Message)
	}
}

func TestEmitHandler(t *testing.T) {
	src := `emit 42 as answer
emit "plain"
`
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}

	type emitted struct {
		key   string
		value string
	}
	var got []emitted

	eval := New()
	eval.Out = &bytes.Buffer{}
	eval.EmitHandler = func(key string, value Object) {
		got = append(got, emitted{key, value.Inspect()})
	}

	env := NewEnvironment()
	RegisterBuiltins(env)
	if result := eval.RunProgram(program, env); isError(result) {
		t.Fatalf("runtime error: %s", result.Inspect())
	}

	want := []emitted{{"answer", "42"}, {"", "plain"}}
	if len(got) != len(want) {
		t.Fatalf("got %d emits, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("emit %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

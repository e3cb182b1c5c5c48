package interpreter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"jocks/ast"
	"jocks/object"
	"jocks/parser"
	"jocks/report"
	"jocks/resolver"
	"jocks/value"
)

const testFile = "test.jocks"

func compile(t *testing.T, source string, globals ...string) []ast.Stmt {
	t.Helper()

	reporter := report.NewReporter()
	stmts := parser.Parse(testFile, source, reporter)
	if stmts != nil {
		resolver.New(reporter, globals...).Resolve(stmts)
	}

	if reporter.HasErrors() {
		t.Fatalf("compile errors: %v", reporter.Diagnostics())
	}
	return stmts
}

func run(t *testing.T, source string, opts ...Option) (string, value.Value, error) {
	t.Helper()

	var out bytes.Buffer
	interp := New(append(opts, WithOutput(&out))...)
	result, err := interp.Interpret(context.Background(), compile(t, source))

	return out.String(), result, err
}

func asFault(t *testing.T, err error) *Fault {
	t.Helper()

	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("expected a fault, got %v", err)
	}
	return fault
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"shadowing",
			"var x = 1; { var x = 2; print x; } print x;",
			"2\n1\n",
		},
		{
			"counter",
			`class Counter {
				__init__(this) { this.n = 0; }
				inc(this) { this.n = this.n + 1; return this.n; }
			}
			var c = new Counter();
			print c.inc();
			print c.inc();`,
			"1\n2\n",
		},
		{
			"unreachable",
			`fun f() { return 1; print "unreachable"; }
			print f();`,
			"1\n",
		},
		{
			"return from while",
			`fun f() {
				var i = 0;
				while (true) {
					i = i + 1;
					if (i == 3) { return i; }
				}
				print "after loop";
			}
			print f();`,
			"3\n",
		},
		{
			"return from for inside a block",
			`fun g() {
				for (var i = 0; i < 10; i = i + 1) {
					{ if (i == 4) return i * 2; }
					print i;
				}
				print "after loop";
				return -1;
			}
			print g();`,
			"0\n1\n2\n3\n8\n",
		},
		{
			"return from if branches",
			`fun h(x) {
				if (x) { return "then"; } else { return "else"; }
				print "after if";
			}
			print h(true);
			print h(false);`,
			"then\nelse\n",
		},
		{
			"closures",
			`fun makeCounter() {
				var i = 0;
				fun count() { i = i + 1; return i; }
				return count;
			}
			var a = makeCounter();
			var b = makeCounter();
			print a(); print a(); print b();`,
			"1\n2\n1\n",
		},
		{
			"inheritance",
			`class A {
				greet(self) { return "A"; }
				name(self) { return "a"; }
			}
			class B < A {
				greet(self) { return "B" + super.greet(self); }
			}
			var b = new B();
			print b.greet();
			print b.name();`,
			"BA\na\n",
		},
		{
			"operators",
			`class V {
				__init__(self, x) { self.x = x; }
				__add__(self, o) { return new V(self.x + o.x); }
				__equal__(self, o) { return self.x == o.x; }
				__unary_sub__(self) { return new V(-self.x); }
				__str__(self) { return "V(" + to_string(self.x) + ")"; }
			}
			print new V(1) + new V(2);
			print new V(1) == new V(1);
			print -new V(3);
			print to_string(new V(4));`,
			"V(3)\ntrue\nV(-3)\nV(4)\n",
		},
		{
			"short circuit",
			`fun f() { print "called"; return true; }
			print false and f();
			print true or f();
			print true and f();`,
			"false\ntrue\ncalled\ntrue\n",
		},
		{
			"loops",
			`for (var i = 0; i < 3; i = i + 1) print i;
			var j = 0;
			while (j < 2) { j = j + 1; }
			print j;`,
			"0\n1\n2\n2\n",
		},
		{
			"values",
			`print nil; print !true; print 1.5; print 10 / 4; print 1 / 0;
			print "a" + "b"; print 1 == "1"; print nil == nil; print 2 >= 2;`,
			"nil\nfalse\n1.5\n2.5\ninf\nab\nfalse\ntrue\ntrue\n",
		},
		{
			"natives",
			`print abs(-2); print floor(2.7); print pow(2, 10);
			print is_nil(nil); print is_class(Object); print is_function(abs);`,
			"2\n2\n1024\ntrue\ntrue\ntrue\n",
		},
		{
			"inherited no-op initializer",
			`class A { __init__(self, x) { self.x = x; } }
			class B < A {}
			print is_instance(new B());`,
			"true\n",
		},
		{
			"fields",
			`class P {}
			var p = new P();
			p.x = 1;
			p.x = p.x + 1;
			print p.x;
			print p;
			print P;`,
			"2\nInstance(P)\nClass(P)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.source)
			if err != nil {
				t.Fatalf("unexpected fault: %v", err)
			}
			if out != tt.want {
				t.Errorf("got:\n%v\nwant:\n%v", out, tt.want)
			}
		})
	}
}

func TestFaults(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   FaultKind
		line   int
		// Output produced before the fault.
		out string
	}{
		{
			"arity",
			"fun f(a) {}\nprint \"before\";\nf(1, 2);\nprint \"after\";",
			ArityMismatch, 3, "before\n",
		},
		{"new arity", "class P { __init__(self, x) {} }\nnew P();", ArityMismatch, 2, ""},
		{"no initializer arity", "class Q {}\nnew Q(1);", ArityMismatch, 2, ""},
		{"missing dunder", "class P {}\nvar p = new P();\np + 1;", UnsupportedOperator, 3, ""},
		{"instance equality", "class P {}\nnew P() == new P();", UnsupportedOperator, 2, ""},
		{"unsupported primitive", "\"a\" - \"b\";", UnsupportedOperator, 1, ""},
		{"unordered nil", "nil < 1;", UnsupportedOperator, 1, ""},
		{"not on number", "!1;", UnsupportedOperator, 1, ""},
		{"type mismatch", "1 + \"a\";", TypeMismatch, 1, ""},
		{"logical operand", "1 and true;", TypeMismatch, 1, ""},
		{"condition", "if (1) print 1;", TypeMismatch, 1, ""},
		{"call a number", "var x = 1;\nx();", NotCallable, 2, ""},
		{"call a class", "class A {}\nA();", NotCallable, 2, ""},
		{"instantiate a function", "fun f() {}\nnew f();", NotAClass, 2, ""},
		{"superclass not a class", "var A = 1;\nclass B < A {}", NotAClass, 2, ""},
		{"undefined property", "class A {}\nnew A().missing;", UndefinedProperty, 2, ""},
		{"property of a number", "var n = 1;\nn.x;", NotAnObject, 2, ""},
		{"field on a number", "var n = 1;\nn.x = 2;", NotAnObject, 2, ""},
		{"native error", "abs(\"x\");", NativeError, 1, ""},
		{"__str__ not a string", "class S { __str__(self) { return 1; } }\nprint new S();", NativeError, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, result, err := run(t, tt.source)

			fault := asFault(t, err)
			if fault.Kind != tt.kind {
				t.Errorf("kind = %v, want %v (%v)", fault.Kind, tt.kind, fault)
			}
			if fault.Pos.Line != tt.line || fault.Pos.File != testFile {
				t.Errorf("fault at %+v, want line %v", fault.Pos, tt.line)
			}
			if out != tt.out {
				t.Errorf("output %q, want %q", out, tt.out)
			}
			if result != nil {
				t.Errorf("result %v alongside a fault", result)
			}
		})
	}
}

func TestUnsupportedOperatorNamesDunder(t *testing.T) {
	_, _, err := run(t, "class P {}\nnew P() + 1;")

	fault := asFault(t, err)
	if !strings.Contains(fault.Message, "__add__") {
		t.Errorf("message %q does not name __add__", fault.Message)
	}
}

func TestArityMessage(t *testing.T) {
	_, _, err := run(t, "fun f(a) {}\nf(1, 2);")

	if want := "f expects 1 arguments but got 2."; asFault(t, err).Message != want {
		t.Errorf("message = %q, want %q", asFault(t, err).Message, want)
	}
}

func TestArityCheckedBeforeArguments(t *testing.T) {
	out, _, err := run(t, `fun f(a) {}
	fun g() { print "evaluated"; return 1; }
	f(g(), g());`)

	asFault(t, err)
	if out != "" {
		t.Errorf("arguments were evaluated: %q", out)
	}
}

func TestTrace(t *testing.T) {
	_, _, err := run(t, `fun inner() { return 1 + nil; }
fun outer() { return inner(); }
outer();`)

	fault := asFault(t, err)
	want := []string{
		"    0: [test.jocks:1] in inner",
		"    1: [test.jocks:2] in outer",
		"    2: [test.jocks:3] in <script>",
	}

	got := fault.TraceLines()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("trace:\n%v\nwant:\n%v", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	d := fault.Diagnostic()
	if d.Phase != report.PhaseInterpreter || d.Kind != "TypeMismatch" || len(d.Trace) != 3 {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestTraceAfterReturnedCalls(t *testing.T) {
	_, _, err := run(t, `fun ok() { while (true) { if (true) { return 1; } } }
fun bad() { return nil + ok(); }
ok();
bad();`)

	fault := asFault(t, err)
	want := []string{
		"    0: [test.jocks:2] in bad",
		"    1: [test.jocks:4] in <script>",
	}

	if got := fault.TraceLines(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("trace:\n%v\nwant:\n%v", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestMissingReceiver(t *testing.T) {
	_, _, err := run(t, "class C { m() { return 1; } }\nnew C().m();")

	fault := asFault(t, err)
	if fault.Kind != ArityMismatch {
		t.Errorf("kind = %v", fault.Kind)
	}
	if want := "C.m declares no receiver parameter, it cannot be called on an instance."; fault.Message != want {
		t.Errorf("message = %q, want %q", fault.Message, want)
	}
}

func TestMaxCallDepthClamped(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{0, DefaultMaxCallDepth},
		{-5, DefaultMaxCallDepth},
		{64, 64},
		{MaxCallDepthLimit, MaxCallDepthLimit},
		{100000000, MaxCallDepthLimit},
	}

	for _, tt := range tests {
		if got := New(WithMaxCallDepth(tt.depth)).maxCallDepth; got != tt.want {
			t.Errorf("WithMaxCallDepth(%v) gives %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestMethodTraceNames(t *testing.T) {
	_, _, err := run(t, `class A { boom(self) { return nil.x; } }
new A().boom();`)

	fault := asFault(t, err)
	if fault.Trace[0].Function != "A.boom" {
		t.Errorf("innermost frame = %+v", fault.Trace[0])
	}
}

func TestStackOverflow(t *testing.T) {
	_, _, err := run(t, "fun r() { return r(); }\nr();", WithMaxCallDepth(16))

	fault := asFault(t, err)
	if fault.Kind != StackOverflow {
		t.Fatalf("kind = %v", fault.Kind)
	}
	if len(fault.Trace) != 17 {
		t.Errorf("trace has %v frames, want 17", len(fault.Trace))
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	interp := New(WithOutput(&bytes.Buffer{}))
	_, err := interp.Interpret(ctx, compile(t, "while (true) {}"))

	if fault := asFault(t, err); fault.Kind != Cancelled {
		t.Errorf("kind = %v", fault.Kind)
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		source string
		want   value.Value
	}{
		{"1 + 2;", value.Number(3)},
		{"var a = 1;", value.NilValue},
		{"fun f() { return 1; print \"unreachable\"; }\nf();", value.Number(1)},
		{"\"a\"; true;", value.True},
		{"fun f() { while (true) { { return 7; } } }\nf();", value.Number(7)},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, result, err := run(t, tt.source)
			if err != nil {
				t.Fatal(err)
			}
			if result != tt.want {
				t.Errorf("result = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestTopLevelReturn(t *testing.T) {
	// The resolver rejects this, run the parsed statements directly.
	stmts := parser.Parse(testFile, "print 1; return 5; print 2;", report.NewReporter())

	var out bytes.Buffer
	result, err := New(WithOutput(&out)).Interpret(context.Background(), stmts)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "1\n" || result != value.Number(5) {
		t.Errorf("output %q, result %v", out.String(), result)
	}
}

func TestGlobalsPersist(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	ctx := context.Background()

	if _, err := interp.Interpret(ctx, compile(t, "var a = 1; fun add(x, y) { return x + y; }")); err != nil {
		t.Fatal(err)
	}

	names := interp.GlobalNames()
	for _, want := range []string{"a", "add", "abs", "Object"} {
		found := false
		for _, name := range names {
			found = found || name == want
		}
		if !found {
			t.Errorf("global %q missing from %v", want, names)
		}
	}

	if _, err := interp.Interpret(ctx, compile(t, "print add(a, 2);", names...)); err != nil {
		t.Fatal(err)
	}
	if out.String() != "3\n" {
		t.Errorf("output %q", out.String())
	}

	// Redeclaring a global is a runtime fault once it exists.
	_, err := interp.Interpret(ctx, compile(t, "var a = 2;"))
	if fault := asFault(t, err); fault.Kind != DuplicateDeclaration {
		t.Errorf("kind = %v", fault.Kind)
	}
}

func TestCall(t *testing.T) {
	interp := New(WithOutput(&bytes.Buffer{}))
	ctx := context.Background()

	if _, err := interp.Interpret(ctx, compile(t, "fun add(a, b) { return a + b; }")); err != nil {
		t.Fatal(err)
	}

	v, ok := interp.Global("add")
	if !ok {
		t.Fatal("add is not bound")
	}
	fn := v.(object.Function)

	result, err := interp.Call(ctx, fn, value.Number(1), value.Number(2))
	if err != nil || result != value.Number(3) {
		t.Errorf("Call = %v, %v", result, err)
	}

	_, err = interp.Call(ctx, fn, value.Number(1))
	if fault := asFault(t, err); fault.Kind != ArityMismatch {
		t.Errorf("kind = %v", fault.Kind)
	}

	_, err = interp.Call(ctx, fn, value.Number(1), value.String("x"))
	if fault := asFault(t, err); fault.Kind != TypeMismatch || fault.Trace[0].Function != "add" {
		t.Errorf("fault = %v, trace %v", fault, fault.Trace)
	}
}

func TestStringify(t *testing.T) {
	interp := New(WithOutput(&bytes.Buffer{}))
	ctx := context.Background()

	_, err := interp.Interpret(ctx, compile(t, `class Named { __str__(self) { return "named"; } }
	var n = new Named();`))
	if err != nil {
		t.Fatal(err)
	}

	n, _ := interp.Global("n")
	if text, err := interp.Stringify(ctx, n); err != nil || text != "named" {
		t.Errorf("Stringify = %q, %v", text, err)
	}
	if text, _ := interp.Stringify(ctx, value.Number(2.5)); text != "2.5" {
		t.Errorf("Stringify(2.5) = %q", text)
	}
}

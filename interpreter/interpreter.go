package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"jocks/ast"
	"jocks/object"
	"jocks/value"
)

const (
	DefaultMaxCallDepth = 1024
	// Deepest call nesting accepted. Go aborts the process when a goroutine
	// stack passes 1 GB, which a larger bound could reach before the
	// StackOverflow fault.
	MaxCallDepthLimit = 50000
)

var log = commonlog.GetLogger("jocks.interpreter")

type Interpreter struct {
	// Persistent across Interpret calls, pre-populated with the natives.
	globals *object.Environment
	// Implicit superclass of classes declared without one.
	root *object.Class

	out          io.Writer
	maxCallDepth int
	log          commonlog.Logger
}

type Option func(*Interpreter)

// Sink for print statements, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// Non-positive depths keep the default, larger ones are clamped to
// MaxCallDepthLimit.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = min(depth, MaxCallDepthLimit)
		}
	}
}

func WithLogger(logger commonlog.Logger) Option {
	return func(i *Interpreter) { i.log = logger }
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		globals:      object.NewEnvironment(nil),
		out:          os.Stdout,
		maxCallDepth: DefaultMaxCallDepth,
		log:          log,
	}

	for _, native := range object.Natives() {
		if err := i.globals.Create(native.Name, native.Value); err != nil {
			panic(err) // The registration list has unique names.
		}

		if class, ok := native.Value.(*object.Class); ok && native.Name == object.RootClassName {
			i.root = class
		}
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Executes resolved statements against the global environment. The result
// is the value of the last expression statement, Nil if there is none. A
// runtime fault stops execution and is returned as a *Fault.
func (i *Interpreter) Interpret(ctx context.Context, statements []ast.Stmt) (result value.Value, err error) {
	ev := i.newEvaluator(ctx)
	ev.log.Debugf("interpreting %v statements", len(statements))

	defer func() {
		if fault := recoverFault(recover()); fault != nil {
			ev.log.Debugf("run aborted: %v", fault)
			result, err = nil, fault
		}
	}()

	result = value.NilValue
	for _, stmt := range statements {
		if s, ok := stmt.(*ast.Expression); ok {
			result = ev.evaluate(s.Expression)
			continue
		}

		if sig := ev.execute(stmt); !sig.isNormal() {
			return sig.value, nil
		}
	}

	return result, nil
}

// Calls a function value from host code, following the same protocol as a
// call expression.
func (i *Interpreter) Call(ctx context.Context, fn object.Function, args ...value.Value) (result value.Value, err error) {
	ev := i.newEvaluator(ctx)

	defer func() {
		if fault := recoverFault(recover()); fault != nil {
			result, err = nil, fault
		}
	}()

	pos := ast.Pos{File: scriptName}
	ev.checkArity(fn, len(args), pos)
	return ev.call(fn, args, pos), nil
}

// Text of v as print shows it, calling __str__ on instances that have it.
func (i *Interpreter) Stringify(ctx context.Context, v value.Value) (text string, err error) {
	ev := i.newEvaluator(ctx)

	defer func() {
		if fault := recoverFault(recover()); fault != nil {
			text, err = "", fault
		}
	}()

	return ev.stringify(v, ast.Pos{File: scriptName}), nil
}

// Names bound in the global environment.
func (i *Interpreter) GlobalNames() []string {
	return i.globals.Names()
}

// Value of a global binding, mostly for embedding and tests.
func (i *Interpreter) Global(name string) (value.Value, bool) {
	v, err := i.globals.Get(name)
	return v, err == nil
}

func (i *Interpreter) newEvaluator(ctx context.Context) *evaluator {
	if ctx == nil {
		ctx = context.Background()
	}

	return &evaluator{
		interp: i,
		ctx:    ctx,
		env:    i.globals,
		frames: make([]callFrame, 0),
		log:    commonlog.NewKeyValueLogger(i.log, "run", uuid.NewString()),
	}
}

// Faults are carried by panics inside the evaluator. Anything else is a bug
// and keeps panicking.
func recoverFault(r any) *Fault {
	switch r := r.(type) {
	case nil:
		return nil
	case *Fault:
		return r
	default:
		panic(r)
	}
}

// Translates an Environment error into the fault it stands for.
func faultKindOf(err error) FaultKind {
	switch {
	case errors.Is(err, object.ErrDuplicateDeclaration):
		return DuplicateDeclaration
	case errors.Is(err, object.ErrUnboundVariable):
		return UnboundVariable
	default:
		return NativeError
	}
}

// Environment errors read as messages once terminated.
func sentence(err error) string {
	return fmt.Sprintf("%v.", err)
}

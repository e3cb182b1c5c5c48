package interpreter

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"

	"jocks/ast"
	"jocks/object"
	"jocks/token"
	"jocks/value"
)

// A call in progress, used to build fault traces.
type callFrame struct {
	callee string
	site   ast.Pos
}

// Evaluation context of a single Interpret or Call. It is threaded through
// every eval and exec step, so the Interpreter itself only holds the global
// environment and settings.
type evaluator struct {
	interp *Interpreter
	ctx    context.Context
	// Current scope
	env *object.Environment
	// Calls we are currently inside, innermost last.
	frames []callFrame
	log    commonlog.Logger
}

// Statement executors
// --------------------------------------------------------
func (ev *evaluator) execute(stmt ast.Stmt) signal {
	switch s := stmt.(type) {
	case *ast.Block:
		return ev.executeBlock(s.Statements, object.NewEnvironment(ev.env))

	case *ast.Expression:
		ev.evaluate(s.Expression)
		return normal

	case *ast.Print:
		v := ev.evaluate(s.Expression)
		fmt.Fprintln(ev.interp.out, ev.stringify(v, s.Pos))
		return normal

	case *ast.Return:
		var result value.Value = value.NilValue
		if s.Value != nil {
			result = ev.evaluate(s.Value)
		}
		return returning(result)

	case *ast.If:
		if ev.condition(s.Condition, "if") {
			return ev.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			return ev.execute(s.ElseBranch)
		}
		return normal

	case *ast.While:
		for ev.condition(s.Condition, "while") {
			ev.poll(s.Pos)
			if sig := ev.execute(s.Body); !sig.isNormal() {
				return sig
			}
		}
		return normal

	case *ast.For:
		return ev.executeFor(s)

	case *ast.Var:
		var initial value.Value = value.NilValue
		if s.Initializer != nil {
			initial = ev.evaluate(s.Initializer)
		}
		ev.define(s.Name, initial)
		return normal

	case *ast.Function:
		ev.define(s.Name, object.NewUserFunction(s, ev.env, ""))
		return normal

	case *ast.Class:
		ev.executeClass(s)
		return normal

	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

// Runs statements in env and restores the previous scope however they
// exit.
func (ev *evaluator) executeBlock(statements []ast.Stmt, env *object.Environment) signal {
	previous := ev.env
	ev.env = env
	defer func() {
		ev.env = previous
	}()

	for _, stmt := range statements {
		if sig := ev.execute(stmt); !sig.isNormal() {
			return sig
		}
	}

	return normal
}

// The loop header gets its own scope, shared by all iterations.
func (ev *evaluator) executeFor(s *ast.For) signal {
	previous := ev.env
	ev.env = object.NewEnvironment(previous)
	defer func() {
		ev.env = previous
	}()

	if s.Initializer != nil {
		ev.execute(s.Initializer)
	}

	for s.Condition == nil || ev.condition(s.Condition, "for") {
		ev.poll(s.Pos)
		if sig := ev.execute(s.Body); !sig.isNormal() {
			return sig
		}

		if s.Increment != nil {
			ev.evaluate(s.Increment)
		}
	}

	return normal
}

func (ev *evaluator) executeClass(s *ast.Class) {
	superclass := ev.interp.root
	if s.Superclass != nil {
		v := ev.lookUp(s.Superclass)
		class, ok := v.(*object.Class)
		if !ok {
			panic(ev.makeFault(NotAClass, s.Superclass.Pos,
				"Superclass of '%v' must be a class, got %v.", s.Name.Lexeme, v.TypeName()))
		}
		superclass = class
	}

	// Methods close over a scope holding 'super'.
	classEnv := object.NewEnvironment(ev.env)
	_ = classEnv.Create("super", superclass) // Fresh scope, cannot collide

	methods := make(map[string]object.Function, len(s.Methods))
	for _, m := range s.Methods {
		displayName := s.Name.Lexeme + "." + m.Name.Lexeme
		methods[m.Name.Lexeme] = object.NewUserFunction(m, classEnv, displayName)
	}

	ev.define(s.Name, object.NewClass(s.Name.Lexeme, methods, superclass))
}

// Defines a variable in the current scope.
func (ev *evaluator) define(name token.Token, v value.Value) {
	if err := ev.env.Create(name.Lexeme, v); err != nil {
		panic(ev.makeFault(faultKindOf(err), ast.PosOf(name), sentence(err)))
	}
}

func (ev *evaluator) condition(expr ast.Expr, statement string) bool {
	v := ev.evaluate(expr)
	b, ok := v.(value.Boolean)
	if !ok {
		panic(ev.makeFault(TypeMismatch, expr.Position(),
			"Condition of '%v' must be a Bool, got %v.", statement, v.TypeName()))
	}

	return bool(b)
}

// Text for print and to_string, asking instances for __str__.
func (ev *evaluator) stringify(v value.Value, pos ast.Pos) string {
	text, err := object.Stringify(ev.at(pos), v)
	if err != nil {
		panic(ev.makeFault(NativeError, pos, "%v", err))
	}

	return text
}

// Cooperative cancellation, polled at loop back-edges and calls.
func (ev *evaluator) poll(pos ast.Pos) {
	select {
	case <-ev.ctx.Done():
		panic(ev.makeFault(Cancelled, pos, "Execution cancelled: %v.", ev.ctx.Err()))
	default:
	}
}

// Error reporting
// --------------------------------------------------------
func (ev *evaluator) makeFault(kind FaultKind, pos ast.Pos, format string, args ...any) *Fault {
	fault := &Fault{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		Trace:   ev.trace(pos),
	}

	ev.log.Debugf("fault %v", fault)
	return fault
}

// Fault site first, then the call site in each caller.
func (ev *evaluator) trace(pos ast.Pos) []Frame {
	trace := make([]Frame, 0, len(ev.frames)+1)
	trace = append(trace, Frame{Function: ev.functionAt(len(ev.frames)), Pos: pos})

	for n := len(ev.frames) - 1; n >= 0; n-- {
		trace = append(trace, Frame{Function: ev.functionAt(n), Pos: ev.frames[n].site})
	}

	return trace
}

// Name of the function running while n frames are active.
func (ev *evaluator) functionAt(n int) string {
	if n == 0 {
		return scriptName
	}

	return ev.frames[n-1].callee
}

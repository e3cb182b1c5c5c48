// Package resolver binds every variable reference to the number of scopes
// between it and its declaration, and reports scoping mistakes before
// anything runs.
package resolver

import (
	"github.com/tliron/commonlog"

	"jocks/ast"
	"jocks/object"
	"jocks/report"
	"jocks/token"
	"jocks/util"
)

var log = commonlog.GetLogger("jocks.resolver")

// The scope pushes and pops here mirror the environments the interpreter
// creates, which is what makes a resolved depth valid at run time.
type Resolver struct {
	reporter *report.Reporter
	// Names visible before the program starts: the natives and, in the
	// REPL, globals bound by earlier lines.
	globals []string

	scopes          []scope
	currentFunction functionKind
}

func New(reporter *report.Reporter, globals ...string) *Resolver {
	names := object.NativeNames()
	for _, g := range globals {
		if !contains(names, g) {
			names = append(names, g)
		}
	}

	return &Resolver{reporter: reporter, globals: names}
}

// Annotates statements in place. Problems go to the reporter and resolution
// carries on, so one pass reports everything it can find. Every call starts
// over from the pre-declared globals.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.scopes = r.scopes[:0]
	r.currentFunction = kindNoFunction

	r.pushScope()
	for _, g := range r.globals {
		r.declare(g)
		r.define(g)
	}

	for _, stmt := range statements {
		r.statement(stmt)
	}

	r.popScope()
}

// Statements
// --------------------------------------------------------
func (r *Resolver) statement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.pushScope()
		r.statements(s.Statements)
		r.popScope()

	case *ast.Expression:
		r.expression(s.Expression)

	case *ast.Print:
		r.expression(s.Expression)

	case *ast.Return:
		if r.currentFunction == kindNoFunction {
			r.errorf(s.Pos, report.ReturnOutsideFunction,
				"Return statements are only allowed inside a function or method.")
		}
		r.optionalExpression(s.Value)

	case *ast.If:
		r.expression(s.Condition)
		r.statement(s.ThenBranch)
		if s.ElseBranch != nil {
			r.statement(s.ElseBranch)
		}

	case *ast.While:
		r.expression(s.Condition)
		r.statement(s.Body)

	case *ast.For:
		r.pushScope()
		if s.Initializer != nil {
			r.statement(s.Initializer)
		}
		r.optionalExpression(s.Condition)
		r.optionalExpression(s.Increment)
		r.statement(s.Body)
		r.popScope()

	case *ast.Var:
		r.declareToken(s.Name)
		r.optionalExpression(s.Initializer)
		r.define(s.Name.Lexeme)

	case *ast.Function:
		// Defined before the body so it can call itself.
		r.declareToken(s.Name)
		r.define(s.Name.Lexeme)
		r.function(s, kindFunction)

	case *ast.Class:
		r.class(s)

	default:
		panic("Unknown statement in resolver.")
	}
}

func (r *Resolver) statements(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.statement(stmt)
	}
}

// Parameters and body share one scope.
func (r *Resolver) function(fun *ast.Function, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosing }()

	r.pushScope()
	for _, param := range fun.Params {
		r.declareToken(param)
		r.define(param.Lexeme)
	}

	r.statements(fun.Body)
	r.popScope()

	log.Debugf("resolved %v '%v' at %v:%v", kind, fun.Name.Lexeme, fun.Pos.File, fun.Pos.Line)
}

func (r *Resolver) class(class *ast.Class) {
	if len(r.scopes) != 1 {
		r.errorf(class.Pos, report.ClassOutsideGlobalScope,
			"Class '%v' must be declared at the global scope.", class.Name.Lexeme)
	}

	r.declareToken(class.Name)
	r.define(class.Name.Lexeme)

	if class.Superclass != nil {
		if class.Superclass.Name.Lexeme == class.Name.Lexeme {
			r.errorf(class.Superclass.Pos, report.SelfInheritance,
				"Class '%v' cannot inherit from itself.", class.Name.Lexeme)
		}
		r.variable(class.Superclass)
	}

	// Methods close over a scope holding 'super'.
	r.pushScope()
	r.declare("super")
	r.define("super")

	seen := make(map[string]bool, len(class.Methods))
	for _, method := range class.Methods {
		if seen[method.Name.Lexeme] {
			r.errorf(method.Pos, report.Redeclaration,
				"Method '%v' is already declared in class '%v'.",
				method.Name.Lexeme, class.Name.Lexeme)
		}
		seen[method.Name.Lexeme] = true

		r.function(method, kindMethod)
	}

	r.popScope()
}

// Expressions
// --------------------------------------------------------
func (r *Resolver) expression(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:

	case *ast.Logical:
		r.expression(e.Left)
		r.expression(e.Right)

	case *ast.Binary:
		r.expression(e.Left)
		r.expression(e.Right)

	case *ast.Unary:
		r.expression(e.Right)

	case *ast.Grouping:
		r.expression(e.Expr)

	case *ast.Dot:
		r.expression(e.Object)

	case *ast.Call:
		r.expression(e.Callee)
		r.expressions(e.Arguments)

	case *ast.New:
		r.variable(e.Class)
		r.expressions(e.Arguments)

	case *ast.Assign:
		r.expression(e.Value)
		r.expression(e.Target)

	case *ast.Variable:
		r.variable(e)

	default:
		panic("Unknown expression in resolver.")
	}
}

func (r *Resolver) expressions(exprs []ast.Expr) {
	for _, expr := range exprs {
		r.expression(expr)
	}
}

func (r *Resolver) optionalExpression(expr ast.Expr) {
	if expr != nil {
		r.expression(expr)
	}
}

// Records the distance to the innermost scope declaring the name.
func (r *Resolver) variable(v *ast.Variable) {
	for i := range r.scopes {
		// Reversed, inside out traversal.
		at := len(r.scopes) - i - 1

		if slot, defined := r.scopes[at].lookup(v.Name.Lexeme); slot >= 0 {
			if !defined {
				r.errorf(v.Pos, report.UseBeforeDefined,
					"Cannot read variable '%v' in its own initializer.", v.Name.Lexeme)
			}

			v.Depth = i
			log.Debugf("'%v' at %v:%v has depth %v", v.Name.Lexeme, v.Pos.File, v.Pos.Line, i)
			return
		}
	}

	r.errorf(v.Pos, report.UndeclaredVariable,
		"Reference to undeclared variable '%v'.", v.Name.Lexeme)
	v.Depth = ast.Unresolved
}

// Scopes
// --------------------------------------------------------
func (r *Resolver) pushScope() {
	r.scopes = append(r.scopes, makeScope())
}

func (r *Resolver) popScope() {
	util.Pop(&r.scopes)
}

func (r *Resolver) declare(name string) bool {
	return util.Last(r.scopes).declare(name)
}

func (r *Resolver) declareToken(name token.Token) {
	if !r.declare(name.Lexeme) {
		r.errorf(ast.PosOf(name), report.Redeclaration,
			"Variable with name '%v' already exists in the scope.", name.Lexeme)
	}
}

func (r *Resolver) define(name string) {
	util.Last(r.scopes).define(name)
}

func (r *Resolver) errorf(pos ast.Pos, kind report.Kind, format string, args ...any) {
	r.reporter.Errorf(report.PhaseResolver, kind, pos.File, pos.Line, format, args...)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

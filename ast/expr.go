package ast

import (
	"jocks/token"
)

// Depth of a variable reference the resolver could not bind.
const Unresolved = -1

// Source location every node carries for diagnostics.
type Pos struct {
	File string
	Line int
}

func (p Pos) Position() Pos { return p }

func PosOf(tok token.Token) Pos {
	return Pos{File: tok.File, Line: tok.Line}
}

// Expr is a closed set of expression nodes, consumed by type switches.
type Expr interface {
	Position() Pos
	exprNode()
}

type Literal struct {
	Pos
	// One of NUMBER, STRING, TRUE, FALSE or NIL.
	Token token.Token
}

type Logical struct {
	Pos
	Operator    token.Token
	Left, Right Expr
}

type Binary struct {
	Pos
	Operator    token.Token
	Left, Right Expr
}

type Unary struct {
	Pos
	Operator token.Token
	Right    Expr
}

type Grouping struct {
	Pos
	Expr Expr
}

// Property or method access: Object.Name
type Dot struct {
	Pos
	Object Expr
	Name   token.Token
}

type Call struct {
	Pos
	Callee    Expr
	Arguments []Expr
}

// new Class(args...)
type New struct {
	Pos
	Class     *Variable
	Arguments []Expr
}

// Target is either a *Variable or a *Dot.
type Assign struct {
	Pos
	Target Expr
	Value  Expr
}

type Variable struct {
	Pos
	Name token.Token
	// Scope hops from the reference to its declaring scope, Unresolved until
	// the resolver has run.
	Depth int
}

func (*Literal) exprNode()  {}
func (*Logical) exprNode()  {}
func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Grouping) exprNode() {}
func (*Dot) exprNode()      {}
func (*Call) exprNode()     {}
func (*New) exprNode()      {}
func (*Assign) exprNode()   {}
func (*Variable) exprNode() {}

// Makes an unresolved variable reference from its name token.
func NewVariable(name token.Token) *Variable {
	return &Variable{Pos: PosOf(name), Name: name, Depth: Unresolved}
}

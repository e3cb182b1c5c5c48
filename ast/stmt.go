package ast

import (
	"jocks/token"
)

// Stmt is a closed set of statement nodes, consumed by type switches.
type Stmt interface {
	Position() Pos
	stmtNode()
}

type Block struct {
	Pos
	Statements []Stmt
}

type Expression struct {
	Pos
	Expression Expr
}

type Print struct {
	Pos
	Expression Expr
}

type Return struct {
	Pos
	Keyword token.Token
	Value   Expr // Can be nil
}

type If struct {
	Pos
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // Can be nil
}

type While struct {
	Pos
	Condition Expr
	Body      Stmt
}

// for (Initializer; Condition; Increment) Body
// Every clause can be nil, a missing condition loops forever.
type For struct {
	Pos
	Initializer Stmt
	Condition   Expr
	Increment   Expr
	Body        Stmt
}

type Var struct {
	Pos
	Name        token.Token
	Initializer Expr // Can be nil
}

type Function struct {
	Pos
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

type Class struct {
	Pos
	Name       token.Token
	Superclass *Variable // Can be nil
	Methods    []*Function
}

func (*Block) stmtNode()      {}
func (*Expression) stmtNode() {}
func (*Print) stmtNode()      {}
func (*Return) stmtNode()     {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*For) stmtNode()        {}
func (*Var) stmtNode()        {}
func (*Function) stmtNode()   {}
func (*Class) stmtNode()      {}

// Makes a block from a list of statements
func NewBlock(pos Pos, statements ...Stmt) *Block {
	return &Block{Pos: pos, Statements: statements}
}

package ast

import (
	"strconv"
	"strings"
)

// Sprint renders statements in a parenthesized prefix form, one top level
// statement per line. Resolved variables print as name@depth.
func Sprint(stmts []Stmt) string {
	var b strings.Builder

	for _, stmt := range stmts {
		b.WriteString(SprintStmt(stmt))
		b.WriteByte('\n')
	}

	return b.String()
}

func SprintStmt(s Stmt) string {
	switch s := s.(type) {
	case *Block:
		frags := []string{"block"}
		for _, stmt := range s.Statements {
			frags = append(frags, SprintStmt(stmt))
		}
		return parens(frags...)

	case *Expression:
		return parens("expr", SprintExpr(s.Expression))
	case *Print:
		return parens("print", SprintExpr(s.Expression))

	case *Return:
		if s.Value == nil {
			return parens("return")
		}
		return parens("return", SprintExpr(s.Value))

	case *If:
		if s.ElseBranch == nil {
			return parens("if", SprintExpr(s.Condition), SprintStmt(s.ThenBranch))
		}
		return parens("if", SprintExpr(s.Condition),
			SprintStmt(s.ThenBranch), SprintStmt(s.ElseBranch))

	case *While:
		return parens("while", SprintExpr(s.Condition), SprintStmt(s.Body))

	case *For:
		return parens("for",
			stmtOrEmpty(s.Initializer),
			exprOrEmpty(s.Condition),
			exprOrEmpty(s.Increment),
			SprintStmt(s.Body),
		)

	case *Var:
		if s.Initializer == nil {
			return parens("var", s.Name.Lexeme)
		}
		return parens("var", s.Name.Lexeme, SprintExpr(s.Initializer))

	case *Function:
		return sprintFunction("fun", s)

	case *Class:
		frags := []string{"class", s.Name.Lexeme}
		if s.Superclass != nil {
			frags = append(frags, "<", SprintExpr(s.Superclass))
		}
		for _, method := range s.Methods {
			frags = append(frags, sprintFunction("method", method))
		}
		return parens(frags...)
	}

	panic("Invalid statement node.")
}

func SprintExpr(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		return e.Token.Lexeme
	case *Logical:
		return parens(e.Operator.Lexeme, SprintExpr(e.Left), SprintExpr(e.Right))
	case *Binary:
		return parens(e.Operator.Lexeme, SprintExpr(e.Left), SprintExpr(e.Right))
	case *Unary:
		return parens(e.Operator.Lexeme, SprintExpr(e.Right))
	case *Grouping:
		return parens("group", SprintExpr(e.Expr))
	case *Dot:
		return parens(".", SprintExpr(e.Object), e.Name.Lexeme)

	case *Call:
		// Put initial content before args
		args := []string{"()", SprintExpr(e.Callee) + ":"}
		for _, arg := range e.Arguments {
			args = append(args, SprintExpr(arg))
		}
		return parens(args...)

	case *New:
		args := []string{"new", SprintExpr(e.Class) + ":"}
		for _, arg := range e.Arguments {
			args = append(args, SprintExpr(arg))
		}
		return parens(args...)

	case *Assign:
		return parens("=", SprintExpr(e.Target), SprintExpr(e.Value))

	case *Variable:
		if e.Depth == Unresolved {
			return e.Name.Lexeme
		}
		return e.Name.Lexeme + "@" + strconv.Itoa(e.Depth)
	}

	panic("Invalid expression node.")
}

func sprintFunction(head string, f *Function) string {
	params := make([]string, 0, len(f.Params))
	for _, param := range f.Params {
		params = append(params, param.Lexeme)
	}

	frags := []string{head, f.Name.Lexeme, "(" + strings.Join(params, " ") + ")"}
	for _, stmt := range f.Body {
		frags = append(frags, SprintStmt(stmt))
	}

	return parens(frags...)
}

func stmtOrEmpty(s Stmt) string {
	if s == nil {
		return "_"
	}
	return SprintStmt(s)
}

func exprOrEmpty(e Expr) string {
	if e == nil {
		return "_"
	}
	return SprintExpr(e)
}

func parens(frags ...string) string {
	return "(" + strings.Join(frags, " ") + ")"
}

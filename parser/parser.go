// Package parser turns source text into the statement tree the resolver and
// interpreter consume. Syntax errors are reported, never raised.
package parser

import (
	"fmt"

	"jocks/ast"
	"jocks/report"
	"jocks/token"
)

const MAX_CALL_PARAMS = 255

type Parser struct {
	// Scanning information
	scn      Scanner
	previous token.Token
	current  token.Token

	reporter *report.Reporter
	// Was any syntax error detected while parsing.
	hadError bool
}

type SyntaxError struct{}

func MakeParser(file, source string, reporter *report.Reporter) Parser {
	return Parser{
		scn:      MakeScanner(file, source, reporter),
		previous: token.Token{},
		current:  token.Token{},
		reporter: reporter,
	}
}

// Parses a whole file, nil if there was any scanning or syntax error.
func Parse(file, source string, reporter *report.Reporter) []ast.Stmt {
	p := MakeParser(file, source, reporter)
	return p.Parse()
}

func (p *Parser) Parse() []ast.Stmt {
	// Prime the parser: take in first token.
	p.advance()

	stmts := make([]ast.Stmt, 0)
	for !p.check(token.END_OF_FILE) {
		func() {
			// Synchronize tokens if malformed syntax is detected.
			defer func() {
				switch r := recover().(type) {
				case nil:
				case SyntaxError:
					p.synchronize()
				default:
					panic(r)
				}
			}()

			stmts = append(stmts, p.declaration())
		}()
	}

	if p.hadError {
		return nil
	} else {
		return stmts
	}
}

// Statement parsing methods
// --------------------------------------------------------
func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()

	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	keyword := p.previous
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	// Check and set if superclass exists.
	superclass := (*ast.Variable)(nil)
	if p.match(token.LESS) {
		sname := p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = ast.NewVariable(sname)
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	methods := make([]*ast.Function, 0)
	for !p.check(token.RIGHT_BRACE) && !p.check(token.END_OF_FILE) {
		// The 'fun' keyword is optional for methods.
		p.match(token.FUN)
		methods = append(methods, p.function("method"))
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.Class{
		Pos:        ast.PosOf(keyword),
		Name:       name,
		Superclass: superclass,
		Methods:    methods,
	}
}

// Functions and methods alike, the receiver of a method is an ordinary
// parameter.
func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")

	// Parse paramaters: '(' parameters? ')'
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")
	params := make([]token.Token, 0)

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= MAX_CALL_PARAMS {
				p.error_at(p.current, fmt.Sprintf(
					"Can't have more than %v parameters.", MAX_CALL_PARAMS,
				))
			}
			// Continue ever after the error as the syntax is well formed.

			param := p.consume(token.IDENTIFIER, "Expect parameter name.")
			params = append(params, param)

			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.bareBlock()

	return &ast.Function{Pos: ast.PosOf(name), Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect a variable name.")

	// No initializer means nil.
	init_value := ast.Expr(nil)
	if p.match(token.EQUAL) {
		init_value = p.expression()
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Pos: ast.PosOf(name), Name: name, Initializer: init_value}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()

	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()

	case p.match(token.LEFT_BRACE):
		return p.block()

	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")

	return &ast.Print{Pos: ast.PosOf(keyword), Expression: expr}
}

func (p *Parser) returnStatement() ast.Stmt {
	kw := p.previous
	value := ast.Expr(nil) // A return with no expression returns nil.

	if !p.check(token.SEMICOLON) {
		value = p.expression()
		p.consume(token.SEMICOLON, "Expect ';' after return value.")
	} else {
		p.consume(token.SEMICOLON, "Expect ';' after return.")
	}

	return &ast.Return{Pos: ast.PosOf(kw), Keyword: kw, Value: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	then_branch := p.statement()
	else_branch := ast.Stmt(nil)
	if p.match(token.ELSE) {
		else_branch = p.statement()
	}

	return &ast.If{
		Pos:        ast.PosOf(keyword),
		Condition:  condition,
		ThenBranch: then_branch,
		ElseBranch: else_branch,
	}
}

func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	body := p.statement()

	return &ast.While{Pos: ast.PosOf(keyword), Condition: condition, Body: body}
}

// All three clauses are optional, a missing condition loops forever.
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	init := ast.Stmt(nil)
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	cond := ast.Expr(nil)
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	update := ast.Expr(nil)
	if !p.check(token.RIGHT_PAREN) {
		update = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for-clauses.")

	body := p.statement()

	return &ast.For{
		Pos:         ast.PosOf(keyword),
		Initializer: init,
		Condition:   cond,
		Increment:   update,
		Body:        body,
	}
}

func (p *Parser) block() ast.Stmt {
	brace := p.previous
	return ast.NewBlock(ast.PosOf(brace), p.bareBlock()...)
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")

	return &ast.Expression{Pos: expr.Position(), Expression: expr}
}

// Expression parsing methods
// --------------------------------------------------------
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	// Since the '=' can be any number of tokens ahead,
	// parse the LHS first and then check for equal sign and verify that the
	// assingment target valid.
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable, *ast.Dot:
			return &ast.Assign{Pos: ast.PosOf(equals), Target: target, Value: value}
		default:
			p.error_at(equals, "Invalid assignment target.")
			// Continue after the error as the syntax is well formed.
		}
	}

	return expr
}

// Helper for parsing left-associative binary expressions.
func (p *Parser) leftAssociative(
	next_rule func() ast.Expr,
	build func(op token.Token, left, right ast.Expr) ast.Expr,
	matches ...token.TokenKind,
) ast.Expr {
	left := next_rule()

	for p.match_any(matches...) {
		op := p.previous
		right := next_rule()

		left = build(op, left, right)
	}

	return left
}

func makeBinary(op token.Token, left, right ast.Expr) ast.Expr {
	return &ast.Binary{Pos: ast.PosOf(op), Operator: op, Left: left, Right: right}
}

func makeLogical(op token.Token, left, right ast.Expr) ast.Expr {
	return &ast.Logical{Pos: ast.PosOf(op), Operator: op, Left: left, Right: right}
}

func (p *Parser) logicOr() ast.Expr {
	return p.leftAssociative(p.logicAnd, makeLogical, token.OR)
}

func (p *Parser) logicAnd() ast.Expr {
	return p.leftAssociative(p.equality, makeLogical, token.AND)
}

func (p *Parser) equality() ast.Expr {
	return p.leftAssociative(p.comparison, makeBinary,
		token.EQUAL_EQUAL, token.BANG_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return p.leftAssociative(p.term, makeBinary,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL)
}

func (p *Parser) term() ast.Expr {
	return p.leftAssociative(p.factor, makeBinary,
		token.PLUS, token.MINUS)
}

func (p *Parser) factor() ast.Expr {
	return p.leftAssociative(p.unary, makeBinary,
		token.STAR, token.SLASH)
}

func (p *Parser) unary() ast.Expr {
	if p.match_any(token.BANG, token.PLUS, token.MINUS) {
		op := p.previous
		right := p.unary()
		return &ast.Unary{Pos: ast.PosOf(op), Operator: op, Right: right}
	}

	return p.call()
}

func (p *Parser) call() ast.Expr {
	// This parses function calls and property access,
	// both are left-associative.
	expr := p.primary()

	for {
		if p.match(token.DOT) {
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Dot{Pos: ast.PosOf(name), Object: expr, Name: name}
		} else if p.match(token.LEFT_PAREN) {
			expr = p.finish_call(expr)
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match_any(token.FALSE, token.TRUE, token.NIL, token.NUMBER, token.STRING):
		return &ast.Literal{Pos: ast.PosOf(p.previous), Token: p.previous}

	case p.match(token.NEW):
		return p.newInstance()

	case p.match(token.IDENTIFIER):
		return ast.NewVariable(p.previous)

	case p.match(token.LEFT_PAREN):
		paren := p.previous
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Pos: ast.PosOf(paren), Expr: expr}
	}

	p.error_at(p.current, "Expect expression.")
	panic(SyntaxError{})
}

// new Name(args...)
func (p *Parser) newInstance() ast.Expr {
	keyword := p.previous
	name := p.consume(token.IDENTIFIER, "Expect class name after 'new'.")
	p.consume(token.LEFT_PAREN, "Expect '(' after class name.")
	args, _ := p.arguments()

	return &ast.New{Pos: ast.PosOf(keyword), Class: ast.NewVariable(name), Arguments: args}
}

// Parsing helpers
// --------------------------------------------------------
// Parses: declaration* '}'
func (p *Parser) bareBlock() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)

	for !p.check(token.RIGHT_BRACE) && !p.check(token.END_OF_FILE) {
		stmts = append(stmts, p.declaration())
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")

	return stmts
}

func (p *Parser) finish_call(callee ast.Expr) ast.Expr {
	args, paren := p.arguments()
	return &ast.Call{Pos: ast.PosOf(paren), Callee: callee, Arguments: args}
}

// Parses call arguments: (expr (',' expr)*)? ')'
func (p *Parser) arguments() ([]ast.Expr, token.Token) {
	args := make([]ast.Expr, 0)

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= MAX_CALL_PARAMS {
				p.error_at(p.current, fmt.Sprintf(
					"Can't have more than %v arguments.", MAX_CALL_PARAMS,
				))
			}
			// Continue after the error as the syntax is well formed.

			args = append(args, p.expression())

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return args, paren
}

// Error reporting and recovery methods
// --------------------------------------------------------
func (p *Parser) error_at(tok token.Token, message string, args ...any) {
	p.hadError = true

	at := "'" + tok.Lexeme + "'"
	if tok.Kind == token.END_OF_FILE {
		at = "end"
	}

	if p.reporter != nil {
		p.reporter.Errorf(report.PhaseParser, report.SyntaxError, tok.File, tok.Line,
			"Error at %v: %v", at, fmt.Sprintf(message, args...))
	}
}

// Synchronize the token stream after seeing malformed syntax to prevent
// cascading errors and parse as much correct synytax as possible.
func (p *Parser) synchronize() {
	// Discard token on whic error happened and continue to do so until we
	// find a token which might be the begining of a new statement/declaration.
	p.advance()

	for p.current.Kind != token.END_OF_FILE {
		// If a statement or block has ended then we might see a new statement.
		switch p.previous.Kind {
		case token.SEMICOLON, token.RIGHT_BRACE:
			return
		}

		// If we see a token which is begining of a statement.
		switch p.current.Kind {
		case token.LEFT_BRACE, token.CLASS, token.FUN, token.VAR,
			token.FOR, token.IF, token.WHILE,
			token.RETURN, token.PRINT:
			return

		default:
			p.advance()
		}
	}
}

// Parser token matching and processing methods
// --------------------------------------------------------
func (p *Parser) consume(kind token.TokenKind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}

	p.error_at(p.current, message)
	panic(SyntaxError{})
}

func (p *Parser) match_any(kinds ...token.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) match(kind token.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser) check(kind token.TokenKind) bool {
	return p.current.Kind == kind
}

// Invalid tokens were reported by the scanner and are skipped here.
func (p *Parser) advance() token.Token {
	p.previous = p.current
	for {
		p.current = p.scn.NextToken()
		if p.current.Kind != token.INVALID {
			break
		}
		p.hadError = true
	}
	return p.previous
}

package parser

import (
	"fmt"
	"strconv"

	"jocks/report"
	"jocks/token"
)

const EOF_CHAR = '\x00'

var singleCharTokens = map[byte]token.TokenKind{
	'(': token.LEFT_PAREN,
	')': token.RIGHT_PAREN,
	'{': token.LEFT_BRACE,
	'}': token.RIGHT_BRACE,
	',': token.COMMA,
	'.': token.DOT,
	';': token.SEMICOLON,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
}

// Kind without and with a trailing '='.
var equalSuffixTokens = map[byte][2]token.TokenKind{
	'!': {token.BANG, token.BANG_EQUAL},
	'=': {token.EQUAL, token.EQUAL_EQUAL},
	'<': {token.LESS, token.LESS_EQUAL},
	'>': {token.GREATER, token.GREATER_EQUAL},
}

type Scanner struct {
	file    string
	source  string
	start   int
	current int
	line    int

	reporter *report.Reporter
}

func MakeScanner(file, source string, reporter *report.Reporter) Scanner {
	return Scanner{
		file:     file,
		source:   source,
		start:    0,
		current:  0,
		line:     1,
		reporter: reporter,
	}
}

// Returns the next token. Malformed input is reported and comes back as an
// INVALID token.
func (s *Scanner) NextToken() token.Token {
	// Skip blanks and comments.
	s.skipBlanks()
	// We use a loop since there can be multiple consecutive comments.
	for s.peek() == '#' {
		for !s.isAtEnd() && s.advance() != '\n' {
			// Consume the line.
		}
		s.skipBlanks()
	}

	s.start = s.current

	if s.isAtEnd() {
		return s.makeTok(token.END_OF_FILE)
	}

	c := s.advance()

	if kind, ok := singleCharTokens[c]; ok {
		return s.makeTok(kind)
	}

	// One of ! = < > optionally followed by '='.
	if kinds, ok := equalSuffixTokens[c]; ok {
		if s.match('=') {
			return s.makeTok(kinds[1])
		}
		return s.makeTok(kinds[0])
	}

	if c == '"' {
		return s.scanString()
	}

	switch {
	case isDigit(c):
		return s.scanNumber()
	case isIdentFirstChar(c):
		return s.scanIdentifier()
	}

	return s.errorTok(report.InvalidCharacter, fmt.Sprintf("Unknown character '%c' (%v).", c, c))
}

// Strings may span lines, the token's line is where it starts.
func (s *Scanner) scanString() token.Token {
	startLine := s.line

	for !s.isAtEnd() {
		if s.advance() == '"' {
			tok := s.makeTok(token.STRING)
			tok.Line = startLine
			tok.Literal = s.source[s.start+1 : s.current-1]
			return tok
		}
	}

	return s.errorTok(report.UnterminatedString, "Unclosed string literal.")
}

func (s *Scanner) scanNumber() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // Eat the '.'
	}

	for isDigit(s.peek()) {
		s.advance()
	}

	tok := s.makeTok(token.NUMBER)
	val, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return s.errorTok(report.SyntaxError, fmt.Sprintf("Invalid number (%v)", err.Error()))
	}

	tok.Literal = val
	return tok
}

func (s *Scanner) scanIdentifier() token.Token {
	for isIdentChar(s.peek()) {
		s.advance()
	}

	tok := s.makeTok(token.IDENTIFIER)
	tok.Kind = token.LookupIdent(tok.Lexeme)
	return tok
}

// Utility methods
// -----------------------------------------------
func (s *Scanner) skipBlanks() {
	for !s.isAtEnd() {
		switch s.peek() {
		case ' ', '\t', '\n', '\v', '\r':
			s.advance()
		default:
			return
		}
	}
}

func (s *Scanner) errorTok(kind report.Kind, message string) token.Token {
	err_tok := s.makeTok(token.INVALID)

	at := fmt.Sprintf("'%v'", err_tok.Lexeme)
	if s.isAtEnd() {
		at = "end"
	}

	if s.reporter != nil {
		s.reporter.Errorf(report.PhaseScanner, kind, s.file, s.line, "Error at %v: %v", at, message)
	}
	return err_tok
}

func (s *Scanner) makeTok(kind token.TokenKind) token.Token {
	return token.Token{
		Lexeme: s.source[s.start:s.current],
		Kind:   kind,
		File:   s.file,
		Line:   s.line,
	}
}

// Scanner character matching and processing methods
// --------------------------------------------------------
func (s *Scanner) match(expected byte) bool {
	if s.peek() == expected {
		s.advance()
		return true
	} else {
		return false
	}
}

func (s *Scanner) peekNext() byte {
	if s.current+1 < len(s.source) {
		return s.source[s.current+1]
	} else {
		return EOF_CHAR
	}
}

func (s *Scanner) peek() byte {
	if !s.isAtEnd() {
		return s.source[s.current]
	} else {
		return EOF_CHAR
	}
}

func (s *Scanner) advance() byte {
	if s.isAtEnd() {
		return EOF_CHAR
	}

	ret := s.source[s.current]
	s.current++
	if ret == '\n' {
		s.line++
	}

	return ret
}

func (s *Scanner) isAtEnd() bool {
	return s.current == len(s.source)
}

// Character class functions
// --------------------------------------------------------
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentChar(c byte) bool {
	return isIdentFirstChar(c) || isDigit(c)
}

func isIdentFirstChar(c byte) bool {
	return c == '_' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z'
}

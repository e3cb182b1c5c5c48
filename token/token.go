package token

import (
	"fmt"
	"sort"
)

type TokenKind uint8

const (
	INVALID TokenKind = iota

	// Single character tokens.
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	SEMICOLON
	PLUS
	MINUS
	STAR
	SLASH

	// One or two character tokens.
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL

	// Literals.
	IDENTIFIER
	STRING
	NUMBER

	// Keywords.
	AND
	OR
	TRUE
	FALSE
	NIL
	VAR
	FUN
	CLASS
	NEW
	IF
	ELSE
	WHILE
	FOR
	RETURN
	PRINT

	END_OF_FILE
)

var kindNames = [...]string{
	INVALID:       "INVALID",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	SEMICOLON:     "SEMICOLON",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	SLASH:         "SLASH",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	OR:            "OR",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	NIL:           "NIL",
	VAR:           "VAR",
	FUN:           "FUN",
	CLASS:         "CLASS",
	NEW:           "NEW",
	IF:            "IF",
	ELSE:          "ELSE",
	WHILE:         "WHILE",
	FOR:           "FOR",
	RETURN:        "RETURN",
	PRINT:         "PRINT",
	END_OF_FILE:   "END_OF_FILE",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

var keywords = map[string]TokenKind{
	"and":    AND,
	"or":     OR,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
	"var":    VAR,
	"fun":    FUN,
	"class":  CLASS,
	"new":    NEW,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"return": RETURN,
	"print":  PRINT,
}

// Returns the keyword kind for the lexeme, or IDENTIFIER.
func LookupIdent(lexeme string) TokenKind {
	if kind, ok := keywords[lexeme]; ok {
		return kind
	}
	return IDENTIFIER
}

// Reserved words, sorted.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}

	sort.Strings(words)
	return words
}

type Token struct {
	Kind   TokenKind
	Lexeme string
	// float64 for NUMBER, string for STRING, nil otherwise.
	Literal any
	File    string
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%v %q (%v:%v)", t.Kind, t.Lexeme, t.File, t.Line)
}

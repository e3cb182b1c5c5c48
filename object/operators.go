package object

import "jocks/token"

// Methods an instance implements to overload operators.
var binaryDunders = map[token.TokenKind]string{
	token.EQUAL_EQUAL:   "__equal__",
	token.BANG_EQUAL:    "__not_equal__",
	token.LESS:          "__less_than__",
	token.LESS_EQUAL:    "__less_than_or_equal__",
	token.GREATER:       "__more_than__",
	token.GREATER_EQUAL: "__more_than_or_equal__",
	token.PLUS:          "__add__",
	token.MINUS:         "__sub__",
	token.STAR:          "__mul__",
	token.SLASH:         "__div__",
}

var unaryDunders = map[token.TokenKind]string{
	token.PLUS:  "__unary_add__",
	token.MINUS: "__unary_sub__",
}

// Method name overloading the binary operator, false if it cannot be
// overloaded.
func BinaryDunder(op token.TokenKind) (string, bool) {
	name, ok := binaryDunders[op]
	return name, ok
}

// Method name overloading the unary operator, false if it cannot be
// overloaded.
func UnaryDunder(op token.TokenKind) (string, bool) {
	name, ok := unaryDunders[op]
	return name, ok
}
